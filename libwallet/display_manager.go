package libwallet

import (
	"context"
	"os"
	"path/filepath"

	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/btc"
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/ext"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/libwallet/walletdata"
	"decred.org/dcrwallet/v2/errors"
)

// InitParams are the settings a DisplayManager is created with.
type InitParams struct {
	RootDir string
	NetType utils.NetworkType
	// RateSource is empty to use the saved rate source.
	RateSource string
	// Offline keeps every collaborator off the network. Rates are served
	// from the store only.
	Offline bool
	// Client overrides the HTTP client shared by the rate source and the
	// fee estimator.
	Client *ext.Client
}

// DisplayManager owns the stores and collaborators the display rows read from:
// the account bridge, the rate source and its ticker store.
type DisplayManager struct {
	params *InitParams

	db     *walletdata.DB
	Bridge *sharedW.MemoryBridge

	RateSource   *ext.CommonRateSource
	FeeEstimator *btc.FeeEstimator

	ctx          context.Context
	cancelFuncs  []context.CancelFunc
	chainsParams utils.ChainsParams
}

// NewDisplayManager opens the data directory of params.NetType under
// params.RootDir and sets up the rate source.
func NewDisplayManager(params *InitParams) (*DisplayManager, error) {
	const op errors.Op = "libwallet.NewDisplayManager"
	errors.Separator = ":: "

	chainsParams, err := utils.NetworkParams(params.NetType)
	if err != nil {
		log.Errorf("error initializing chain parameters: %v", err)
		return nil, errors.E(op, errors.Invalid, err)
	}

	rootDir := filepath.Join(params.RootDir, string(params.NetType))
	if err = os.MkdirAll(rootDir, utils.UserFilePerm); err != nil {
		return nil, errors.Errorf("failed to create rootDir: %v", err)
	}

	db, err := walletdata.Initialize(filepath.Join(rootDir, walletdata.DbName))
	if err != nil {
		log.Errorf("error opening rates database: %v", err)
		return nil, err
	}

	// An unset rate source falls back to the one saved by a previous run.
	source := params.RateSource
	if source == "" {
		_ = db.ReadConfigValue(sharedW.CurrencyConversionConfigKey, &source)
	}
	if source == "" {
		source = defaultRateSource
	}

	ctx, cancel := context.WithCancel(context.Background())
	rates, err := ext.NewCommonRateSource(ctx, source, ext.RateSourceConfig{
		Net:     params.NetType,
		Store:   db,
		Client:  params.Client,
		Offline: params.Offline,
	})
	if err != nil {
		cancel()
		db.Close()
		return nil, err
	}

	mgr := &DisplayManager{
		params:       params,
		db:           db,
		Bridge:       sharedW.NewMemoryBridge(),
		RateSource:   rates,
		ctx:          ctx,
		cancelFuncs:  []context.CancelFunc{cancel},
		chainsParams: chainsParams,
	}

	if !params.Offline {
		mgr.FeeEstimator, err = btc.NewFeeEstimator(params.Client, params.NetType)
		if err != nil {
			log.Warnf("bitcoin fee estimates disabled: %v", err)
		}
	}

	log.Infof("Display manager ready on %s with rate source %s", params.NetType.Display(), rates.Name())
	return mgr, nil
}

// NetType is the network the manager was opened on.
func (mgr *DisplayManager) NetType() utils.NetworkType {
	return mgr.params.NetType
}

// ChainParams returns the decred and bitcoin parameters of the network.
func (mgr *DisplayManager) ChainParams() utils.ChainsParams {
	return mgr.chainsParams
}

// RootDir is the network data directory.
func (mgr *DisplayManager) RootDir() string {
	return filepath.Join(mgr.params.RootDir, string(mgr.params.NetType))
}

// AccountsFilePath is where LoadAccounts reads from when it is given no path.
func (mgr *DisplayManager) AccountsFilePath() string {
	return filepath.Join(mgr.RootDir(), accountsFileName)
}

// CounterValues returns the provider rows convert counter-values through.
// Conversions never block on the network.
func (mgr *DisplayManager) CounterValues() countervalue.Provider {
	return mgr.RateSource
}

// WaitForRates refreshes the rate source and returns once the refresh is done
// or ctx ends.
func (mgr *DisplayManager) WaitForRates(ctx context.Context, force bool) error {
	done := make(chan struct{})
	go func() {
		mgr.RateSource.Refresh(force)
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rate is the cached counter-value rate between two currencies.
func (mgr *DisplayManager) Rate(from, to *currency.Currency) countervalue.Rate {
	return mgr.RateSource.CounterValue(from, to)
}

// Shutdown stops the rate source and closes the ticker store.
func (mgr *DisplayManager) Shutdown() {
	log.Info("Shutting down display manager")
	for _, cancel := range mgr.cancelFuncs {
		cancel()
	}
	if mgr.db != nil {
		if err := mgr.db.Close(); err != nil {
			log.Errorf("error closing rates database: %v", err)
		}
	}
}
