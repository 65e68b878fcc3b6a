package libwallet

import (
	"encoding/json"
	"math/big"
	"os"

	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/btc"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/dcr"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrutil/v4"
	"golang.org/x/text/language"
)

// AccountConfig is one account of an accounts file. Balance is written in
// Unit, or in the currency display unit when Unit is empty, with a "." decimal
// separator.
type AccountConfig struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	Unit      string `json:"unit,omitempty"`
	Balance   string `json:"balance"`
	UpToDate  bool   `json:"upToDate"`
	Syncing   bool   `json:"syncing,omitempty"`
	SyncError string `json:"syncError,omitempty"`

	Pending *PendingTransactionConfig `json:"pendingTransaction,omitempty"`
}

// PendingTransactionConfig holds the fee data of the transaction being
// edited on an account. Only the fields of the account family may be set.
type PendingTransactionConfig struct {
	ID string `json:"id"`

	// Ethereum, in wei.
	GasPrice string `json:"gasPrice,omitempty"`
	GasLimit string `json:"gasLimit,omitempty"`
	// FeeUnit is the ether unit code the gas price is shown in.
	FeeUnit string `json:"feeUnit,omitempty"`

	// Bitcoin family, in satoshi.
	FeePerByte *int64 `json:"feePerByte,omitempty"`
	// Decred, in atoms.
	FeePerKB *int64 `json:"feePerKB,omitempty"`

	EstimatedSize *int `json:"estimatedSize,omitempty"`
}

// fields lists the extras fields set in the config.
func (cfg *PendingTransactionConfig) fields() []string {
	var set []string
	if cfg.GasPrice != "" || cfg.FeeUnit != "" {
		set = append(set, sharedW.FieldGasPrice)
	}
	if cfg.GasLimit != "" {
		set = append(set, sharedW.FieldGasLimit)
	}
	if cfg.FeePerByte != nil {
		set = append(set, sharedW.FieldFeePerByte)
	}
	if cfg.FeePerKB != nil {
		set = append(set, sharedW.FieldFeePerKB)
	}
	if cfg.EstimatedSize != nil {
		set = append(set, sharedW.FieldEstimatedSize)
	}
	return set
}

// AccountsConfig is the content of an accounts file.
type AccountsConfig struct {
	Accounts []*AccountConfig `json:"accounts"`
}

// ReadAccountsFile decodes the accounts file at path.
func ReadAccountsFile(path string) (*AccountsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to read accounts file: %v", err)
	}
	cfg := new(AccountsConfig)
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.E(errors.Op("libwallet.ReadAccountsFile"), errors.Encoding, err)
	}
	return cfg, nil
}

// LoadAccounts reads the accounts file at path, or the network accounts file
// when path is empty, into the bridge. It returns the number of accounts
// added.
func (mgr *DisplayManager) LoadAccounts(path string) (int, error) {
	if path == "" {
		path = mgr.AccountsFilePath()
	}
	cfg, err := ReadAccountsFile(path)
	if err != nil {
		return 0, err
	}
	for i, acc := range cfg.Accounts {
		if err := mgr.AddAccount(acc); err != nil {
			return i, err
		}
	}
	log.Infof("Loaded %d accounts from %s", len(cfg.Accounts), path)
	return len(cfg.Accounts), nil
}

// AddAccount adds one configured account, its sync state and its pending
// transaction to the bridge.
func (mgr *DisplayManager) AddAccount(cfg *AccountConfig) error {
	const op errors.Op = "libwallet.AddAccount"
	if cfg == nil {
		return utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "no account")
	}

	c, err := currency.Find(cfg.Currency)
	if err != nil {
		return err
	}
	unit := c.DisplayUnit()
	if cfg.Unit != "" {
		var ok bool
		if unit, ok = c.UnitByCode(cfg.Unit); !ok {
			return utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "%s is not a unit of %s", cfg.Unit, c.Ticker())
		}
	}

	balance := currency.NewAmountFromInt64(c, 0)
	if cfg.Balance != "" {
		if balance, err = currency.ParseAmount(c, cfg.Balance, unit, language.English); err != nil {
			return err
		}
	}

	account := &sharedW.Account{
		ID:       cfg.ID,
		Name:     cfg.Name,
		Currency: c,
		Unit:     unit,
		Balance:  balance,
	}

	// The pending transaction is checked before the account is added so a
	// bad one leaves the bridge untouched.
	var tx *sharedW.Transaction
	if cfg.Pending != nil {
		extra, err := mgr.pendingExtra(account, cfg.Pending)
		if err != nil {
			return err
		}
		if tx, err = sharedW.NewTransaction(cfg.Pending.ID, account, extra); err != nil {
			return err
		}
	}

	if err := mgr.Bridge.AddAccount(account); err != nil {
		return err
	}

	switch {
	case cfg.SyncError != "":
		mgr.Bridge.OnSyncEndedWithError(account.ID, errors.New(cfg.SyncError))
	case cfg.UpToDate:
		mgr.Bridge.OnSyncCompleted(account.ID)
	}
	if cfg.Syncing && cfg.SyncError == "" {
		mgr.Bridge.OnSyncStarted(account.ID, false)
	}

	if tx == nil {
		return nil
	}
	return mgr.Bridge.SetPendingTransaction(tx)
}

// pendingExtra builds the typed extras of the account family.
func (mgr *DisplayManager) pendingExtra(account *sharedW.Account, cfg *PendingTransactionConfig) (sharedW.TransactionExtra, error) {
	const op errors.Op = "libwallet.pendingExtra"
	chain := account.Currency
	if parent := chain.Parent(); parent != nil {
		chain = parent
	}
	family, ok := sharedW.FamilyOf(utils.AssetType(chain.Ticker()))
	if !ok {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "%s transactions carry no extras", account.Currency.Ticker())
	}
	for _, field := range cfg.fields() {
		if !sharedW.IsExtraField(family, field) {
			return nil, utils.CodedError(op, errors.Invalid, utils.ErrIncompleteTxExtra,
				"%s is not a field of %s transactions", field, account.Currency.Ticker())
		}
	}

	switch family {
	case sharedW.FamilyEthereum:
		extra := new(eth.TxExtra)
		var err error
		if extra.GasPrice, err = parseWei(op, "gas price", cfg.GasPrice); err != nil {
			return nil, err
		}
		if extra.GasLimit, err = parseWei(op, "gas limit", cfg.GasLimit); err != nil {
			return nil, err
		}
		if cfg.FeeUnit != "" {
			unit, ok := currency.Ethereum.UnitByCode(cfg.FeeUnit)
			if !ok {
				return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "%s is not an ether unit", cfg.FeeUnit)
			}
			extra.FeeCustomUnit = &unit
		}
		return extra, nil

	case sharedW.FamilyBitcoin:
		extra := &btc.TxExtra{EstimatedSize: cfg.EstimatedSize}
		if cfg.FeePerByte != nil {
			feeRate := btcutil.Amount(*cfg.FeePerByte)
			extra.FeePerByte = &feeRate
		} else if feeRate, ok := mgr.estimatedFeePerByte(chain); ok {
			extra.FeePerByte = &feeRate
		}
		return extra, nil

	default:
		extra := &dcr.TxExtra{EstimatedSize: cfg.EstimatedSize}
		if cfg.FeePerKB != nil {
			feeRate := dcrutil.Amount(*cfg.FeePerKB)
			extra.FeePerKB = &feeRate
		}
		return extra, nil
	}
}

// estimatedFeePerByte asks the fee estimator for a bitcoin fee rate. Other
// bitcoin family chains have no estimator.
func (mgr *DisplayManager) estimatedFeePerByte(chain *currency.Currency) (btcutil.Amount, bool) {
	if mgr.FeeEstimator == nil || !chain.Equal(currency.Bitcoin) {
		return 0, false
	}
	estimate := btc.FeeEstimate{
		ConfirmedBlocks: feeConfirmationTarget,
		Feerate:         mgr.FeeEstimator.FeeRateFor(mgr.ctx, feeConfirmationTarget),
	}
	return estimate.FeePerByte(), true
}

func parseWei(op errors.Op, field, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedAmount, "bad %s %q", field, s)
	}
	return v, nil
}
