package btc

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/ext"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

const (
	MainnetAPIFeeRateURL = "https://blockstream.info/api/fee-estimates"
	TestnetAPIFeeRateURL = "https://blockstream.info/testnet/api/fee-estimates"

	// feeEstimatesExpiry is how long fetched estimates are served from cache.
	feeEstimatesExpiry = 10 * time.Minute
)

// Since the introduction of segwit account different size measument was
// introduced (Sat/VB). When sending a transaction from the legacy account,
// 1B (byte) = 1vB (virtual byte). When sending a transaction from segwit
// (legacy segwit, bech32, taproot), then 1B = 4vB.

// 1,000 sat/kvB = 1 sat/vB

// FallBackFeeRatePerkvB equals to 1 sat/vB.
var FallBackFeeRatePerkvB = btcutil.Amount(1000)

type FeeEstimate struct {
	// Number of confrmed blocks that show the average fee rate below.
	ConfirmedBlocks int32
	// Feerate shows estimate fee rate in Sat/kvB.
	Feerate btcutil.Amount
}

// FeePerByte returns the estimate in Sat/vB, rounded up.
func (f FeeEstimate) FeePerByte() btcutil.Amount {
	return (f.Feerate + 999) / 1000
}

// FeeEstimator fetches fee estimates from the blockstream API and caches
// them.
type FeeEstimator struct {
	client *ext.Client
	url    string

	mu         sync.RWMutex
	estimates  []FeeEstimate
	lastUpdate time.Time
}

// feeRateURLs are the fee estimate APIs by bitcoin network name.
var feeRateURLs = map[string]string{
	"mainnet":  MainnetAPIFeeRateURL,
	"testnet3": TestnetAPIFeeRateURL,
}

// NewFeeEstimator returns an estimator for the network. Only mainnet and
// testnet have an API.
func NewFeeEstimator(client *ext.Client, net utils.NetworkType) (*FeeEstimator, error) {
	name, err := utils.AssetNetwork(utils.BTCWalletAsset, net)
	if err != nil {
		return nil, err
	}
	feerateURL, ok := feeRateURLs[name]
	if !ok {
		return nil, fmt.Errorf("%v network is not supported", net)
	}
	return newFeeEstimator(client, feerateURL), nil
}

func newFeeEstimator(client *ext.Client, url string) *FeeEstimator {
	if client == nil {
		client = ext.NewClient()
	}
	return &FeeEstimator{client: client, url: url}
}

// fetchAPIFeeRate queries the API fee rates, sorted by confirmation target.
func (fe *FeeEstimator) fetchAPIFeeRate(ctx context.Context) ([]FeeEstimate, error) {
	var resp = make(map[string]decimal.Decimal)
	req := &ext.ReqConfig{
		Method:  http.MethodGet,
		HTTPURL: fe.url,
	}
	if err := fe.client.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("fetching API fee estimates failed: %v", err)
	}

	// if no data was returned, return an error.
	if len(resp) == 0 {
		return nil, fmt.Errorf("API fee estimates not found")
	}

	var results = make([]FeeEstimate, 0, len(resp))

	// Fee rate returned is in Sat/vB units.
	for blocks, feerate := range resp {
		vals, err := strconv.ParseInt(blocks, 10, 32)
		if err != nil {
			// Invalid blocks confirmation found ignore it,
			continue
		}

		results = append(results, FeeEstimate{
			ConfirmedBlocks: int32(vals),
			// Fee rate conversion from Sat/vB to Sat/kvB is at the rate of
			// 1000 Sat/kvB == 1 Sat/vB
			Feerate: btcutil.Amount(feerate.Shift(3).Ceil().IntPart()),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ConfirmedBlocks < results[j].ConfirmedBlocks
	})
	return results, nil
}

// GetAPIFeeEstimateRate returns the cached estimates or fetches new ones
// once they expire.
func (fe *FeeEstimator) GetAPIFeeEstimateRate(ctx context.Context) ([]FeeEstimate, error) {
	fe.mu.RLock()
	if len(fe.estimates) > 0 && time.Since(fe.lastUpdate) < feeEstimatesExpiry {
		defer fe.mu.RUnlock()
		return fe.estimates, nil
	}
	fe.mu.RUnlock()

	feerates, err := fe.fetchAPIFeeRate(ctx)
	if err != nil {
		return nil, err
	}

	// Do not cache empty results.
	if len(feerates) == 0 {
		return nil, fmt.Errorf("API feerates not available")
	}

	fe.mu.Lock()
	fe.estimates = feerates
	fe.lastUpdate = time.Now()
	fe.mu.Unlock()

	return feerates, nil
}

// FeeRateFor returns the fee rate of the smallest confirmation target not
// below blocks, falling back to FallBackFeeRatePerkvB.
func (fe *FeeEstimator) FeeRateFor(ctx context.Context, blocks int32) btcutil.Amount {
	estimates, err := fe.GetAPIFeeEstimateRate(ctx)
	if err != nil {
		log.Warnf("using fallback fee rate: %v", err)
		return FallBackFeeRatePerkvB
	}
	for _, e := range estimates {
		if e.ConfirmedBlocks >= blocks && e.Feerate >= FallBackFeeRatePerkvB {
			return e.Feerate
		}
	}
	return FallBackFeeRatePerkvB
}
