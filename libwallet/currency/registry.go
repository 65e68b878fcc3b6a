package currency

import (
	"strings"
	"sync"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ltcsuite/ltcd/ltcutil"
)

const (
	tetherContract  = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
	usdCoinContract = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

// Built-in currencies.
var (
	Decred      = mustCrypto("decred", "Decred", "DCR", "#2970FF", dcrUnits()...)
	Bitcoin     = mustCrypto("bitcoin", "Bitcoin", "BTC", "#F7931A", btcUnits()...)
	Litecoin    = mustCrypto("litecoin", "Litecoin", "LTC", "#345D9D", ltcUnits()...)
	BitcoinCash = mustCrypto("bitcoin_cash", "Bitcoin Cash", "BCH", "#8DC351", bchUnits()...)
	Ethereum    = mustCrypto("ethereum", "Ethereum", "ETH", "#0EBDCD", ethUnits()...)

	Tether  = mustToken("ethereum/erc20/usdt", "Tether USD", "USDT", "#26A17B", Ethereum, tetherContract, 6)
	USDCoin = mustToken("ethereum/erc20/usdc", "USD Coin", "USDC", "#2775CA", Ethereum, usdCoinContract, 6)

	USDollar      = mustFiat("usd", "US Dollar", "USD", "$", 2)
	Euro          = mustFiat("eur", "Euro", "EUR", "€", 2)
	PoundSterling = mustFiat("gbp", "British Pound", "GBP", "£", 2)
	JapaneseYen   = mustFiat("jpy", "Japanese Yen", "JPY", "¥", 0)

	defaultRegistry = NewRegistry(Decred, Bitcoin, Litecoin, BitcoinCash, Ethereum,
		Tether, USDCoin, USDollar, Euro, PoundSterling, JapaneseYen)
)

// magnitudeOf returns the number of decimal digits in a power of ten count of
// smallest units.
func magnitudeOf(unitsPerCoin int64) int {
	mag := 0
	for unitsPerCoin >= 10 {
		unitsPerCoin /= 10
		mag++
	}
	return mag
}

func dcrUnits() []Unit {
	return []Unit{
		{Name: "Decred", Code: "DCR", Magnitude: magnitudeOf(dcrutil.AtomsPerCoin)},
		{Name: "milliDecred", Code: "mDCR", Magnitude: magnitudeOf(dcrutil.AtomsPerCoin / 1e3)},
		{Name: "atom", Code: "atom", Magnitude: 0},
	}
}

func btcUnits() []Unit {
	return []Unit{
		{Name: "bitcoin", Code: "BTC", Symbol: "₿", Magnitude: magnitudeOf(btcutil.SatoshiPerBitcoin)},
		{Name: "mBTC", Code: "mBTC", Magnitude: magnitudeOf(btcutil.SatoshiPerBitcoin / 1e3)},
		{Name: "bit", Code: "bits", Magnitude: magnitudeOf(btcutil.SatoshiPerBitcoin / 1e6)},
		{Name: "satoshi", Code: "sat", Magnitude: 0},
	}
}

func ltcUnits() []Unit {
	return []Unit{
		{Name: "litecoin", Code: "LTC", Symbol: "Ł", Magnitude: magnitudeOf(ltcutil.SatoshiPerBitcoin)},
		{Name: "mLTC", Code: "mLTC", Magnitude: magnitudeOf(ltcutil.SatoshiPerBitcoin / 1e3)},
		{Name: "litoshi", Code: "litoshi", Magnitude: 0},
	}
}

func bchUnits() []Unit {
	return []Unit{
		{Name: "bitcoin cash", Code: "BCH", Magnitude: magnitudeOf(btcutil.SatoshiPerBitcoin)},
		{Name: "satoshi", Code: "sat", Magnitude: 0},
	}
}

func ethUnits() []Unit {
	return []Unit{
		{Name: "ether", Code: "ETH", Symbol: "Ξ", Magnitude: magnitudeOf(params.Ether)},
		{Name: "Gwei", Code: "Gwei", Magnitude: magnitudeOf(params.GWei)},
		{Name: "wei", Code: "wei", Magnitude: 0},
	}
}

func mustCrypto(id, name, ticker, color string, units ...Unit) *Currency {
	c, err := NewCryptoCurrency(id, name, ticker, color, units...)
	if err != nil {
		panic(err)
	}
	return c
}

func mustToken(id, name, ticker, color string, parent *Currency, contract string, magnitude int) *Currency {
	c, err := NewToken(id, name, ticker, color, parent, contract, Unit{Name: name, Code: ticker, Magnitude: magnitude})
	if err != nil {
		panic(err)
	}
	return c
}

func mustFiat(id, name, ticker, symbol string, magnitude int) *Currency {
	c, err := NewFiat(id, name, ticker, "", Unit{Name: name, Code: ticker, Symbol: symbol, Magnitude: magnitude})
	if err != nil {
		panic(err)
	}
	return c
}

// Registry indexes currencies by id, ticker and token contract.
type Registry struct {
	mtx        sync.RWMutex
	ordered    []*Currency
	byKey      map[string]*Currency
	byContract map[common.Address]*Currency
}

func NewRegistry(currencies ...*Currency) *Registry {
	r := &Registry{
		byKey:      make(map[string]*Currency),
		byContract: make(map[common.Address]*Currency),
	}
	for _, c := range currencies {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds c. A currency whose id or ticker is already taken is
// rejected.
func (r *Registry) Register(c *Currency) error {
	const op errors.Op = "currency.Registry.Register"
	if c == nil {
		return utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "nil currency")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	id, ticker := strings.ToLower(c.id), strings.ToLower(c.ticker)
	if _, ok := r.byKey[id]; ok {
		return utils.CodedError(op, errors.Exist, utils.ErrExist, "currency %q", c.id)
	}
	if _, ok := r.byKey[ticker]; ok {
		return utils.CodedError(op, errors.Exist, utils.ErrExist, "ticker %q", c.ticker)
	}

	r.byKey[id] = c
	r.byKey[ticker] = c
	if c.kind == Token {
		r.byContract[c.contract] = c
	}
	r.ordered = append(r.ordered, c)
	log.Debugf("Registered %s currency %s (%s)", c.kind, c.id, c.ticker)
	return nil
}

// Find looks a currency up by id or ticker, ignoring case.
func (r *Registry) Find(idOrTicker string) (*Currency, error) {
	const op errors.Op = "currency.Registry.Find"
	r.mtx.RLock()
	c, ok := r.byKey[strings.ToLower(strings.TrimSpace(idOrTicker))]
	r.mtx.RUnlock()
	if !ok {
		return nil, utils.CodedError(op, errors.NotExist, utils.ErrUnknownCurrency, "%q", idOrTicker)
	}
	return c, nil
}

// TokenByContract returns the registered token issued by the contract.
func (r *Registry) TokenByContract(contract common.Address) (*Currency, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	c, ok := r.byContract[contract]
	return c, ok
}

// All lists the registered currencies in registration order.
func (r *Registry) All() []*Currency {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return append([]*Currency(nil), r.ordered...)
}

// Find looks idOrTicker up in the built-in registry.
func Find(idOrTicker string) (*Currency, error) {
	return defaultRegistry.Find(idOrTicker)
}

// All lists the built-in currencies.
func All() []*Currency {
	return defaultRegistry.All()
}

// TokenByContract looks a built-in token up by its contract address.
func TokenByContract(contract common.Address) (*Currency, bool) {
	return defaultRegistry.TokenByContract(contract)
}

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}
