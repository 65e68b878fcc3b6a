package ext

import (
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	"github.com/shopspring/decimal"
)

// pivots are the currencies cross rates are composed through, in order of
// preference.
var pivots = []*currency.Currency{currency.Bitcoin, currency.Tether}

// tickerLookup returns the last price of a market and when it was seen.
type tickerLookup func(market string) (price decimal.Decimal, at time.Time, ok bool)

// quoteCurrency maps a currency to the one exchanges list it under. USD is
// quoted as USDT and dollar stablecoins are pegged to it.
func quoteCurrency(c *currency.Currency) *currency.Currency {
	switch {
	case c.Equal(currency.USDollar), c.Equal(currency.Tether), c.Equal(currency.USDCoin):
		return currency.Tether
	default:
		return c
	}
}

// CounterValue returns the cached rate from one currency to another. It
// never touches the network: an unknown rate is Loading until the first
// refresh completes and Unavailable afterwards. An expired rate is returned
// with Stale set.
func (cs *CommonRateSource) CounterValue(from, to *currency.Currency) countervalue.Rate {
	if from == nil || to == nil {
		return countervalue.UnavailableRate(from, to)
	}
	if from.Equal(to) {
		return countervalue.Identity(from)
	}
	if cs.isDisabled() {
		return countervalue.UnavailableRate(from, to)
	}

	base, quote := quoteCurrency(from), quoteCurrency(to)
	if base.Equal(quote) {
		return countervalue.NewRate(from, to, decimal.NewFromInt(1), time.Now())
	}

	cs.mtx.RLock()
	rate, found := findRate(base, quote, func(market string) (decimal.Decimal, time.Time, bool) {
		t, ok := cs.tickers[market]
		if !ok || !t.LastTradePrice.IsPositive() {
			return decimal.Zero, time.Time{}, false
		}
		return t.LastTradePrice, t.LastUpdate, true
	})
	pending := !cs.refreshed || cs.refreshing
	cs.mtx.RUnlock()

	if found {
		// The rate was found between the exchange listings of from and to.
		out := countervalue.NewRate(from, to, rate.Price(), rate.Time)
		out.Stale = time.Since(rate.Time) > rateExpiry
		return out
	}

	_, supported := findRate(base, quote, func(market string) (decimal.Decimal, time.Time, bool) {
		_, ok := supportedMarkets[market]
		return decimal.NewFromInt(1), time.Time{}, ok
	})
	if supported && pending {
		return countervalue.LoadingRate(from, to)
	}
	return countervalue.UnavailableRate(from, to)
}

// findRate prices base in quote from a direct market, an inverted market, or
// a cross through one of the pivot currencies.
func findRate(base, quote *currency.Currency, lookup tickerLookup) (countervalue.Rate, bool) {
	if r, ok := pairRate(base, quote, lookup); ok {
		return r, true
	}

	for _, pivot := range pivots {
		if base.Equal(pivot) || quote.Equal(pivot) {
			continue
		}
		first, ok := pairRate(base, pivot, lookup)
		if !ok {
			continue
		}
		second, ok := pairRate(pivot, quote, lookup)
		if !ok {
			continue
		}
		return first.Compose(second), true
	}
	return countervalue.Rate{}, false
}

func pairRate(base, quote *currency.Currency, lookup tickerLookup) (countervalue.Rate, bool) {
	if price, at, ok := lookup(values.NewMarket(base.Ticker(), quote.Ticker()).String()); ok {
		return countervalue.NewRate(base, quote, price, at), true
	}
	if price, at, ok := lookup(values.NewMarket(quote.Ticker(), base.Ticker()).String()); ok {
		if r := countervalue.NewRate(quote, base, price, at).Invert(); r.Available() {
			return r, true
		}
	}
	return countervalue.Rate{}, false
}
