package countervalue

import (
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"github.com/shopspring/decimal"
)

// ratioPrecision bounds the fractional digits kept when a ratio is inverted.
const ratioPrecision = 40

type RateState uint8

const (
	RateAvailable RateState = iota
	RateLoading
	RateUnavailable
)

func (s RateState) String() string {
	switch s {
	case RateAvailable:
		return "available"
	case RateLoading:
		return "loading"
	default:
		return "unavailable"
	}
}

// Rate is a snapshot of the exchange rate between two currencies. Ratio maps
// one raw unit of From to raw units of To and is only meaningful when State
// is RateAvailable. A zero ratio is a valid rate.
type Rate struct {
	From  *currency.Currency
	To    *currency.Currency
	State RateState
	Ratio decimal.Decimal
	Time  time.Time
	// Stale marks a rate older than its provider's freshness window.
	Stale bool
}

// NewRate builds an available rate from the price of one whole From coin
// expressed in whole To coins.
func NewRate(from, to *currency.Currency, price decimal.Decimal, at time.Time) Rate {
	shift := to.DisplayUnit().Magnitude - from.DisplayUnit().Magnitude
	return RatioRate(from, to, price.Shift(int32(shift)), at)
}

// RatioRate builds an available rate from a raw unit ratio.
func RatioRate(from, to *currency.Currency, ratio decimal.Decimal, at time.Time) Rate {
	return Rate{From: from, To: to, State: RateAvailable, Ratio: ratio, Time: at}
}

// Identity is the rate of a currency to itself.
func Identity(c *currency.Currency) Rate {
	return Rate{From: c, To: c, State: RateAvailable, Ratio: decimal.NewFromInt(1)}
}

func LoadingRate(from, to *currency.Currency) Rate {
	return Rate{From: from, To: to, State: RateLoading}
}

func UnavailableRate(from, to *currency.Currency) Rate {
	return Rate{From: from, To: to, State: RateUnavailable}
}

func (r Rate) Available() bool {
	return r.State == RateAvailable
}

// Price is the value of one whole From coin in whole To coins.
func (r Rate) Price() decimal.Decimal {
	if !r.Available() || r.From == nil || r.To == nil {
		return decimal.Zero
	}
	shift := r.From.DisplayUnit().Magnitude - r.To.DisplayUnit().Magnitude
	return r.Ratio.Shift(int32(shift))
}

// Invert returns the To to From rate. A zero ratio has no inverse and yields
// an unavailable rate.
func (r Rate) Invert() Rate {
	inv := Rate{From: r.To, To: r.From, State: r.State, Time: r.Time, Stale: r.Stale}
	if !r.Available() {
		return inv
	}
	if r.Ratio.IsZero() {
		inv.State = RateUnavailable
		return inv
	}
	inv.Ratio = decimal.NewFromInt(1).DivRound(r.Ratio, ratioPrecision)
	return inv
}

// Compose chains r (A to B) with next (B to C) into an A to C rate. An
// unavailable leg makes the result unavailable, otherwise a loading leg makes
// it loading. The older timestamp is kept.
func (r Rate) Compose(next Rate) Rate {
	out := Rate{From: r.From, To: next.To, Stale: r.Stale || next.Stale}
	switch {
	case r.State == RateUnavailable || next.State == RateUnavailable:
		out.State = RateUnavailable
		return out
	case r.State == RateLoading || next.State == RateLoading:
		out.State = RateLoading
		return out
	}

	out.State = RateAvailable
	out.Ratio = r.Ratio.Mul(next.Ratio)
	out.Time = r.Time
	if next.Time.Before(out.Time) {
		out.Time = next.Time
	}
	return out
}

// Provider supplies rate snapshots. Implementations must answer from cached
// state and never block on the network.
type Provider interface {
	CounterValue(from, to *currency.Currency) Rate
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(from, to *currency.Currency) Rate

func (f ProviderFunc) CounterValue(from, to *currency.Currency) Rate {
	return f(from, to)
}
