package load

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
)

// Rate returns the current rate of c in the counter currency. Without a rate
// provider every rate is unavailable.
func (l *Load) Rate(c *currency.Currency) countervalue.Rate {
	if l.Rates == nil {
		return countervalue.UnavailableRate(c, l.CounterCurrency)
	}
	return l.Rates.CounterValue(c, l.CounterCurrency)
}

// CounterValue converts amount into the counter currency at the current rate
// and in the load locale.
func (l *Load) CounterValue(amount currency.Amount, opts countervalue.Options) (countervalue.Result, error) {
	opts.Locale = l.Locale
	return countervalue.Convert(amount, l.CounterCurrency, l.Rate(amount.Currency()), opts)
}

// FormatAmount renders amount in unit with the load locale.
func (l *Load) FormatAmount(amount currency.Amount, unit currency.Unit, opts currency.FormatOptions) (string, error) {
	opts.Locale = l.Locale
	return amount.FormatIn(unit, opts)
}
