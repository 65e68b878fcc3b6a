package components

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
)

const currencyRateIcon = "activity"

// CurrencyRateLabel reads "1 BTC = 23,000.00 USD" behind an activity icon
// tinted with the currency color.
type CurrencyRateLabel struct {
	Icon Icon
	// Coin is one whole display unit of the currency.
	Coin  string
	Rate  countervalue.Result
	Color string
}

// NewCurrencyRateLabel builds the label of c. An iconSize of zero uses the
// theme icon size.
func NewCurrencyRateLabel(l *load.Load, c *currency.Currency, iconSize int) (*CurrencyRateLabel, error) {
	if iconSize <= 0 {
		iconSize = l.Theme.IconSize
	}

	one := countervalue.OneCoin(c)
	coin, err := l.FormatAmount(one, c.DisplayUnit(), currency.FormatOptions{ShowCode: true})
	if err != nil {
		return nil, err
	}
	rate, err := l.CounterValue(one, countervalue.Options{ShowCode: true})
	if err != nil {
		return nil, err
	}

	return &CurrencyRateLabel{
		Icon:  Icon{Name: currencyRateIcon, Size: iconSize, Color: c.Color()},
		Coin:  coin,
		Rate:  rate,
		Color: l.Theme.Color.GrayText2,
	}, nil
}

// Text is the label text. A loading or unavailable rate leaves the right
// hand side empty.
func (c *CurrencyRateLabel) Text() string {
	return c.Coin + " = " + c.Rate.Text
}
