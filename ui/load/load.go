// The load package contains data structures that are shared by components in the ui package. It is not a dumping ground
// for code you feel might be shared with other components in the future. Before adding code here, ask yourself, can
// the code be isolated in the package you're calling it from? Is it really needed by other packages in the ui package?
// or you're just planning for a use case that might never used.

package load

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
)

// Load is handed to every row builder. It carries the theme, locale and
// collaborators rows read from.
type Load struct {
	Theme   *values.Theme
	Locale  language.Tag
	Network utils.NetworkType

	Bridge sharedW.Bridge
	Rates  countervalue.Provider
	// CounterCurrency is the currency counter-values are shown in.
	CounterCurrency *currency.Currency

	// FeesURL is opened by the info link of fee rows.
	FeesURL string

	// Printer translates labels into the load language.
	Printer *message.Printer
}

// NewLoad returns a load with the default theme, English and USD.
func NewLoad(bridge sharedW.Bridge, rates countervalue.Provider) *Load {
	return &Load{
		Theme:           values.NewTheme(nil),
		Locale:          language.English,
		Network:         utils.Mainnet,
		Bridge:          bridge,
		Rates:           rates,
		CounterCurrency: currency.USDollar,
		Printer:         values.NewPrinter(language.English),
	}
}

// SetLocale switches number formatting and translations to tag.
func (l *Load) SetLocale(tag language.Tag) {
	l.Locale = tag
	l.Printer = values.NewPrinter(tag)
}

func (l *Load) printer() *message.Printer {
	if l.Printer == nil {
		l.Printer = values.NewPrinter(l.Locale)
	}
	return l.Printer
}

// String returns the translation of key.
func (l *Load) String(key string) string {
	return l.printer().Sprintf(key)
}

// StringF formats the translation of key with args.
func (l *Load) StringF(key string, args ...interface{}) string {
	return l.printer().Sprintf(key, args...)
}

// TranslateErr returns the message shown for err in the load language.
func (l *Load) TranslateErr(err error) string {
	return values.TranslateErr(l.printer(), err.Error())
}
