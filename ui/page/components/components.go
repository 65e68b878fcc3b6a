// components contain the row builders shared by the account list and the send
// flow. Builders are pure: they read their inputs and the injected load and
// return a display description for a renderer.

package components

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
)

// Route names a screen a row can navigate to.
type Route string

const (
	AccountRoute              Route = "Account"
	EthereumEditFeeRoute      Route = "EthereumEditFee"
	EthereumEditGasLimitRoute Route = "EthereumEditGasLimit"
)

// Action is what pressing an element does. Either Route or URL is set.
type Action struct {
	Route       Route
	AccountID   string
	Transaction *sharedW.Transaction
	URL         string
}

// Icon is a named glyph. Color is a "#rrggbb" string.
type Icon struct {
	Name  string
	Size  int
	Color string
}

// Label is a run of text with an optional press action. Links are underlined.
type Label struct {
	Text      string
	Color     string
	Underline bool
	Action    *Action
}

func editLink(l *load.Load, color string, action *Action) Label {
	return Label{
		Text:      l.String(values.StrEdit),
		Color:     color,
		Underline: true,
		Action:    action,
	}
}
