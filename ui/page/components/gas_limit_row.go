package components

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
)

// GasLimitRow shows the gas limit of an ethereum transaction with an edit
// link.
type GasLimitRow struct {
	Title string
	// GasLimit is empty when the transaction has none.
	GasLimit      string
	GasLimitColor string
	Edit          Label
}

func NewGasLimitRow(l *load.Load, account *sharedW.Account, tx *sharedW.Transaction, extra *eth.TxExtra) *GasLimitRow {
	row := &GasLimitRow{
		Title:         l.String(values.StrGasLimit),
		GasLimitColor: l.Theme.Color.Text,
		Edit: editLink(l, l.Theme.Color.Primary, &Action{
			Route:       EthereumEditGasLimitRoute,
			AccountID:   account.ID,
			Transaction: tx,
		}),
	}
	if extra != nil && extra.GasLimit != nil {
		row.GasLimit = extra.GasLimit.String()
	}
	return row
}
