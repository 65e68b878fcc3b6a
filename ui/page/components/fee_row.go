package components

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	"decred.org/dcrwallet/v2/errors"
)

const (
	feeInfoIcon        = "external-link"
	feeInfoIconSize    = 12
	counterValueApprox = "≈ "
)

// EthereumFeeRow summarizes the fee of an ethereum transaction. When the gas
// price is unknown FeeRate and Fee are empty and the counter-value is
// unavailable, while the edit link stays.
type EthereumFeeRow struct {
	Title    string
	InfoIcon Icon
	Info     *Action

	FeeRate      string
	Fee          string
	ValueColor   string
	Edit         Label
	CounterValue countervalue.Result
	CounterColor string

	GasLimit *GasLimitRow
}

// NewEthereumFeeRow builds the fee summary of tx on account. Token accounts
// pay their fees in ether.
func NewEthereumFeeRow(l *load.Load, account *sharedW.Account, tx *sharedW.Transaction) (*EthereumFeeRow, error) {
	const op errors.Op = "components.NewEthereumFeeRow"

	extra, ok := tx.Extra.(*eth.TxExtra)
	if !ok || extra == nil {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrIncompleteTxExtra, "transaction %s has no ethereum extras", tx.ID)
	}

	th := l.Theme
	row := &EthereumFeeRow{
		Title:    l.String(values.StrFees),
		InfoIcon: Icon{Name: feeInfoIcon, Size: feeInfoIconSize, Color: th.Color.GrayText2},
		Info:     &Action{URL: l.FeesURL},

		ValueColor: th.Color.Text,
		Edit: editLink(l, th.Color.Primary, &Action{
			Route:       EthereumEditFeeRoute,
			AccountID:   account.ID,
			Transaction: tx,
		}),
		CounterValue: countervalue.Result{Kind: countervalue.Unavailable},
		CounterColor: th.Color.GrayText2,

		GasLimit: NewGasLimitRow(l, account, tx, extra),
	}
	if l.FeesURL == "" {
		row.Info = nil
	}

	rate, ok := extra.FeeRate()
	if !ok {
		return row, nil
	}

	var err error
	row.FeeRate, err = l.FormatAmount(rate, extra.FeeUnit(), currency.FormatOptions{ShowCode: true})
	if err != nil {
		return nil, err
	}

	fee, ok := extra.EstimatedFee()
	if !ok {
		return row, nil
	}
	row.Fee, err = l.FormatAmount(fee, feeUnit(account), currency.FormatOptions{ShowCode: true})
	if err != nil {
		return nil, err
	}
	row.CounterValue, err = l.CounterValue(fee, countervalue.Options{
		Before:   counterValueApprox,
		ShowCode: true,
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// feeUnit is the account unit for ether accounts and ether for tokens.
func feeUnit(account *sharedW.Account) currency.Unit {
	if account.Currency.Equal(currency.Ethereum) {
		return account.DisplayUnit()
	}
	return currency.Ethereum.DisplayUnit()
}
