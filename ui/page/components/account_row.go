package components

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
)

const (
	accountNameMaxRunes = 24
	currencyIconSize    = 24
)

// accountCounterValuePlaceholder is drawn in place of the counter-value while
// its rate loads.
var accountCounterValuePlaceholder = countervalue.Placeholder{Width: 40, Height: 20}

// AccountRow is one entry of the account list.
type AccountRow struct {
	AccountID    string
	CurrencyIcon Icon
	Name         Label
	SyncStatus   SyncStatus
	Balance      BalanceParts
	BalanceColor string
	CounterValue countervalue.Result
	CounterColor string
	// IsLast drops the divider under the row.
	IsLast       bool
	DividerColor string
	Action       Action
}

// NewAccountRow builds the row of account. The sync state is read from the
// load bridge when there is one.
func NewAccountRow(l *load.Load, account *sharedW.Account, isLast bool) (*AccountRow, error) {
	balance, err := l.FormatAmount(account.Balance, account.DisplayUnit(), currency.FormatOptions{ShowCode: true})
	if err != nil {
		return nil, err
	}

	placeholder := accountCounterValuePlaceholder
	cv, err := l.CounterValue(account.Balance, countervalue.Options{
		ShowCode:    true,
		Placeholder: &placeholder,
	})
	if err != nil {
		return nil, err
	}

	var (
		state      sharedW.SyncState
		isUpToDate bool
	)
	if l.Bridge != nil {
		state = l.Bridge.SyncState(account.ID)
		isUpToDate = l.Bridge.IsUpToDate(account.ID)
	}

	th := l.Theme
	row := &AccountRow{
		AccountID: account.ID,
		CurrencyIcon: Icon{
			Name:  account.Currency.ID(),
			Size:  currencyIconSize,
			Color: account.Currency.Color(),
		},
		Name: Label{
			Text:  ellipsizeMiddle(account.Name, accountNameMaxRunes),
			Color: th.Color.Text,
		},
		SyncStatus:   NewSyncStatus(th, l.Printer, isUpToDate, state),
		Balance:      splitBalance(balance, l.Locale),
		BalanceColor: th.Color.Text,
		CounterValue: cv,
		CounterColor: th.Color.GrayText2,
		IsLast:       isLast,
		Action:       Action{Route: AccountRoute, AccountID: account.ID},
	}
	if !isLast {
		row.DividerColor = th.Color.Background
	}
	return row, nil
}

// AccountRows builds the rows of every bridge account in order.
func AccountRows(l *load.Load) ([]*AccountRow, error) {
	accounts, err := l.Bridge.GetAccountsRaw()
	if err != nil {
		return nil, err
	}
	rows := make([]*AccountRow, 0, accounts.Count)
	for i, acc := range accounts.Acc {
		row, err := NewAccountRow(l, acc, i == len(accounts.Acc)-1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
