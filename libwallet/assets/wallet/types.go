package wallet

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
)

// Family groups the chains that share one transaction extras layout.
type Family string

const (
	FamilyBitcoin  Family = "bitcoin"
	FamilyDecred   Family = "decred"
	FamilyEthereum Family = "ethereum"
)

// FamilyOf returns the extras family of an asset. LTC and BCH are bitcoin
// family chains.
func FamilyOf(assetType utils.AssetType) (Family, bool) {
	switch assetType {
	case utils.BTCWalletAsset, utils.LTCWalletAsset, utils.BCHWalletAsset:
		return FamilyBitcoin, true
	case utils.DCRWalletAsset:
		return FamilyDecred, true
	case utils.ETHWalletAsset:
		return FamilyEthereum, true
	default:
		return "", false
	}
}

// Account is a read-only snapshot of a wallet account as displayed in
// account lists.
type Account struct {
	ID       string
	Name     string
	Currency *currency.Currency
	// Unit is the unit balances are displayed in. A zero Unit means the
	// currency display unit.
	Unit    currency.Unit
	Balance currency.Amount
}

// DisplayUnit returns the unit the account balance is rendered in.
func (a *Account) DisplayUnit() currency.Unit {
	if a.Unit.Code == "" && a.Currency != nil {
		return a.Currency.DisplayUnit()
	}
	return a.Unit
}

type Accounts struct {
	Count int
	Acc   []*Account
}

// SyncState is the transient synchronization status of an account.
type SyncState struct {
	Pending bool
	Err     error
}

// Transaction is a pending or historical transaction of an account with its
// chain specific extras.
type Transaction struct {
	ID        string
	AccountID string
	Amount    currency.Amount
	Extra     TransactionExtra
}

/** begin sync-related types */

type SyncProgressListener interface {
	OnSyncStarted(accountID string, wasRestarted bool)
	OnSyncCompleted(accountID string)
	OnSyncCanceled(accountID string, willRestart bool)
	OnSyncEndedWithError(accountID string, err error)
}

/** end sync-related types */
