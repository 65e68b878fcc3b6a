package wallet

import (
	"sort"
	"sync"

	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
)

// Bridge gives read access to accounts and their chain specific transaction
// data.
type Bridge interface {
	GetAccountsRaw() (*Accounts, error)
	GetAccount(accountID string) (*Account, error)
	SyncState(accountID string) SyncState
	IsUpToDate(accountID string) bool
	PendingTransaction(accountID string) (*Transaction, error)
}

type accountEntry struct {
	account   *Account
	order     int
	state     SyncState
	upToDate  bool
	pendingTx *Transaction
}

// MemoryBridge is a Bridge over accounts held in memory. Sync events fed to
// it update the account state and are forwarded to registered listeners.
type MemoryBridge struct {
	mu       sync.RWMutex
	accounts map[string]*accountEntry

	listenersMu   sync.RWMutex
	syncListeners map[string]SyncProgressListener
}

func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		accounts:      make(map[string]*accountEntry),
		syncListeners: make(map[string]SyncProgressListener),
	}
}

// AddAccount stores a copy of the account. The account ID must be unique.
func (b *MemoryBridge) AddAccount(account *Account) error {
	const op = "wallet.AddAccount"
	if account == nil || account.ID == "" || account.Currency == nil {
		return utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "account needs an ID and a currency")
	}
	acc := *account
	if acc.Balance.Currency() == nil && acc.Balance.IsZero() {
		acc.Balance = currency.NewAmountFromInt64(acc.Currency, 0)
	}
	if !acc.Balance.Currency().Equal(acc.Currency) {
		return utils.CodedError(op, errors.Invalid, utils.ErrCurrencyMismatch,
			"%v balance on a %s account", acc.Balance.Currency(), acc.Currency)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[account.ID]; ok {
		return utils.CodedError(op, errors.Exist, utils.ErrExist, "account %s", account.ID)
	}
	b.accounts[account.ID] = &accountEntry{account: &acc, order: len(b.accounts)}
	return nil
}

// SetBalance replaces the balance of an account.
func (b *MemoryBridge) SetBalance(accountID string, balance currency.Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, err := b.entry("wallet.SetBalance", accountID)
	if err != nil {
		return err
	}
	if !balance.Currency().Equal(entry.account.Currency) {
		return utils.CodedError("wallet.SetBalance", errors.Invalid, utils.ErrCurrencyMismatch,
			"%s balance on a %s account", balance.Currency(), entry.account.Currency)
	}
	acc := *entry.account
	acc.Balance = balance
	entry.account = &acc
	return nil
}

// SetPendingTransaction validates the extras of tx against the account
// family and stores it as the transaction being edited.
func (b *MemoryBridge) SetPendingTransaction(tx *Transaction) error {
	const op = "wallet.SetPendingTransaction"
	if tx == nil {
		return utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "no transaction")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	entry, err := b.entry(op, tx.AccountID)
	if err != nil {
		return err
	}
	family, ok := familyOfCurrency(entry.account)
	if !ok {
		return utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "%s transactions carry no extras", entry.account.Currency.Ticker())
	}
	if err := ValidateExtra(family, tx.Extra); err != nil {
		return err
	}
	entry.pendingTx = tx
	return nil
}

// GetAccountsRaw returns the accounts in the order they were added.
func (b *MemoryBridge) GetAccountsRaw() (*Accounts, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]*accountEntry, 0, len(b.accounts))
	for _, e := range b.accounts {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	accounts := &Accounts{Count: len(entries), Acc: make([]*Account, 0, len(entries))}
	for _, e := range entries {
		acc := *e.account
		accounts.Acc = append(accounts.Acc, &acc)
	}
	return accounts, nil
}

func (b *MemoryBridge) GetAccount(accountID string) (*Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, err := b.entry("wallet.GetAccount", accountID)
	if err != nil {
		return nil, err
	}
	acc := *entry.account
	return &acc, nil
}

func (b *MemoryBridge) SyncState(accountID string) SyncState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if entry, ok := b.accounts[accountID]; ok {
		return entry.state
	}
	return SyncState{}
}

func (b *MemoryBridge) IsUpToDate(accountID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if entry, ok := b.accounts[accountID]; ok {
		return entry.upToDate
	}
	return false
}

// PendingTransaction returns the transaction being edited on the account,
// or nil if there is none.
func (b *MemoryBridge) PendingTransaction(accountID string) (*Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, err := b.entry("wallet.PendingTransaction", accountID)
	if err != nil {
		return nil, err
	}
	return entry.pendingTx, nil
}

func (b *MemoryBridge) entry(op errors.Op, accountID string) (*accountEntry, error) {
	entry, ok := b.accounts[accountID]
	if !ok {
		return nil, utils.CodedError(op, errors.NotExist, utils.ErrNotExist, "account %s", accountID)
	}
	return entry, nil
}

func (b *MemoryBridge) updateState(accountID string, update func(e *accountEntry)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.accounts[accountID]
	if !ok {
		log.Warnf("sync event for unknown account %s", accountID)
		return false
	}
	update(entry)
	return true
}

func (b *MemoryBridge) AddSyncProgressListener(syncProgressListener SyncProgressListener, uniqueIdentifier string) error {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()

	if _, ok := b.syncListeners[uniqueIdentifier]; ok {
		return errors.New(utils.ErrListenerAlreadyExist)
	}
	b.syncListeners[uniqueIdentifier] = syncProgressListener
	return nil
}

func (b *MemoryBridge) RemoveSyncProgressListener(uniqueIdentifier string) {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()
	delete(b.syncListeners, uniqueIdentifier)
}

func (b *MemoryBridge) listeners() []SyncProgressListener {
	b.listenersMu.RLock()
	defer b.listenersMu.RUnlock()
	list := make([]SyncProgressListener, 0, len(b.syncListeners))
	for _, l := range b.syncListeners {
		list = append(list, l)
	}
	return list
}

// OnSyncStarted marks the account as syncing.
func (b *MemoryBridge) OnSyncStarted(accountID string, wasRestarted bool) {
	if !b.updateState(accountID, func(e *accountEntry) { e.state = SyncState{Pending: true} }) {
		return
	}
	for _, l := range b.listeners() {
		l.OnSyncStarted(accountID, wasRestarted)
	}
}

// OnSyncCompleted marks the account as synced and up to date.
func (b *MemoryBridge) OnSyncCompleted(accountID string) {
	if !b.updateState(accountID, func(e *accountEntry) {
		e.state = SyncState{}
		e.upToDate = true
	}) {
		return
	}
	for _, l := range b.listeners() {
		l.OnSyncCompleted(accountID)
	}
}

// OnSyncCanceled clears the pending state. A sync that will restart keeps
// the account pending.
func (b *MemoryBridge) OnSyncCanceled(accountID string, willRestart bool) {
	if !b.updateState(accountID, func(e *accountEntry) { e.state = SyncState{Pending: willRestart} }) {
		return
	}
	for _, l := range b.listeners() {
		l.OnSyncCanceled(accountID, willRestart)
	}
}

// OnSyncEndedWithError records the sync failure on the account.
func (b *MemoryBridge) OnSyncEndedWithError(accountID string, err error) {
	if !b.updateState(accountID, func(e *accountEntry) { e.state = SyncState{Err: err} }) {
		return
	}
	log.Errorf("sync of account %s failed: %v", accountID, err)
	for _, l := range b.listeners() {
		l.OnSyncEndedWithError(accountID, err)
	}
}
