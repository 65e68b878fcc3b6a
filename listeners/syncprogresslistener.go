package listeners

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
)

// SyncProgressListener satisfies libwallet SyncProgressListener interface
// contract. Updates are dropped when the channel is full; readers refetch
// the account state from the bridge on every update.
type SyncProgressListener struct {
	SyncStatusChan chan SyncStatusUpdate
}

func NewSyncProgress() *SyncProgressListener {
	return &SyncProgressListener{
		SyncStatusChan: make(chan SyncStatusUpdate, 4),
	}
}

func (sp *SyncProgressListener) OnSyncStarted(accountID string, wasRestarted bool) {
	sp.sendNotification(SyncStatusUpdate{
		Stage:     SyncStarted,
		AccountID: accountID,
	})
}

func (sp *SyncProgressListener) OnSyncCompleted(accountID string) {
	sp.sendNotification(SyncStatusUpdate{
		Stage:     SyncCompleted,
		AccountID: accountID,
	})
}

func (sp *SyncProgressListener) OnSyncCanceled(accountID string, willRestart bool) {
	sp.sendNotification(SyncStatusUpdate{
		Stage:       SyncCanceled,
		AccountID:   accountID,
		WillRestart: willRestart,
	})
}

func (sp *SyncProgressListener) OnSyncEndedWithError(accountID string, err error) {
	sp.sendNotification(SyncStatusUpdate{
		Stage:     SyncFailed,
		AccountID: accountID,
		Err:       err,
	})
}

func (sp *SyncProgressListener) sendNotification(signal SyncStatusUpdate) {
	select {
	case sp.SyncStatusChan <- signal:
	default:
	}
}

var _ sharedW.SyncProgressListener = (*SyncProgressListener)(nil)
