package components

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	"golang.org/x/text/message"
)

type SyncStatusKind int

const (
	SyncStatusUpToDate SyncStatusKind = iota
	SyncStatusSyncing
	SyncStatusError
	SyncStatusOutdated
)

// SyncStatus is the sync indicator under an account name. TickColor is
// empty when no tick is drawn.
type SyncStatus struct {
	Kind      SyncStatusKind
	Label     Label
	TickColor string
	Err       error
}

// NewSyncStatus composes the indicator from the two independent inputs. An
// error wins over everything, then a sync in progress on an outdated account,
// then the up to date flag. Labels are translated with p.
func NewSyncStatus(th *values.Theme, p *message.Printer, isUpToDate bool, state sharedW.SyncState) SyncStatus {
	if p == nil {
		p = values.NewPrinter(values.English)
	}
	switch {
	case state.Err != nil:
		return SyncStatus{
			Kind:      SyncStatusError,
			Label:     Label{Text: p.Sprintf(values.StrSyncError), Color: th.Color.Danger},
			TickColor: th.Color.Danger,
			Err:       state.Err,
		}
	case state.Pending && !isUpToDate:
		return SyncStatus{
			Kind:      SyncStatusSyncing,
			Label:     Label{Text: p.Sprintf(values.StrSynchronizing), Color: th.Color.GrayText2},
			TickColor: th.Color.Gray4,
		}
	case isUpToDate:
		return SyncStatus{
			Kind:  SyncStatusUpToDate,
			Label: Label{Text: p.Sprintf(values.StrSynchronized), Color: th.Color.GrayText2},
		}
	default:
		return SyncStatus{
			Kind:      SyncStatusOutdated,
			Label:     Label{Text: p.Sprintf(values.StrOutdated), Color: th.Color.GrayText2},
			TickColor: th.Color.Gray4,
		}
	}
}
