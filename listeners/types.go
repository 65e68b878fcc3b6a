package listeners

type SyncStage int

const (
	// Sync notification stages
	SyncStarted   SyncStage = iota // 0 = sync started.
	SyncCompleted                  // 1 = sync completed.
	SyncCanceled                   // 2 = sync canceled.
	SyncFailed                     // 3 = sync ended with an error.
)

func (s SyncStage) String() string {
	switch s {
	case SyncStarted:
		return "started"
	case SyncCompleted:
		return "completed"
	case SyncCanceled:
		return "canceled"
	case SyncFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SyncStatusUpdate models sync notifications of one account.
type SyncStatusUpdate struct {
	Stage       SyncStage
	AccountID   string
	WillRestart bool
	Err         error
}
