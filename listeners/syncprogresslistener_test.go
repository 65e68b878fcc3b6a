package listeners

import (
	"errors"
	"testing"
)

func TestSyncProgressListener(t *testing.T) {
	sp := NewSyncProgress()
	syncErr := errors.New("no peers")

	sp.OnSyncStarted("dcr-1", false)
	sp.OnSyncCanceled("dcr-1", true)
	sp.OnSyncEndedWithError("dcr-1", syncErr)
	sp.OnSyncCompleted("btc-1")

	want := []SyncStatusUpdate{
		{Stage: SyncStarted, AccountID: "dcr-1"},
		{Stage: SyncCanceled, AccountID: "dcr-1", WillRestart: true},
		{Stage: SyncFailed, AccountID: "dcr-1", Err: syncErr},
		{Stage: SyncCompleted, AccountID: "btc-1"},
	}
	for i, w := range want {
		got := <-sp.SyncStatusChan
		if got != w {
			t.Errorf("update %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestSyncProgressListenerDoesNotBlock(t *testing.T) {
	sp := NewSyncProgress()
	for i := 0; i < 10; i++ {
		sp.OnSyncCompleted("btc-1")
	}
	if n := len(sp.SyncStatusChan); n != cap(sp.SyncStatusChan) {
		t.Errorf("buffered %d updates, want %d", n, cap(sp.SyncStatusChan))
	}
	if SyncFailed.String() != "failed" {
		t.Errorf("SyncFailed = %s", SyncFailed)
	}
}
