package logger

import (
	"io"
	"reflect"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/decred/slog"
)

func TestParseAndSetDebugLevels(t *testing.T) {
	extLog := slog.NewBackend(io.Discard).Logger("EXT")
	uiLog := slog.NewBackend(io.Discard).Logger("UI")
	btcLog := btclog.NewBackend(io.Discard).Logger("BTC")
	New(map[string]slog.Logger{"EXT": extLog, "UI": uiLog}, map[string]btclog.Logger{"BTC": btcLog})

	if got := SupportedSubsystems(); !reflect.DeepEqual(got, []string{"BTC", "EXT", "UI"}) {
		t.Fatalf("unexpected subsystems %v", got)
	}

	if err := ParseAndSetDebugLevels("debug"); err != nil {
		t.Fatal(err)
	}
	if extLog.Level() != slog.LevelDebug || btcLog.Level() != btclog.LevelDebug {
		t.Fatalf("levels not applied: %v %v", extLog.Level(), btcLog.Level())
	}

	if err := ParseAndSetDebugLevels("EXT=trace,BTC=error"); err != nil {
		t.Fatal(err)
	}
	if extLog.Level() != slog.LevelTrace || uiLog.Level() != slog.LevelDebug || btcLog.Level() != btclog.LevelError {
		t.Fatalf("pairs not applied: %v %v %v", extLog.Level(), uiLog.Level(), btcLog.Level())
	}

	tests := []string{"loud", "EXT=loud", "NOPE=info", "EXT=info,UI"}
	for _, spec := range tests {
		if err := ParseAndSetDebugLevels(spec); err == nil {
			t.Errorf("%q: expected an error", spec)
		}
	}
}
