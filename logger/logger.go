package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/btcsuite/btclog"
	"github.com/decred/slog"
)

type logger struct {
	subsystemSLoggers map[string]slog.Logger
	subsystemBLoggers map[string]btclog.Logger
}

var instance *logger
var initCtx sync.Once

func New(sLoggers map[string]slog.Logger, bLoggers map[string]btclog.Logger) *logger {
	initCtx.Do(func() {
		instance = &logger{
			subsystemSLoggers: sLoggers,
			subsystemBLoggers: bLoggers,
		}
	})

	return instance
}

// setLogLevel sets the logging level for provided subsystem.  Invalid
// subsystems are ignored.
func (l *logger) setLogLevel(subsystemID string, logLevel string) {
	if subsystem, ok := l.subsystemSLoggers[subsystemID]; ok {
		// Defaults to info if the log level is invalid.
		level, _ := slog.LevelFromString(logLevel)
		subsystem.SetLevel(level)
	}

	if subsystem, ok := l.subsystemBLoggers[subsystemID]; ok {
		level, _ := btclog.LevelFromString(logLevel)
		subsystem.SetLevel(level)
	}
}

func (l *logger) exists(subsystemID string) bool {
	_, slExists := l.subsystemSLoggers[subsystemID]
	_, btcExists := l.subsystemBLoggers[subsystemID]
	return slExists || btcExists
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(logLevel string) error {
	if instance == nil {
		return errors.New("cannot set log level on nil logger")
	}
	for subsystemID := range instance.subsystemSLoggers {
		instance.setLogLevel(subsystemID, logLevel)
	}
	for subsystemID := range instance.subsystemBLoggers {
		instance.setLogLevel(subsystemID, logLevel)
	}
	return nil
}

// SetLogLevel sets the logging level for provided subsystem.  Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	if instance == nil {
		return
	}
	instance.setLogLevel(subsystemID, logLevel)
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	if instance == nil {
		return nil
	}
	subsystems := make([]string, 0, len(instance.subsystemSLoggers)+len(instance.subsystemBLoggers))
	for subsysID := range instance.subsystemSLoggers {
		subsystems = append(subsystems, subsysID)
	}
	for subsysID := range instance.subsystemBLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ValidLogLevel returns whether or not logLevel is a valid debug log level.
func ValidLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}

// ParseAndSetDebugLevels applies a debug level spec. The spec is either a
// single level for every subsystem, or comma separated subsystem=level
// pairs.
func ParseAndSetDebugLevels(debugLevel string) error {
	if instance == nil {
		return errors.New("cannot set log level on nil logger")
	}

	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !ValidLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%v] is invalid", debugLevel)
		}
		return SetLogLevels(debugLevel)
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid subsystem/level pair [%v]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		if !instance.exists(subsysID) {
			return fmt.Errorf("the specified subsystem [%v] is invalid -- supported subsystems %v",
				subsysID, SupportedSubsystems())
		}
		if !ValidLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%v] is invalid", logLevel)
		}

		instance.setLogLevel(subsysID, logLevel)
	}
	return nil
}
