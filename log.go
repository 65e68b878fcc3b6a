// Copyright (c) 2016, 2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"code.cryptopower.dev/group/walletdisplay/libwallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/btc"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/dcr"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/ltc"
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/ext"
	"code.cryptopower.dev/group/walletdisplay/libwallet/walletdata"
	libutils "code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/logger"

	"github.com/btcsuite/btclog"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard error and
// the write-end pipe of an initialized log rotator. Standard output carries
// the rendered rows.
type logWriter struct {
	loggerID string
}

// Write writes the data in p to standard error and the log rotator.
func (l logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	r := logRotators[l.loggerID]
	if r == nil {
		return len(p), nil
	}
	return r.Write(p)
}

// Loggers per subsystem.  A single backend logger is created and all subsytem
// loggers created from it will write to the backend.  When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
//
// Loggers can not be used before the log rotator has been initialized with a
// log file.  This must be performed early during application startup by calling
// initLogRotator.
var (
	// btcLogger and mainLogger identify the respective log files.
	btcLogger, mainLogger = "btc.log", libwallet.LogFilename

	// backendLog is the logging backend used to create all subsystem loggers.
	backendLog    = slog.NewBackend(logWriter{mainLogger})
	btcBackendLog = btclog.NewBackend(logWriter{btcLogger})

	// logRotators are the logging outputs. They are closed on shutdown.
	logRotators map[string]*rotator.Rotator

	log        = backendLog.Logger("WDSP")
	dlwlLog    = backendLog.Logger("DLWL")
	extLog     = backendLog.Logger("EXT")
	wdatLog    = backendLog.Logger("WDAT")
	currLog    = backendLog.Logger("CURR")
	sharedWLog = backendLog.Logger("SHWL")
	dcrLog     = backendLog.Logger("DCR")
	ethLog     = backendLog.Logger("ETH")
	btcLog     = btcBackendLog.Logger("BTC")
	ltcLog     = btcBackendLog.Logger("LTC")
)

// Initialize package-global logger variables.
func init() {
	libwallet.UseLogger(dlwlLog)
	ext.UseLogger(extLog)
	walletdata.UseLogger(wdatLog)
	currency.UseLogger(currLog)
	sharedW.UseLogger(sharedWLog)
	dcr.UseLogger(dcrLog)
	eth.UseLogger(ethLog)
	btc.UseLogger(btcLog)
	ltc.UseLogger(ltcLog)

	logger.New(subsystemSLoggers, subsystemBLoggers)
}

// subsystemSLoggers maps each subsystem identifier to its associated logger.
var subsystemSLoggers = map[string]slog.Logger{
	"WDSP": log,
	"DLWL": dlwlLog,
	"EXT":  extLog,
	"WDAT": wdatLog,
	"CURR": currLog,
	"SHWL": sharedWLog,
	"DCR":  dcrLog,
	"ETH":  ethLog,
}

var subsystemBLoggers = map[string]btclog.Logger{
	"BTC": btcLog,
	"LTC": ltcLog,
}

// initLogRotator initializes the logging rotater to write logs to logFile and
// create roll files in the same directory.  It must be called before the
// package-global log rotater variables are used.
func initLogRotator(logDir string, maxRolls int) error {
	closeLogRotators()

	logRotators = map[string]*rotator.Rotator{
		btcLogger:  nil,
		mainLogger: nil,
	}

	if err := os.MkdirAll(logDir, libutils.UserFilePerm); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	for logFile := range logRotators {
		r, err := rotator.New(filepath.Join(logDir, logFile), 32*1024, false, maxRolls)
		if err != nil {
			return fmt.Errorf("failed to create file rotator: %v", err)
		}
		logRotators[logFile] = r
	}
	return nil
}

// closeLogRotators closes any initialized log rotators.
func closeLogRotators() {
	for _, r := range logRotators {
		if r != nil {
			r.Close()
		}
	}
	logRotators = nil
}
