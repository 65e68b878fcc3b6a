package utils

import (
	"fmt"

	"decred.org/dcrwallet/v2/errors"
)

const (
	// Error Codes
	ErrInvalid                      = "invalid"
	ErrExist                        = "exists"
	ErrNotExist                     = "not_exists"
	ErrUnavailable                  = "unavailable"
	ErrListenerAlreadyExist         = "listener_already_exist"
	ErrLoggerAlreadyRegistered      = "logger_already_registered"
	ErrLogRotatorAlreadyInitialized = "log_rotator_already_initialized"
	ErrMalformedUnit                = "malformed_unit"
	ErrMalformedAmount              = "malformed_amount"
	ErrMalformedCurrency            = "malformed_currency"
	ErrCurrencyMismatch             = "currency_mismatch"
	ErrUnknownCurrency              = "unknown_currency"
	ErrIncompleteTxExtra            = "incomplete_tx_extra"
	ErrRateSourceUnsupported        = "rate_source_unsupported"
)

var (
	ErrInvalidNet   = errors.New("invalid network type found")
	ErrAssetUnknown = errors.New("unknown asset found")
)

// CodedError builds an errors.E of the given kind whose message starts with
// one of the error codes above, so ui/values can map it back to a message.
func CodedError(op errors.Op, kind errors.Kind, code string, format string, args ...interface{}) error {
	if format == "" {
		return errors.E(op, kind, code)
	}
	return errors.E(op, kind, fmt.Sprintf("%s: %s", code, fmt.Sprintf(format, args...)))
}
