package values

import (
	"strings"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"golang.org/x/text/message"
)

// This files holds implementation to translate errors into user friendly messages.

// TranslateErr translates all backend errors to user friendly messages in the
// language of p.
func TranslateErr(p *message.Printer, errStr string) string {
	switch {
	case strings.Contains(errStr, utils.ErrUnknownCurrency):
		return p.Sprintf(StrUnknownCurrency)

	case strings.Contains(errStr, utils.ErrMalformedAmount):
		return p.Sprintf(StrInvalidAmount)

	case strings.Contains(errStr, utils.ErrCurrencyMismatch):
		return p.Sprintf(StrCurrencyMismatch)

	case strings.Contains(errStr, utils.ErrRateSourceUnsupported):
		return p.Sprintf(StrRatesDisabled)

	case strings.Contains(errStr, utils.ErrIncompleteTxExtra):
		return p.Sprintf(StrIncompleteFee)
	}
	return errStr
}
