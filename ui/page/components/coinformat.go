package components

import (
	"strings"
	"unicode"

	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"golang.org/x/text/language"
)

// mainFractionDigits is how many fraction digits stay in the main part of a
// balance. The rest is drawn smaller.
const mainFractionDigits = 2

// BalanceParts is a formatted balance broken into the part drawn at full
// size, the trailing fraction digits drawn smaller and the unit.
type BalanceParts struct {
	Main string
	Sub  string
	Unit string
}

func (b BalanceParts) String() string {
	return b.Main + b.Sub + b.Unit
}

// splitBalance breaks out the unit part and the low order fraction digits of
// a formatted amount.
func splitBalance(amount string, locale language.Tag) BalanceParts {
	var parts BalanceParts

	numeric := amount
	if i := strings.LastIndex(amount, " "); i != -1 && !startsWithDigit(amount[i+1:]) {
		numeric, parts.Unit = amount[:i], amount[i:]
	}

	decimalSep := currency.SeparatorsFor(locale).Decimal
	decimalIndex := strings.LastIndex(numeric, decimalSep)
	if decimalIndex == -1 {
		parts.Main = numeric
		return parts
	}

	fraction := numeric[decimalIndex+len(decimalSep):]
	digits := 0
	for i, r := range fraction {
		if !unicode.IsDigit(r) {
			break
		}
		digits++
		if digits == mainFractionDigits {
			keep := decimalIndex + len(decimalSep) + i + 1
			parts.Main, parts.Sub = numeric[:keep], numeric[keep:]
			return parts
		}
	}
	parts.Main = numeric
	return parts
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
