package currency

import (
	"math/big"
	"strings"
	"unicode"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// FormatOptions tunes how an amount is rendered. The zero value renders the
// exact value with English separators and no code.
type FormatOptions struct {
	// ShowCode appends " " + unit code.
	ShowCode bool
	// UseSymbol prefixes the unit symbol in place of the code when the unit
	// has one.
	UseSymbol bool
	// AlwaysShowSign prefixes "+" to positive values.
	AlwaysShowSign bool
	// ShowAllDigits keeps trailing fractional zeros up to the unit
	// magnitude.
	ShowAllDigits bool
	// MaxFractionDigits rounds to at most this many fractional digits.
	// Zero keeps every digit.
	MaxFractionDigits int
	// RoundToUnit caps the fractional digits at the unit magnitude. Used
	// for values that carry more precision than the unit, such as
	// converted counter-values.
	RoundToUnit bool
	// ThresholdIndicator renders a nonzero value that rounds to zero as
	// "< 0.01" instead of extending precision to its first significant
	// digit.
	ThresholdIndicator bool
	Locale             language.Tag
}

// Format renders value, counted in the smallest unit of a currency, in unit.
func Format(value *big.Int, unit Unit, opts FormatOptions) (string, error) {
	if err := unit.Validate(); err != nil {
		return "", err
	}
	if value == nil {
		value = new(big.Int)
	}
	return render(decimal.NewFromBigInt(value, int32(-unit.Magnitude)), unit, opts), nil
}

// FormatDecimal renders raw, a possibly fractional count of smallest units,
// in unit.
func FormatDecimal(raw decimal.Decimal, unit Unit, opts FormatOptions) (string, error) {
	if err := unit.Validate(); err != nil {
		return "", err
	}
	return render(raw.Shift(int32(-unit.Magnitude)), unit, opts), nil
}

func render(v decimal.Decimal, unit Unit, opts FormatOptions) string {
	seps := SeparatorsFor(opts.Locale)

	fractionCap := -1
	if opts.MaxFractionDigits > 0 {
		fractionCap = opts.MaxFractionDigits
	}
	if opts.RoundToUnit && (fractionCap < 0 || unit.Magnitude < fractionCap) {
		fractionCap = unit.Magnitude
	}

	negative := v.Sign() < 0
	abs := v.Abs()
	shown := abs
	belowThreshold := false
	if fractionCap >= 0 {
		shown = abs.Round(int32(fractionCap))
		if shown.IsZero() && !abs.IsZero() {
			if opts.ThresholdIndicator {
				belowThreshold = true
				shown = decimal.New(1, int32(-fractionCap))
			} else {
				shown = abs.Round(int32(firstSignificantDigit(abs)))
			}
		}
	}

	if shown.IsZero() {
		return withUnit("0", "", unit, opts)
	}

	digits := shown.String()
	fractionDigits := 0
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		fractionDigits = len(digits) - i - 1
	}
	if opts.ShowAllDigits && !belowThreshold {
		full := unit.Magnitude
		if fractionCap >= 0 && fractionCap < full {
			full = fractionCap
		}
		if full > fractionDigits {
			fractionDigits = full
		}
	}

	var grouped string
	if seps.PrimaryGroup == 3 && seps.SecondaryGroup == 3 {
		grouped = accounting.FormatNumberDecimal(shown, fractionDigits, ",", ".")
	} else {
		grouped = seps.groupDigits(accounting.FormatNumberDecimal(shown, fractionDigits, "", "."), ",")
	}
	grouped = strings.NewReplacer(",", seps.Group, ".", seps.Decimal).Replace(grouped)

	sign := ""
	switch {
	case negative:
		sign = "-"
	case opts.AlwaysShowSign:
		sign = "+"
	}

	if belowThreshold {
		if negative {
			return withUnit(grouped, "> -", unit, opts)
		}
		return withUnit(grouped, "< ", unit, opts)
	}
	return withUnit(grouped, sign, unit, opts)
}

// withUnit places the sign and the symbol or code around digits.
func withUnit(digits, sign string, unit Unit, opts FormatOptions) string {
	if opts.UseSymbol && unit.Symbol != "" {
		return sign + unit.Symbol + digits
	}
	if opts.ShowCode {
		return sign + digits + " " + unit.Code
	}
	return sign + digits
}

// firstSignificantDigit returns the number of fractional digits needed for
// the leading nonzero digit of a positive value below one to show.
func firstSignificantDigit(abs decimal.Decimal) int {
	coefficient := abs.Coefficient().String()
	return int(-abs.Exponent()) - len(coefficient) + 1
}

// Parse reads a value rendered by Format back into a count of smallest units
// of unit. The unit code or symbol, grouping marks and a sign are accepted.
// Input that does not land on a whole smallest unit is rejected.
func Parse(s string, unit Unit, locale language.Tag) (*big.Int, error) {
	const op errors.Op = "currency.Parse"
	if err := unit.Validate(); err != nil {
		return nil, err
	}
	seps := SeparatorsFor(locale)

	str := strings.TrimSpace(s)
	if strings.HasPrefix(str, "<") || strings.HasPrefix(str, ">") {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedAmount, "%q is a threshold, not an amount", s)
	}
	if n := len(unit.Code); len(str) > n && strings.EqualFold(str[len(str)-n:], unit.Code) {
		str = strings.TrimSpace(str[:len(str)-n])
	}

	sign := ""
	if strings.HasPrefix(str, "-") || strings.HasPrefix(str, "+") {
		sign, str = str[:1], str[1:]
	}
	if sign == "+" {
		sign = ""
	}
	if unit.Symbol != "" {
		str = strings.TrimPrefix(str, unit.Symbol)
	}

	if seps.Group != "" {
		str = strings.ReplaceAll(str, seps.Group, "")
		if strings.TrimSpace(seps.Group) == "" {
			str = strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return -1
				}
				return r
			}, str)
		}
	}
	str = strings.Replace(str, seps.Decimal, ".", 1)

	if !isPlainDecimal(str) {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedAmount, "%q", s)
	}

	d, err := decimal.NewFromString(sign + str)
	if err != nil {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedAmount, "%q: %v", s, err)
	}

	raw := d.Shift(int32(unit.Magnitude))
	if !raw.Equal(raw.Truncate(0)) {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedAmount,
			"%q has more than %d fractional digits", s, unit.Magnitude)
	}
	return raw.BigInt(), nil
}

func isPlainDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
