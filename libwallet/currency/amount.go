package currency

import (
	"math/big"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Amount is an immutable raw count of a currency. Its real value in a unit of
// magnitude m is value / 10^m.
type Amount struct {
	value    *big.Int
	currency *Currency
}

// NewAmount copies value, so later changes to it do not leak into the
// amount.
func NewAmount(c *Currency, value *big.Int) Amount {
	v := new(big.Int)
	if value != nil {
		v.Set(value)
	}
	return Amount{value: v, currency: c}
}

func NewAmountFromInt64(c *Currency, value int64) Amount {
	return Amount{value: big.NewInt(value), currency: c}
}

// ParseAmount reads s written in unit, which must belong to c.
func ParseAmount(c *Currency, s string, unit Unit, locale language.Tag) (Amount, error) {
	const op errors.Op = "currency.ParseAmount"
	if c == nil {
		return Amount{}, utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "nil currency")
	}
	if _, ok := c.UnitByCode(unit.Code); !ok {
		return Amount{}, utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "%s is not a unit of %s", unit.Code, c.ticker)
	}

	raw, err := Parse(s, unit, locale)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: raw, currency: c}, nil
}

// Value returns a copy of the raw count of smallest units.
func (a Amount) Value() *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.value)
}

func (a Amount) Currency() *Currency {
	return a.currency
}

func (a Amount) Sign() int {
	if a.value == nil {
		return 0
	}
	return a.value.Sign()
}

func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

func (a Amount) Neg() Amount {
	return Amount{value: new(big.Int).Neg(a.Value()), currency: a.currency}
}

// Add sums two amounts of the same currency.
func (a Amount) Add(b Amount) (Amount, error) {
	const op errors.Op = "currency.Amount.Add"
	if !a.currency.Equal(b.currency) {
		return Amount{}, utils.CodedError(op, errors.Invalid, utils.ErrCurrencyMismatch, "%v + %v", a.currency, b.currency)
	}
	return Amount{value: new(big.Int).Add(a.Value(), b.Value()), currency: a.currency}, nil
}

// Mul scales the amount by an integer factor, as in gas price times gas
// limit.
func (a Amount) Mul(factor *big.Int) Amount {
	if factor == nil {
		factor = new(big.Int)
	}
	return Amount{value: new(big.Int).Mul(a.Value(), factor), currency: a.currency}
}

// Decimal is the raw value as a decimal count of smallest units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.Value(), 0)
}

// Format renders the amount in the display unit of its currency.
func (a Amount) Format(opts FormatOptions) (string, error) {
	const op errors.Op = "currency.Amount.Format"
	if a.currency == nil {
		return "", utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "amount has no currency")
	}
	return a.FormatIn(a.currency.DisplayUnit(), opts)
}

// FormatIn renders the amount in any unit of its currency.
func (a Amount) FormatIn(unit Unit, opts FormatOptions) (string, error) {
	const op errors.Op = "currency.Amount.FormatIn"
	if a.currency == nil {
		return "", utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "amount has no currency")
	}
	return Format(a.value, unit, opts)
}

func (a Amount) String() string {
	s, err := a.Format(FormatOptions{ShowCode: true})
	if err != nil {
		return a.Value().String()
	}
	return s
}
