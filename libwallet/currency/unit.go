package currency

import (
	"strings"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
)

// MaxMagnitude bounds unit magnitudes. It is far above any real
// denomination and keeps decimal exponents in range.
const MaxMagnitude = 255

// Unit describes one denomination of a currency. A raw integer amount a in
// this unit's currency has the real value a / 10^Magnitude units.
type Unit struct {
	Name      string
	Code      string
	Symbol    string
	Magnitude int
}

// NewUnit returns a validated unit.
func NewUnit(name, code, symbol string, magnitude int) (Unit, error) {
	u := Unit{
		Name:      name,
		Code:      code,
		Symbol:    symbol,
		Magnitude: magnitude,
	}
	if err := u.Validate(); err != nil {
		return Unit{}, err
	}
	return u, nil
}

// Validate reports a malformed unit: a magnitude out of [0, MaxMagnitude] or
// a missing code.
func (u Unit) Validate() error {
	const op errors.Op = "currency.Unit.Validate"
	if u.Magnitude < 0 {
		return utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "magnitude %d is negative", u.Magnitude)
	}
	if u.Magnitude > MaxMagnitude {
		return utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "magnitude %d is above %d", u.Magnitude, MaxMagnitude)
	}
	if strings.TrimSpace(u.Code) == "" {
		return utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "unit %q has no code", u.Name)
	}
	return nil
}

func (u Unit) String() string {
	return u.Code
}
