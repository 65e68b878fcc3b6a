package currency

import (
	"strings"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
	"github.com/ethereum/go-ethereum/common"
)

// Kind tags the variant of a Currency.
type Kind uint8

const (
	Crypto Kind = iota
	Token
	Fiat
)

func (k Kind) String() string {
	switch k {
	case Crypto:
		return "crypto"
	case Token:
		return "token"
	case Fiat:
		return "fiat"
	default:
		return "unknown"
	}
}

// Currency is a chain currency, a token living on a chain currency, or a fiat
// currency used as a counter-value. Values are immutable once built and are
// shared by pointer.
type Currency struct {
	id       string
	name     string
	ticker   string
	kind     Kind
	units    []Unit
	color    string
	parent   *Currency
	contract common.Address
}

// NewCryptoCurrency builds a chain currency. units[0] is the display unit.
func NewCryptoCurrency(id, name, ticker, color string, units ...Unit) (*Currency, error) {
	const op errors.Op = "currency.NewCryptoCurrency"
	return newCurrency(op, Crypto, id, name, ticker, color, units)
}

// NewToken builds a token issued by contract on the parent chain currency.
func NewToken(id, name, ticker, color string, parent *Currency, contract string, units ...Unit) (*Currency, error) {
	const op errors.Op = "currency.NewToken"
	if parent == nil || parent.kind != Crypto {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "token %q needs a chain currency parent", id)
	}
	if !common.IsHexAddress(contract) {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "token %q: bad contract address %q", id, contract)
	}

	c, err := newCurrency(op, Token, id, name, ticker, color, units)
	if err != nil {
		return nil, err
	}
	c.parent = parent
	c.contract = common.HexToAddress(contract)
	return c, nil
}

// NewFiat builds a fiat currency.
func NewFiat(id, name, ticker, color string, units ...Unit) (*Currency, error) {
	const op errors.Op = "currency.NewFiat"
	return newCurrency(op, Fiat, id, name, ticker, color, units)
}

func newCurrency(op errors.Op, kind Kind, id, name, ticker, color string, units []Unit) (*Currency, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ticker) == "" {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "id and ticker are required")
	}
	if len(units) == 0 {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "currency %q has no units", id)
	}
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return nil, err
		}
	}
	if color != "" {
		scheme, err := utils.ParseColorScheme(color)
		if err != nil {
			return nil, err
		}
		color = scheme.Hex()
	}

	return &Currency{
		id:     id,
		name:   name,
		ticker: strings.ToUpper(ticker),
		kind:   kind,
		units:  append([]Unit(nil), units...),
		color:  color,
	}, nil
}

func (c *Currency) ID() string     { return c.id }
func (c *Currency) Name() string   { return c.name }
func (c *Currency) Ticker() string { return c.ticker }
func (c *Currency) Kind() Kind     { return c.kind }

// Color is the "#rrggbb" display colour, empty when none was set.
func (c *Currency) Color() string { return c.color }

// Units returns a copy of the currency units, display unit first.
func (c *Currency) Units() []Unit {
	return append([]Unit(nil), c.units...)
}

func (c *Currency) DisplayUnit() Unit {
	return c.units[0]
}

// UnitByCode looks a unit up by its code, ignoring case.
func (c *Currency) UnitByCode(code string) (Unit, bool) {
	for _, u := range c.units {
		if strings.EqualFold(u.Code, code) {
			return u, true
		}
	}
	return Unit{}, false
}

// Parent is the chain currency of a token and nil for every other kind.
func (c *Currency) Parent() *Currency { return c.parent }

// Contract is the token contract address, the zero address otherwise.
func (c *Currency) Contract() common.Address { return c.contract }

// Equal reports whether both values describe the same currency.
func (c *Currency) Equal(other *Currency) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c == other || c.id == other.id
}

func (c *Currency) String() string {
	return c.ticker
}
