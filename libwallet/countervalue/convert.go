package countervalue

import (
	"math/big"

	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
	"golang.org/x/text/language"
)

type ResultKind uint8

const (
	Value ResultKind = iota
	Loading
	Unavailable
)

func (k ResultKind) String() string {
	switch k {
	case Value:
		return "value"
	case Loading:
		return "loading"
	default:
		return "unavailable"
	}
}

// Placeholder is the fixed size box drawn while a rate loads.
type Placeholder struct {
	Width  int
	Height int
}

// Result is the displayable outcome of a conversion. Text is set for Value
// only. Placeholder is only set for Loading, and a nil Placeholder there means
// nothing should be drawn.
type Result struct {
	Kind        ResultKind
	Text        string
	Placeholder *Placeholder
}

func (r Result) String() string {
	return r.Text
}

type Options struct {
	// Before is prepended to the value, as in "≈ ".
	Before      string
	ShowCode    bool
	UseSymbol   bool
	Placeholder *Placeholder
	Locale      language.Tag
}

// Convert renders amount in to at rate. It returns at once with the variant
// matching the rate state and never waits for a rate to resolve.
func Convert(amount currency.Amount, to *currency.Currency, rate Rate, opts Options) (Result, error) {
	const op errors.Op = "countervalue.Convert"

	from := amount.Currency()
	if from == nil || to == nil {
		return Result{}, utils.CodedError(op, errors.Invalid, utils.ErrMalformedCurrency, "conversion needs both currencies")
	}

	switch rate.State {
	case RateLoading:
		return Result{Kind: Loading, Placeholder: opts.Placeholder}, nil
	case RateUnavailable:
		return Result{Kind: Unavailable}, nil
	}

	fopts := currency.FormatOptions{
		ShowCode:  opts.ShowCode,
		UseSymbol: opts.UseSymbol,
		Locale:    opts.Locale,
	}

	if from.Equal(to) {
		s, err := amount.Format(fopts)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: Value, Text: opts.Before + s}, nil
	}

	if (rate.From != nil && !rate.From.Equal(from)) || (rate.To != nil && !rate.To.Equal(to)) {
		return Result{}, utils.CodedError(op, errors.Invalid, utils.ErrCurrencyMismatch,
			"rate %v/%v cannot convert %v to %v", rate.From, rate.To, from, to)
	}

	fopts.RoundToUnit = true
	if to.Kind() == currency.Fiat {
		fopts.ShowAllDigits = true
		fopts.ThresholdIndicator = true
	}

	raw := amount.Decimal().Mul(rate.Ratio)
	s, err := currency.FormatDecimal(raw, to.DisplayUnit(), fopts)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: Value, Text: opts.Before + s}, nil
}

// OneCoin is one whole display unit of c, as used by "1 BTC = ..." labels.
func OneCoin(c *currency.Currency) currency.Amount {
	mag := big.NewInt(int64(c.DisplayUnit().Magnitude))
	return currency.NewAmount(c, new(big.Int).Exp(big.NewInt(10), mag, nil))
}
