package countervalue

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"github.com/shopspring/decimal"
)

func TestConvert(t *testing.T) {
	now := time.Now()
	btcUSD := NewRate(currency.Bitcoin, currency.USDollar, decimal.NewFromInt(23000), now)
	ethUSD := NewRate(currency.Ethereum, currency.USDollar, decimal.RequireFromString("1850.25"), now)
	placeholder := &Placeholder{Width: 40, Height: 20}

	tests := []struct {
		name     string
		amount   currency.Amount
		to       *currency.Currency
		rate     Rate
		opts     Options
		wantKind ResultKind
		wantText string
	}{{
		name:     "one bitcoin in dollars",
		amount:   OneCoin(currency.Bitcoin),
		to:       currency.USDollar,
		rate:     btcUSD,
		opts:     Options{ShowCode: true},
		wantKind: Value,
		wantText: "23,000.00 USD",
	}, {
		name:     "gas fee with approximation marker",
		amount:   currency.NewAmountFromInt64(currency.Ethereum, 441000000000000),
		to:       currency.USDollar,
		rate:     ethUSD,
		opts:     Options{Before: "≈ ", ShowCode: true},
		wantKind: Value,
		wantText: "≈ 0.82 USD",
	}, {
		name:     "dust below one cent",
		amount:   currency.NewAmountFromInt64(currency.Bitcoin, 1),
		to:       currency.USDollar,
		rate:     btcUSD,
		wantKind: Value,
		wantText: "< 0.01",
	}, {
		name:     "zero rate is a value",
		amount:   OneCoin(currency.Bitcoin),
		to:       currency.USDollar,
		rate:     RatioRate(currency.Bitcoin, currency.USDollar, decimal.Zero, now),
		wantKind: Value,
		wantText: "0",
	}, {
		name:     "loading with placeholder",
		amount:   OneCoin(currency.Bitcoin),
		to:       currency.USDollar,
		rate:     LoadingRate(currency.Bitcoin, currency.USDollar),
		opts:     Options{Placeholder: placeholder},
		wantKind: Loading,
	}, {
		name:     "unavailable",
		amount:   OneCoin(currency.Bitcoin),
		to:       currency.USDollar,
		rate:     UnavailableRate(currency.Bitcoin, currency.USDollar),
		wantKind: Unavailable,
	}, {
		name:     "crypto target keeps its precision",
		amount:   OneCoin(currency.Decred),
		to:       currency.Bitcoin,
		rate:     NewRate(currency.Decred, currency.Bitcoin, decimal.RequireFromString("0.000612345678"), now),
		opts:     Options{ShowCode: true},
		wantKind: Value,
		wantText: "0.00061235 BTC",
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Convert(test.amount, test.to, test.rate, test.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != test.wantKind {
				t.Fatalf("expected %s, got %s", test.wantKind, got.Kind)
			}
			if got.Text != test.wantText {
				t.Fatalf("expected %q, got %q", test.wantText, got.Text)
			}
			if test.wantKind == Loading && got.Placeholder != test.opts.Placeholder {
				t.Fatalf("expected the caller's placeholder, got %+v", got.Placeholder)
			}
		})
	}
}

func TestConvertIdentity(t *testing.T) {
	values := []string{"0", "1", "123456789", "441000000000000", "1000000000000000000000000000000"}
	for _, c := range currency.All() {
		for _, v := range values {
			raw, _ := new(big.Int).SetString(v, 10)
			amount := currency.NewAmount(c, raw)

			want, err := currency.Format(raw, c.DisplayUnit(), currency.FormatOptions{ShowCode: true})
			if err != nil {
				t.Fatal(err)
			}
			for _, rate := range []Rate{Identity(c), RatioRate(c, c, decimal.NewFromInt(1), time.Time{})} {
				got, err := Convert(amount, c, rate, Options{ShowCode: true})
				if err != nil {
					t.Fatal(err)
				}
				if got.Kind != Value || got.Text != want {
					t.Fatalf("%s %s: expected %q, got %s %q", c, v, want, got.Kind, got.Text)
				}
			}
		}
	}
}

// TestConvertExclusivity checks that unavailable and zero rates never render
// alike.
func TestConvertExclusivity(t *testing.T) {
	amount := OneCoin(currency.Ethereum)
	unavailable, err := Convert(amount, currency.Euro, UnavailableRate(currency.Ethereum, currency.Euro), Options{})
	if err != nil {
		t.Fatal(err)
	}
	zero, err := Convert(amount, currency.Euro, RatioRate(currency.Ethereum, currency.Euro, decimal.Zero, time.Time{}), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if unavailable.Kind != Unavailable || unavailable.Text != "" {
		t.Fatalf("unexpected unavailable result %+v", unavailable)
	}
	if zero.Kind != Value || zero.Text != "0" {
		t.Fatalf("unexpected zero result %+v", zero)
	}
}

func TestConvertLoadingReturnsAtOnce(t *testing.T) {
	done := make(chan Result, 1)
	go func() {
		res, _ := Convert(OneCoin(currency.Bitcoin), currency.USDollar, LoadingRate(currency.Bitcoin, currency.USDollar), Options{})
		done <- res
	}()

	select {
	case res := <-done:
		if res.Kind != Loading || res.Placeholder != nil {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("Convert blocked on a loading rate")
	}
}

func TestConvertErrors(t *testing.T) {
	rate := NewRate(currency.Bitcoin, currency.USDollar, decimal.NewFromInt(1), time.Now())

	_, err := Convert(OneCoin(currency.Litecoin), currency.USDollar, rate, Options{})
	if err == nil || !strings.Contains(err.Error(), utils.ErrCurrencyMismatch) {
		t.Fatalf("expected %s, got %v", utils.ErrCurrencyMismatch, err)
	}

	_, err = Convert(currency.Amount{}, currency.USDollar, rate, Options{})
	if err == nil || !strings.Contains(err.Error(), utils.ErrMalformedCurrency) {
		t.Fatalf("expected %s, got %v", utils.ErrMalformedCurrency, err)
	}
}

func TestRateArithmetic(t *testing.T) {
	now := time.Now()
	dcrBTC := NewRate(currency.Decred, currency.Bitcoin, decimal.RequireFromString("0.0005"), now)
	btcUSD := NewRate(currency.Bitcoin, currency.USDollar, decimal.NewFromInt(20000), now.Add(-time.Minute))

	dcrUSD := dcrBTC.Compose(btcUSD)
	if !dcrUSD.Available() || !dcrUSD.Price().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected 10 USD per DCR, got %s (%s)", dcrUSD.Price(), dcrUSD.State)
	}
	if !dcrUSD.Time.Equal(btcUSD.Time) {
		t.Fatal("expected the older timestamp")
	}

	usdBTC := btcUSD.Invert()
	if usdBTC.From != currency.USDollar || !usdBTC.Price().Equal(decimal.RequireFromString("0.00005")) {
		t.Fatalf("unexpected inverse price %s", usdBTC.Price())
	}

	if got := RatioRate(currency.Bitcoin, currency.USDollar, decimal.Zero, now).Invert(); got.State != RateUnavailable {
		t.Fatalf("zero rate inverted to %s", got.State)
	}

	tests := []struct {
		a, b Rate
		want RateState
	}{
		{LoadingRate(currency.Decred, currency.Bitcoin), btcUSD, RateLoading},
		{dcrBTC, UnavailableRate(currency.Bitcoin, currency.USDollar), RateUnavailable},
		{LoadingRate(currency.Decred, currency.Bitcoin), UnavailableRate(currency.Bitcoin, currency.USDollar), RateUnavailable},
	}
	for _, test := range tests {
		if got := test.a.Compose(test.b).State; got != test.want {
			t.Errorf("expected %s, got %s", test.want, got)
		}
	}
}
