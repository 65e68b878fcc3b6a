package ext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

var binancePrices = map[string]string{
	"BTCUSDT": "20000",
	"DCRUSDT": "15.5",
	"LTCUSDT": "80",
	"ETHUSDT": "1850.25",
	"DCRBTC":  "0.0005",
	"BTCEUR":  "18000",
	// BCHUSDT, LTCBTC and ETHEUR are left out to exercise failures.
}

func binanceServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		price, ok := binancePrices[symbol]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"code":-1121,"msg":"Invalid symbol."}`)
			return
		}
		fmt.Fprintf(w, `{"symbol":%q,"lastPrice":%q,"priceChangePercent":"1.25","bidPrice":"0","askPrice":"0"}`, symbol, price)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// useURLs points a rate source at test servers for the duration of a test.
func useURLs(t *testing.T, binancePrice, binanceWs, kucoinPrice string) {
	t.Helper()
	oldBinance, oldKucoin := binanceURLs, kucoinURLs
	binanceURLs = sourceURLs{price: binancePrice, ws: binanceWs}
	kucoinURLs = sourceURLs{price: kucoinPrice}
	t.Cleanup(func() {
		binanceURLs, kucoinURLs = oldBinance, oldKucoin
	})
}

type memoryStore struct {
	mtx     sync.Mutex
	tickers map[string][]*Ticker
}

func (m *memoryStore) SaveTickers(source string, tickers []*Ticker) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.tickers == nil {
		m.tickers = make(map[string][]*Ticker)
	}
	m.tickers[source] = tickers
	return nil
}

func (m *memoryStore) LoadTickers(source string) ([]*Ticker, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.tickers[source], nil
}

func TestBinanceCounterValue(t *testing.T) {
	srv := binanceServer(t)
	useURLs(t, srv.URL+"/api/v3/ticker/24hr?symbol=%s", "", "")

	store := new(memoryStore)
	rs, err := NewCommonRateSource(context.Background(), binance, RateSourceConfig{Store: store})
	if err != nil {
		t.Fatal(err)
	}

	if got := rs.CounterValue(currency.Decred, currency.USDollar); got.State != countervalue.RateLoading {
		t.Fatalf("expected loading before the first refresh, got %s", got.State)
	}
	if got := rs.CounterValue(currency.Decred, currency.JapaneseYen); got.State != countervalue.RateUnavailable {
		t.Fatalf("expected an unsupported pair to be unavailable, got %s", got.State)
	}

	rs.Refresh(false)
	if !rs.Ready() {
		t.Fatal("rate source should be ready after a refresh")
	}

	tests := []struct {
		name     string
		from, to *currency.Currency
		state    countervalue.RateState
		price    string
	}{
		{"direct", currency.Decred, currency.USDollar, countervalue.RateAvailable, "15.5"},
		{"stablecoin", currency.Bitcoin, currency.Tether, countervalue.RateAvailable, "20000"},
		{"pegged stablecoins", currency.USDCoin, currency.USDollar, countervalue.RateAvailable, "1"},
		{"inverse", currency.USDollar, currency.Bitcoin, countervalue.RateAvailable, "0.00005"},
		{"through btc", currency.Decred, currency.Euro, countervalue.RateAvailable, "9"},
		{"through usdt", currency.Ethereum, currency.Bitcoin, countervalue.RateAvailable, "0.0925125"},
		{"identity", currency.Litecoin, currency.Litecoin, countervalue.RateAvailable, "1"},
		{"failed fetch", currency.BitcoinCash, currency.USDollar, countervalue.RateUnavailable, "0"},
		{"unsupported", currency.Decred, currency.PoundSterling, countervalue.RateUnavailable, "0"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rate := rs.CounterValue(test.from, test.to)
			if rate.State != test.state {
				t.Fatalf("expected %s, got %s", test.state, rate.State)
			}
			if want := decimal.RequireFromString(test.price); !rate.Price().Equal(want) {
				t.Fatalf("expected price %s, got %s", want, rate.Price())
			}
			if rate.Stale {
				t.Fatal("fresh rate flagged stale")
			}
		})
	}

	if len(store.tickers[binance]) != len(binancePrices) {
		t.Fatalf("expected %d stored tickers, got %d", len(binancePrices), len(store.tickers[binance]))
	}
}

func TestCounterValueFeedsConvert(t *testing.T) {
	srv := binanceServer(t)
	useURLs(t, srv.URL+"/api/v3/ticker/24hr?symbol=%s", "", "")

	rs, err := NewCommonRateSource(context.Background(), binance, RateSourceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	rs.Refresh(false)

	fee := currency.NewAmountFromInt64(currency.Ethereum, 441000000000000)
	res, err := countervalue.Convert(fee, currency.USDollar, rs.CounterValue(currency.Ethereum, currency.USDollar),
		countervalue.Options{Before: "≈ ", ShowCode: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != countervalue.Value || res.Text != "≈ 0.82 USD" {
		t.Fatalf("unexpected result %s %q", res.Kind, res.Text)
	}
}

func TestStoredTickers(t *testing.T) {
	useURLs(t, "http://127.0.0.1:1/%s", "", "")

	old := time.Now().Add(-2 * rateExpiry)
	store := new(memoryStore)
	_ = store.SaveTickers(binance, []*Ticker{{
		Market:         "DCR-USDT",
		LastTradePrice: decimal.RequireFromString("12"),
		LastUpdate:     old,
	}, {
		Market:         "DOGE-USDT",
		LastTradePrice: decimal.RequireFromString("1"),
		LastUpdate:     old,
	}})

	rs, err := NewCommonRateSource(context.Background(), binance, RateSourceConfig{Store: store})
	if err != nil {
		t.Fatal(err)
	}

	rate := rs.CounterValue(currency.Decred, currency.USDollar)
	if rate.State != countervalue.RateAvailable || !rate.Stale {
		t.Fatalf("expected a stale stored rate, got %s stale=%v", rate.State, rate.Stale)
	}
	if !rate.Price().Equal(decimal.NewFromInt(12)) {
		t.Fatalf("unexpected stored price %s", rate.Price())
	}
	if rs.GetTicker("DOGE-USDT") != nil {
		t.Fatal("unsupported stored market should be ignored")
	}
}

func TestOfflineRateSource(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	useURLs(t, srv.URL+"?symbol=%s", "", "")

	store := new(memoryStore)
	_ = store.SaveTickers(binance, []*Ticker{{
		Market:         "BTC-USDT",
		LastTradePrice: decimal.RequireFromString("21000"),
		LastUpdate:     time.Now(),
	}})

	rs, err := NewCommonRateSource(context.Background(), binance, RateSourceConfig{Store: store, Offline: true})
	if err != nil {
		t.Fatal(err)
	}
	rs.Refresh(true)

	if got := rs.CounterValue(currency.Bitcoin, currency.USDollar); got.State != countervalue.RateAvailable {
		t.Fatalf("expected the stored rate, got %s", got.State)
	}
	if got := rs.CounterValue(currency.Decred, currency.USDollar); got.State != countervalue.RateUnavailable {
		t.Fatalf("an unknown rate should be unavailable offline, got %s", got.State)
	}
	if rs.GetTicker("DCR-USDT") != nil {
		t.Fatal("offline source should not fetch")
	}
	if requests != 0 {
		t.Fatalf("offline source made %d requests", requests)
	}
}

func TestDisabledRateSource(t *testing.T) {
	rs, err := NewCommonRateSource(context.Background(), none, RateSourceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	rs.Refresh(true)

	if got := rs.CounterValue(currency.Bitcoin, currency.USDollar); got.State != countervalue.RateUnavailable {
		t.Fatalf("expected unavailable, got %s", got.State)
	}
	if got := rs.CounterValue(currency.Bitcoin, currency.Bitcoin); got.State != countervalue.RateAvailable {
		t.Fatalf("identity should not depend on the source, got %s", got.State)
	}
	if rs.Ready() {
		t.Fatal("disabled source should not be ready")
	}

	if _, err := NewCommonRateSource(context.Background(), "bittrex", RateSourceConfig{}); err == nil ||
		!strings.Contains(err.Error(), utils.ErrRateSourceUnsupported) {
		t.Fatalf("expected %s, got %v", utils.ErrRateSourceUnsupported, err)
	}
}

func TestKuCoinGetTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "DCR-USDT" {
			fmt.Fprint(w, `{"code":"200000","data":null}`)
			return
		}
		fmt.Fprint(w, `{"code":"200000","data":{"time":1680000000000,"sequence":"1550467636704","price":"15.75","bestBid":"15.7","bestAsk":"15.8"}}`)
	}))
	defer srv.Close()
	useURLs(t, "", "", srv.URL+"/api/v1/market/orderbook/level1?symbol=%s")

	rs, err := NewCommonRateSource(context.Background(), kucoin, RateSourceConfig{})
	if err != nil {
		t.Fatal(err)
	}

	ticker := rs.GetTicker("dcr-usdt")
	if ticker == nil || !ticker.LastTradePrice.Equal(decimal.RequireFromString("15.75")) {
		t.Fatalf("unexpected ticker %+v", ticker)
	}
	if rs.GetTicker("LTC-USDT") != nil {
		t.Fatal("expected no ticker for a market kucoin returned no data for")
	}
	if rs.Name() != "Kucoin" {
		t.Fatalf("unexpected name %s", rs.Name())
	}
}

func TestToggleSource(t *testing.T) {
	srv := binanceServer(t)
	useURLs(t, srv.URL+"/api/v3/ticker/24hr?symbol=%s", "", "")

	rs, err := NewCommonRateSource(context.Background(), none, RateSourceConfig{})
	if err != nil {
		t.Fatal(err)
	}

	listener := NewRateListener()
	if err := rs.AddRateListener(listener, "test"); err != nil {
		t.Fatal(err)
	}
	if err := rs.AddRateListener(listener, "test"); err == nil {
		t.Fatal("expected a duplicate listener to be rejected")
	}

	if err := rs.ToggleSource(binance); err != nil {
		t.Fatal(err)
	}

	select {
	case <-listener.RateUpdateChan:
	case <-time.After(time.Second):
		t.Fatal("listener was not notified")
	}

	if got := rs.CounterValue(currency.Litecoin, currency.USDollar); !got.Available() {
		t.Fatalf("expected LTC rate after switching source, got %s", got.State)
	}

	rs.ToggleStatus(true)
	if got := rs.CounterValue(currency.Litecoin, currency.USDollar); got.State != countervalue.RateUnavailable {
		t.Fatalf("expected unavailable once disabled, got %s", got.State)
	}

	rs.RemoveRateListener("test")
	if err := rs.ToggleSource("unknown"); err == nil {
		t.Fatal("expected an unknown source to be rejected")
	}
}

func TestBinanceWebsocket(t *testing.T) {
	srv := binanceServer(t)

	upgrader := websocket.Upgrader{}
	wsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		msg := map[string]interface{}{
			"stream": "dcrusdt@ticker",
			"data": map[string]interface{}{
				"e": "24hrTicker",
				"s": "DCRUSDT",
				"c": "16.25",
				"P": "4.5",
			},
		}
		b, _ := json.Marshal(msg)
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer wsSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(wsSrv.URL, "http")
	useURLs(t, srv.URL+"/api/v3/ticker/24hr?symbol=%s", wsURL, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rs, err := NewCommonRateSource(ctx, binance, RateSourceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	rs.Refresh(false)

	want := decimal.RequireFromString("16.25")
	deadline := time.Now().Add(3 * time.Second)
	for {
		rate := rs.CounterValue(currency.Decred, currency.USDollar)
		if rate.Available() && rate.Price().Equal(want) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("websocket ticker not applied, price is %s", rate.Price())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestProcessBinanceWsMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		market  string
		wantErr bool
	}{{
		name:   "ticker",
		msg:    `{"stream":"btcusdt@ticker","data":{"e":"24hrTicker","s":"BTCUSDT","c":"20100.5","P":"-0.5"}}`,
		market: "BTC-USDT",
	}, {
		name: "other event",
		msg:  `{"stream":"btcusdt@trade","data":{"e":"trade","s":"BTCUSDT"}}`,
	}, {
		name: "unfollowed market",
		msg:  `{"data":{"e":"24hrTicker","s":"DOGEUSDT","c":"1","P":"1"}}`,
	}, {
		name:    "bad price",
		msg:     `{"data":{"e":"24hrTicker","s":"BTCUSDT","c":"abc","P":"1"}}`,
		wantErr: true,
	}, {
		name:    "not json",
		msg:     `{`,
		wantErr: true,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tickers, err := processBinanceWsMessage([]byte(test.msg))
			if (err != nil) != test.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if test.market == "" {
				if len(tickers) != 0 {
					t.Fatalf("expected no tickers, got %d", len(tickers))
				}
				return
			}
			if len(tickers) != 1 || tickers[0].Market != test.market {
				t.Fatalf("unexpected tickers %+v", tickers)
			}
		})
	}
}

func TestIsSupportedMarket(t *testing.T) {
	tests := []struct {
		market string
		want   string
		ok     bool
	}{
		{"btc-usdt", "BTC-USDT", true},
		{"BTC-DCR", "DCR-BTC", true},
		{"BTC-EUR", "BTC-EUR", true},
		{"DOGE-USDT", "", false},
		{"BTCUSDT", "", false},
	}
	for _, test := range tests {
		got, ok := isSupportedMarket(test.market)
		if got != test.want || ok != test.ok {
			t.Errorf("%s: expected (%q, %v), got (%q, %v)", test.market, test.want, test.ok, got, ok)
		}
	}
}

func TestFeedHealthRetry(t *testing.T) {
	var h feedHealth
	start := time.Now()
	h.updated(start)
	if h.failing() {
		t.Fatal("fresh stream reported as failing")
	}

	failAt := start.Add(time.Second)
	for i := 0; i < 4; i++ {
		h.failed(failAt)
	}
	if !h.failing() {
		t.Fatal("failed stream not reported as failing")
	}
	if got := h.retryAt(); !got.Equal(failAt) {
		t.Fatalf("first failures should retry immediately, got %v", got.Sub(failAt))
	}

	for i := 0; i < 10; i++ {
		h.failed(failAt)
	}
	if got := h.retryAt().Sub(failAt); got != 10*time.Minute {
		t.Fatalf("expected a 10 minute delay, got %v", got)
	}

	for i := 0; i < 10; i++ {
		h.failed(failAt)
	}
	if got := h.retryAt().Sub(failAt); got != time.Hour {
		t.Fatalf("expected an hour delay, got %v", got)
	}

	h.updated(failAt.Add(time.Second))
	if h.failing() || h.errCount != 0 {
		t.Fatal("update did not clear the failures")
	}
}
