// Copyright (c) 2019-2021, The Decred developers
// Copyright (c) 2023, The Cryptopower developers
// See LICENSE for details.

package ext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	walleterrors "decred.org/dcrwallet/v2/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Rate sources a user can pick.
	binance = values.BinanceExchange
	kucoin  = values.KuCoinExchange
	none    = values.DefaultExchangeValue

	// maxConcurrentFetches bounds the HTTP ticker requests of one refresh.
	maxConcurrentFetches = 4
)

type sourceURLs struct {
	price string
	ws    string
}

var (
	// Binance serves 24h tickers over HTTP and a combined ticker stream.
	binanceURLs = sourceURLs{
		// See: https://binance-docs.github.io/apidocs/spot/en/#24hr-ticker-price-change-statistics
		price: "https://api.binance.com/api/v3/ticker/24hr?symbol=%s",
		ws:    "wss://stream.binance.com:9443/stream?streams=%s",
	}
	binanceTestnetURLs = sourceURLs{
		price: "https://testnet.binance.vision/api/v3/ticker/24hr?symbol=%s",
	}

	// KuCoin's public websocket needs a negotiated token, rates come over
	// HTTP only.
	kucoinURLs = sourceURLs{
		price: "https://api.kucoin.com/api/v1/market/orderbook/level1?symbol=%s",
	}
	kucoinTestnetURLs = sourceURLs{
		price: "https://openapi-sandbox.kucoin.com/api/v1/market/orderbook/level1?symbol=%s",
	}

	// supportedMarkets are the markets fetched on every refresh.
	supportedMarkets = map[string]*struct{}{
		values.BTCUSDTMarket.String(): {},
		values.DCRUSDTMarket.String(): {},
		values.LTCUSDTMarket.String(): {},
		values.BCHUSDTMarket.String(): {},
		values.ETHUSDTMarket.String(): {},
		values.DCRBTCMarket.String():  {},
		values.LTCBTCMarket.String():  {},
		values.BTCEURMarket.String():  {},
		values.ETHEURMarket.String():  {},
	}

	// binanceMarkets maps Binance symbols to market names, e.g. BTCUSDT to
	// BTC-USDT.
	binanceMarkets = make(map[string]string)

	// Rates exceeding rateExpiry are expired and should be refetched. An
	// expired rate is still served, flagged as stale.
	rateExpiry = 30 * time.Minute

	// RateRefreshDuration is how long a silent ticker stream is kept open.
	RateRefreshDuration = 60 * time.Minute

	rateNotificationInterval = 5 * time.Minute
)

func init() {
	streams := make([]string, 0, len(supportedMarkets))
	for market := range supportedMarkets {
		symbol := binanceSymbol(market)
		binanceMarkets[symbol] = market
		streams = append(streams, strings.ToLower(symbol)+"@ticker")
	}
	sort.Strings(streams)

	// See: https://binance-docs.github.io/apidocs/spot/en/#websocket-market-streams
	binanceURLs.ws = fmt.Sprintf(binanceURLs.ws, strings.Join(streams, "/"))
}

// binanceSymbol drops the separator of market, e.g. DCR-BTC to DCRBTC.
func binanceSymbol(market string) string {
	return strings.ReplaceAll(market, values.MktSep, "")
}

func urlsFor(source string, net utils.NetworkType) sourceURLs {
	testnet := net.IsTestnet()
	switch {
	case source == binance && testnet:
		return binanceTestnetURLs
	case source == binance:
		return binanceURLs
	case source == kucoin && testnet:
		return kucoinTestnetURLs
	case source == kucoin:
		return kucoinURLs
	}
	return sourceURLs{}
}

// RateStore persists the last known tickers of a rate source.
type RateStore interface {
	SaveTickers(source string, tickers []*Ticker) error
	LoadTickers(source string) ([]*Ticker, error)
}

// RateSource is a cache of exchange tickers kept fresh from one exchange.
type RateSource interface {
	Name() string
	Ready() bool
	Refresh(force bool)
	Refreshing() bool
	LastUpdate() time.Time
	GetTicker(market string) *Ticker
	ToggleStatus(disable bool)
	ToggleSource(newSource string) error
	AddRateListener(listener *RateListener, uniqueID string) error
	RemoveRateListener(uniqueID string)
}

// RateSourceConfig holds the optional collaborators of a rate source.
type RateSourceConfig struct {
	Net    utils.NetworkType
	Store  RateStore
	Client *Client
	// Offline serves cached and stored tickers only. Unknown rates read as
	// unavailable instead of loading.
	Offline bool
}

type tickerFetcher func(ctx context.Context, client *Client, priceURL, market string) (*Ticker, error)

// CommonRateSource caches the tickers of one exchange for display. Reads never
// wait on the network except through GetTicker.
type CommonRateSource struct {
	ctx        context.Context
	source     string
	net        utils.NetworkType
	urls       sourceURLs
	client     *Client
	store      RateStore
	disabled   bool
	offline    bool
	mtx        sync.RWMutex
	tickers    map[string]*Ticker
	refreshing bool
	refreshed  bool
	cond       *sync.Cond
	getTicker  tickerFetcher
	lastUpdate time.Time

	wsMtx    sync.RWMutex
	ws       websocketFeed
	wsHealth feedHealth
	// wsProcessor is used to process websocket messages.
	wsProcessor WebsocketProcessor

	rateListenersMtx sync.RWMutex
	rateListeners    map[string]*RateListener
	lastNotified     time.Time
}

// Name is the display name of the source, e.g. "Binance".
func (cs *CommonRateSource) Name() string {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cases.Title(language.Und).String(cs.source)
}

func (cs *CommonRateSource) Ready() bool {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return len(cs.tickers) > 0 && !cs.disabled
}

func (cs *CommonRateSource) LastUpdate() time.Time {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cs.lastUpdate
}

func (cs *CommonRateSource) Refreshing() bool {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cs.refreshing
}

func (cs *CommonRateSource) ratesUpdated(t time.Time) {
	cs.mtx.Lock()
	defer cs.mtx.Unlock()
	cs.lastUpdate = t
}

func (cs *CommonRateSource) ToggleStatus(disable bool) {
	if cs.isDisabled() == disable {
		return
	}

	cs.mtx.Lock()
	cs.disabled = disable
	cs.mtx.Unlock()

	cs.resetWs(nil)
	cs.notifyRateListeners(true)
}

func (cs *CommonRateSource) isDisabled() bool {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cs.disabled || cs.source == none
}

func sourceFuncs(source string) (tickerFetcher, WebsocketProcessor, error) {
	switch source {
	case none: /* none is the dummy rate source for when user disables rates */
		return dummyGetTickerFunc, nil, nil
	case binance:
		return binanceGetTicker, processBinanceWsMessage, nil
	case kucoin:
		return kucoinGetTicker, nil, nil
	default:
		return nil, nil, utils.CodedError("ext.sourceFuncs", walleterrors.Invalid, utils.ErrRateSourceUnsupported, "%s", source)
	}
}

// ToggleSource switches to newSource, seeds it from the store and refreshes
// it. It blocks for the duration of the refresh.
func (cs *CommonRateSource) ToggleSource(newSource string) error {
	cs.mtx.RLock()
	current := cs.source
	cs.mtx.RUnlock()
	if newSource == current {
		return nil
	}

	getTickerFn, wsProcessor, err := sourceFuncs(newSource)
	if err != nil {
		return err
	}

	cs.mtx.Lock()
	cs.source = newSource
	cs.urls = urlsFor(newSource, cs.net)
	cs.getTicker = getTickerFn
	cs.tickers = make(map[string]*Ticker)
	cs.refreshed = false
	cs.mtx.Unlock()

	cs.resetWs(wsProcessor)
	cs.loadStoredTickers()

	go cs.notifyRateListeners(true)

	if newSource != none {
		cs.Refresh(true)
	}

	return nil
}

// resetWs closes the ticker stream and forgets its failures. processor is
// optional.
func (cs *CommonRateSource) resetWs(processor WebsocketProcessor) {
	cs.wsMtx.Lock()
	defer cs.wsMtx.Unlock()
	if cs.ws != nil {
		cs.ws.Close()
		cs.ws = nil
	}
	if processor != nil {
		cs.wsProcessor = processor
	}
	cs.wsHealth = feedHealth{}
}

// AddRateListener registers listener under uniqueID. It is notified after
// each refresh and at most every rateNotificationInterval for stream updates.
func (cs *CommonRateSource) AddRateListener(listener *RateListener, uniqueID string) error {
	cs.rateListenersMtx.Lock()
	defer cs.rateListenersMtx.Unlock()
	if _, exists := cs.rateListeners[uniqueID]; exists {
		return errors.New(utils.ErrListenerAlreadyExist)
	}
	cs.rateListeners[uniqueID] = listener
	return nil
}

func (cs *CommonRateSource) RemoveRateListener(uniqueID string) {
	cs.rateListenersMtx.Lock()
	delete(cs.rateListeners, uniqueID)
	cs.rateListenersMtx.Unlock()
}

func (cs *CommonRateSource) fail(msg string, err error) {
	log.Errorf("%s: %s: %v", cs.source, msg, err)
}

// WebsocketProcessor decodes a stream message into ticker updates.
type WebsocketProcessor func([]byte) ([]*Ticker, error)

// Only the fields are protected for these. (websocketFeed).Write has
// concurrency control.
func (cs *CommonRateSource) websocket() (websocketFeed, WebsocketProcessor) {
	cs.wsMtx.RLock()
	defer cs.wsMtx.RUnlock()
	return cs.ws, cs.wsProcessor
}

// wsStatus returns a snapshot of the stream health and whether a connection
// is open.
func (cs *CommonRateSource) wsStatus() (feedHealth, bool) {
	cs.wsMtx.RLock()
	defer cs.wsMtx.RUnlock()
	return cs.wsHealth, cs.ws != nil && cs.ws.On()
}

// connectWebsocket dials the ticker stream, replacing any open connection,
// and starts its read loop.
func (cs *CommonRateSource) connectWebsocket() error {
	_, processor := cs.websocket()
	cs.mtx.RLock()
	address := cs.urls.ws
	cs.mtx.RUnlock()
	if address == "" || processor == nil {
		return errors.New("websocket connection not supported")
	}

	ws, err := newSocketConnection(cs.ctx, &socketConfig{address: address})
	if err != nil {
		return err
	}

	cs.wsMtx.Lock()
	if cs.ws != nil {
		cs.ws.Close()
	}
	cs.ws = ws
	cs.wsMtx.Unlock()

	go cs.readWebsocket(ws, processor)
	return nil
}

func (cs *CommonRateSource) readWebsocket(ws websocketFeed, processor WebsocketProcessor) {
	for ws.On() && cs.ctx.Err() == nil {
		message, err := ws.Read()
		if err != nil {
			if cs.ctx.Err() == nil {
				cs.setWsFail(err)
			}
			return
		}

		tickers, err := processor(message)
		if err != nil {
			cs.setWsFail(err)
			return
		}
		if len(tickers) == 0 {
			continue
		}

		cs.applyStreamTickers(tickers)
		now := time.Now()
		cs.wsMtx.Lock()
		cs.wsHealth.updated(now)
		cs.wsMtx.Unlock()
		cs.ratesUpdated(now)
		cs.notifyRateListeners(false)
	}
}

// applyStreamTickers merges partial stream updates into the cache. Fields
// missing from an update keep their cached value.
func (cs *CommonRateSource) applyStreamTickers(tickers []*Ticker) {
	cs.mtx.Lock()
	defer cs.mtx.Unlock()
	for _, update := range tickers {
		cached, ok := cs.tickers[update.Market]
		if !ok {
			cached = &Ticker{Market: update.Market}
			cs.tickers[update.Market] = cached
		}
		if update.LastTradePrice.IsPositive() {
			cached.LastTradePrice = update.LastTradePrice
		}
		if update.PriceChangePercent != nil {
			percentChange := *update.PriceChangePercent
			cached.PriceChangePercent = &percentChange
		}
		cached.LastUpdate = time.Now()
	}
}

// setWsFail logs err, closes the stream and counts the failure.
func (cs *CommonRateSource) setWsFail(err error) {
	cs.fail("Websocket error", err)
	cs.wsMtx.Lock()
	defer cs.wsMtx.Unlock()
	if cs.ws != nil {
		cs.ws.Close()
		cs.ws = nil
	}
	cs.wsHealth.failed(time.Now())
}

// maintainWebsocket reconnects the ticker stream when it is down or silent
// and its retry delay has passed.
func (cs *CommonRateSource) maintainWebsocket() {
	_, processor := cs.websocket()
	cs.mtx.RLock()
	wsSupported := cs.urls.ws != "" && processor != nil
	cs.mtx.RUnlock()
	if !wsSupported || cs.ctx.Err() != nil {
		return
	}

	health, open := cs.wsStatus()
	if open {
		if health.lastUpdate.IsZero() || time.Since(health.lastUpdate) < RateRefreshDuration {
			return
		}
		cs.setWsFail(fmt.Errorf("no %s websocket update since %s", cs.source, health.lastUpdate.Format(time.RFC3339)))
		health, _ = cs.wsStatus()
	}

	if health.failing() {
		if retry := health.retryAt(); time.Now().Before(retry) {
			log.Errorf("%s websocket disabled. Too many errors. Refresh after %.1f minutes", cs.source, time.Until(retry).Minutes())
			return
		}
	}

	log.Tracef("Connecting %s websocket", cs.source)
	if err := cs.connectWebsocket(); err != nil {
		cs.setWsFail(err)
	}
}

func (cs *CommonRateSource) copyRates() map[string]*Ticker {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	tickers := make(map[string]*Ticker, len(cs.tickers))
	for m, t := range cs.tickers {
		tickerCopy := *t
		tickers[m] = &tickerCopy
	}
	return tickers
}

// notifyRateListeners notifies every listener unless one was notified
// within rateNotificationInterval. force skips the interval check.
func (cs *CommonRateSource) notifyRateListeners(force bool) {
	cs.rateListenersMtx.Lock()
	defer cs.rateListenersMtx.Unlock()

	now := time.Now()
	if !force && now.Sub(cs.lastNotified) < rateNotificationInterval {
		return
	}
	cs.lastNotified = now
	for _, l := range cs.rateListeners {
		l.Notify()
	}
}

// Refresh refetches expired tickers, or all of them when force is set, and
// reconnects the ticker stream if it is down. Concurrent calls run one after
// the other. It blocks on the network.
func (cs *CommonRateSource) Refresh(force bool) {
	if cs.isDisabled() || cs.offline {
		return
	}

	cs.mtx.Lock()
	for cs.refreshing {
		cs.cond.Wait()
	}
	cs.refreshing = true
	getTicker, priceURL, client := cs.getTicker, cs.urls.price, cs.client
	cs.mtx.Unlock()

	// Listeners are notified once the refreshing flag is cleared.
	defer cs.notifyRateListeners(true)
	defer cs.ratesUpdated(time.Now())
	defer func() {
		cs.mtx.Lock()
		cs.refreshing = false
		cs.refreshed = true
		cs.cond.Signal()
		cs.mtx.Unlock()
	}()

	tickers := cs.copyRates()

	var tickersMtx sync.Mutex
	g, ctx := errgroup.WithContext(cs.ctx)
	g.SetLimit(maxConcurrentFetches)
	for market := range supportedMarkets {
		t, ok := tickers[market]
		if !force && ok && time.Since(t.LastUpdate) < rateExpiry {
			continue
		}

		market := market
		g.Go(func() error {
			ticker, err := getTicker(ctx, client, priceURL, market)
			if err != nil {
				cs.fail("Error fetching ticker", err)
				return nil
			}

			tickersMtx.Lock()
			tickers[market] = ticker
			tickersMtx.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	cs.mtx.Lock()
	cs.tickers = tickers
	cs.mtx.Unlock()

	cs.saveTickers(tickers)
	cs.maintainWebsocket()
}

func (cs *CommonRateSource) saveTickers(tickers map[string]*Ticker) {
	if cs.store == nil || len(tickers) == 0 {
		return
	}
	list := make([]*Ticker, 0, len(tickers))
	for _, t := range tickers {
		list = append(list, t)
	}
	if err := cs.store.SaveTickers(cs.source, list); err != nil {
		cs.fail("Error saving tickers", err)
	}
}

// loadStoredTickers seeds the cache with the tickers persisted by a previous
// run. They keep their original timestamps, so expired ones read as stale.
func (cs *CommonRateSource) loadStoredTickers() {
	if cs.store == nil || cs.isDisabled() {
		return
	}
	stored, err := cs.store.LoadTickers(cs.source)
	if err != nil {
		cs.fail("Error loading stored tickers", err)
		return
	}

	cs.mtx.Lock()
	defer cs.mtx.Unlock()
	for _, t := range stored {
		if _, ok := supportedMarkets[t.Market]; !ok {
			continue
		}
		tickerCopy := *t
		cs.tickers[t.Market] = &tickerCopy
	}
	if len(stored) > 0 {
		log.Debugf("Loaded %d stored %s tickers", len(stored), cs.source)
	}
}

// fetchRate fetches market over HTTP and caches the result.
func (cs *CommonRateSource) fetchRate(market string) *Ticker {
	if cs.offline {
		return nil
	}
	cs.mtx.RLock()
	getTicker, priceURL, client := cs.getTicker, cs.urls.price, cs.client
	cs.mtx.RUnlock()

	newTicker, err := getTicker(cs.ctx, client, priceURL, market)
	if err != nil {
		cs.fail("Error fetching ticker", err)
		return nil
	}

	cs.mtx.Lock()
	cs.tickers[market] = newTicker
	cs.mtx.Unlock()

	t := *newTicker
	return &t
}

// GetTicker returns the cached ticker of market, fetching it when it is
// missing or expired. Unlike CounterValue this may block on the network.
func (cs *CommonRateSource) GetTicker(market string) *Ticker {
	if cs.isDisabled() {
		return nil
	}
	marketName, ok := isSupportedMarket(market)
	if !ok {
		return nil
	}

	cs.mtx.RLock()
	ticker, ok := cs.tickers[marketName]
	cs.mtx.RUnlock()
	if !ok {
		return cs.fetchRate(marketName)
	}
	t := *ticker

	if time.Since(t.LastUpdate) > rateExpiry {
		if ticker := cs.fetchRate(marketName); ticker != nil {
			return ticker
		}
	}

	return &t
}

// NewCommonRateSource initializes a rate source. Tickers persisted in
// cfg.Store are loaded into the cache immediately.
func NewCommonRateSource(ctx context.Context, source string, cfg RateSourceConfig) (*CommonRateSource, error) {
	getTickerFunc, wsProcessor, err := sourceFuncs(source)
	if err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		client = NewClient()
	}

	s := &CommonRateSource{
		ctx:           ctx,
		source:        source,
		net:           cfg.Net,
		urls:          urlsFor(source, cfg.Net),
		client:        client,
		store:         cfg.Store,
		offline:       cfg.Offline,
		refreshed:     cfg.Offline,
		tickers:       make(map[string]*Ticker),
		getTicker:     getTickerFunc,
		wsProcessor:   wsProcessor,
		rateListeners: make(map[string]*RateListener),
	}
	s.cond = sync.NewCond(&s.mtx)
	s.loadStoredTickers()

	go func() {
		<-ctx.Done()
		s.resetWs(nil)
	}()

	return s, nil
}

func binanceGetTicker(ctx context.Context, client *Client, priceURL, market string) (*Ticker, error) {
	symbol := binanceSymbol(market)
	if _, ok := binanceMarkets[symbol]; !ok {
		return nil, fmt.Errorf("market %s not supported", market)
	}

	reqCfg := &ReqConfig{
		HTTPURL: fmt.Sprintf(priceURL, symbol),
		Method:  http.MethodGet,
	}

	resp := new(BinanceTickerResponse)
	if err := client.Do(ctx, reqCfg, resp); err != nil {
		return nil, fmt.Errorf("%s failed to fetch ticker for %s: %w", binance, market, err)
	}

	change := resp.PriceChangePercent
	return &Ticker{
		Market:             market,
		LastTradePrice:     resp.LastPrice,
		PriceChangePercent: &change,
		LastUpdate:         time.Now(),
	}, nil
}

func kucoinGetTicker(ctx context.Context, client *Client, priceURL, market string) (*Ticker, error) {
	reqCfg := &ReqConfig{
		HTTPURL: fmt.Sprintf(priceURL, market), // Ok: e.g BTC-USDT
		Method:  http.MethodGet,
	}

	resp := new(KuCoinTickerResponse)
	if err := client.Do(ctx, reqCfg, resp); err != nil {
		return nil, fmt.Errorf("%s failed to fetch ticker for %s: %w", kucoin, market, err)
	}

	// Kucoin doesn't send back error code if it doesn't support the supplied
	// market, the data is null instead.
	if resp.Data == nil || resp.Data.Sequence == "" {
		return nil, fmt.Errorf("%s does not support market %s", kucoin, market)
	}

	return &Ticker{
		Market:         market,
		LastTradePrice: resp.Data.Price,
		LastUpdate:     time.Now(),
	}, nil
}

// binanceWsMsg is a combined stream message. Ticker fields differ from
// others only by case, so each is declared to keep exact matches.
type binanceWsMsg struct {
	Data *struct {
		Event              string           `json:"e"`
		EventTime          int64            `json:"E"`
		Symbol             string           `json:"s"`
		PriceChange        decimal.Decimal  `json:"p"`
		PriceChangePercent *decimal.Decimal `json:"P"`
		LastPrice          decimal.Decimal  `json:"c"`
		CloseTime          int64            `json:"C"`
	} `json:"data"`
}

func processBinanceWsMessage(inMsg []byte) ([]*Ticker, error) {
	msg := new(binanceWsMsg)
	if err := json.Unmarshal(inMsg, msg); err != nil {
		return nil, fmt.Errorf("binance: unable to read message bytes: %w", err)
	}

	if msg.Data == nil || !strings.Contains(msg.Data.Event, "Ticker") {
		return nil, nil // handled
	}
	market, ok := binanceMarkets[msg.Data.Symbol]
	if !ok {
		return nil, nil // not a market we follow
	}
	if !msg.Data.LastPrice.IsPositive() {
		return nil, fmt.Errorf("binance: no last price for %s", market)
	}

	return []*Ticker{{
		Market:             market,
		LastTradePrice:     msg.Data.LastPrice,
		PriceChangePercent: msg.Data.PriceChangePercent,
		LastUpdate:         time.Now(),
	}}, nil
}

// isSupportedMarket normalizes market to a fetched market name. BTC priced
// in another coin is flipped, e.g. BTC-DCR to DCR-BTC. Stable and fiat quotes
// keep their order.
func isSupportedMarket(market string) (string, bool) {
	parts := strings.Split(strings.ToUpper(market), values.MktSep)
	if len(parts) != 2 {
		return "", false
	}
	base, quote := parts[0], parts[1]
	if base == "BTC" && quote != "USDT" && quote != "EUR" {
		base, quote = quote, base
	}

	name := base + values.MktSep + quote
	if _, ok := supportedMarkets[name]; !ok {
		return "", false
	}
	return name, true
}

func dummyGetTickerFunc(context.Context, *Client, string, string) (*Ticker, error) {
	return &Ticker{}, nil
}
