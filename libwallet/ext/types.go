package ext

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Ticker is the generic ticker information kept by a rate source for a
	// market.
	Ticker struct {
		Market             string
		LastTradePrice     decimal.Decimal
		PriceChangePercent *decimal.Decimal
		LastUpdate         time.Time
	}

	// BinanceTickerResponse models the 24hr ticker statistics returned by
	// binance.
	BinanceTickerResponse struct {
		Symbol             string          `json:"symbol"`
		LastPrice          decimal.Decimal `json:"lastPrice"`
		PriceChangePercent decimal.Decimal `json:"priceChangePercent"`
		BidPrice           decimal.Decimal `json:"bidPrice"`
		AskPrice           decimal.Decimal `json:"askPrice"`
	}

	// KuCoinTickerResponse models Kucoin's level 1 orderbook ticker.
	KuCoinTickerResponse struct {
		Code string `json:"code"`
		Data *struct {
			Time     int64           `json:"time"`
			Sequence string          `json:"sequence"`
			Price    decimal.Decimal `json:"price"`
			BestBid  decimal.Decimal `json:"bestBid"`
			BestAsk  decimal.Decimal `json:"bestAsk"`
		} `json:"data"`
	}
)
