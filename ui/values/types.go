package values

import (
	"fmt"
	"strings"
)

// MktSep separates the asset and quote symbols of a market.
const MktSep = "-"

// The structure of the Market class is Asset-Unit
// example: BTC-USDT, DCR-BTC
type Market string

const (
	DCRUSDTMarket Market = "DCR-USDT"
	BTCUSDTMarket Market = "BTC-USDT"
	LTCUSDTMarket Market = "LTC-USDT"
	BCHUSDTMarket Market = "BCH-USDT"
	ETHUSDTMarket Market = "ETH-USDT"
	DCRBTCMarket  Market = "DCR-BTC"
	LTCBTCMarket  Market = "LTC-BTC"
	BTCEURMarket  Market = "BTC-EUR"
	ETHEURMarket  Market = "ETH-EUR"
	UnknownMarket Market = "Unknown"
)

func NewMarket(asset, unit string) Market {
	return Market(fmt.Sprintf("%s%s%s", strings.ToUpper(asset), MktSep, strings.ToUpper(unit)))
}

func (m Market) String() string {
	return string(m)
}

func (m Market) AssetString() string {
	marketArr := strings.Split(m.String(), MktSep)
	return marketArr[0]
}

// QuoteString returns the currency the asset is priced in.
func (m Market) QuoteString() string {
	marketArr := strings.Split(m.String(), MktSep)
	if len(marketArr) < 2 {
		return ""
	}
	return marketArr[1]
}

func (m Market) MarketWithoutSep() string {
	market := strings.ReplaceAll(m.String(), MktSep, "")
	return market
}
