package values

import "code.cryptopower.dev/group/walletdisplay/libwallet/utils"

const (
	DefaultExchangeValue = "none"
	BinanceExchange      = "binance"
	KuCoinExchange       = "kucoin"
)

// RateSources lists the exchanges a user may pick for rates.
var RateSources = []string{BinanceExchange, KuCoinExchange, DefaultExchangeValue}

// initialize an asset market value map
var AssetExchangeMarketValue = map[utils.AssetType]Market{
	utils.DCRWalletAsset: DCRUSDTMarket,
	utils.BTCWalletAsset: BTCUSDTMarket,
	utils.LTCWalletAsset: LTCUSDTMarket,
	utils.BCHWalletAsset: BCHUSDTMarket,
	utils.ETHWalletAsset: ETHUSDTMarket,
}
