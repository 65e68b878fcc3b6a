package libwallet

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
)

const (
	LogFilename      = utils.LogFileName
	accountsFileName = "accounts.json"

	Mainnet  = utils.Mainnet
	Testnet3 = utils.Testnet

	defaultRateSource = values.BinanceExchange

	// feeConfirmationTarget is the number of blocks estimated bitcoin fee
	// rates aim to confirm within.
	feeConfirmationTarget = 6
)
