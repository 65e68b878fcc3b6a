package btc

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"github.com/btcsuite/btcd/btcutil"
)

const (
	maxAmountSatoshi = btcutil.MaxSatoshi // MaxSatoshi is the maximum transaction amount allowed in satoshi.
)

// ToAmount returns a bitcoin amount of satoshis.
func ToAmount(amount btcutil.Amount) currency.Amount {
	return currency.NewAmountFromInt64(currency.Bitcoin, int64(amount))
}

// ToChainAmount returns an amount of satoshis of any bitcoin family chain.
// ok is false for currencies outside the family.
func ToChainAmount(c *currency.Currency, amount btcutil.Amount) (currency.Amount, bool) {
	if !isBitcoinFamily(c) {
		return currency.Amount{}, false
	}
	return currency.NewAmountFromInt64(c, int64(amount)), true
}

// ValidAmount reports whether amount fits the bitcoin supply.
func ValidAmount(amount btcutil.Amount) bool {
	return amount >= 0 && amount <= maxAmountSatoshi
}

func isBitcoinFamily(c *currency.Currency) bool {
	return c.Equal(currency.Bitcoin) || c.Equal(currency.Litecoin) || c.Equal(currency.BitcoinCash)
}
