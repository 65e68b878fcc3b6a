package ltc

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"github.com/ltcsuite/ltcd/ltcutil"
)

// ToAmount returns a litecoin amount of litoshis.
func ToAmount(amount ltcutil.Amount) currency.Amount {
	return currency.NewAmountFromInt64(currency.Litecoin, int64(amount))
}

// FromCoins converts a whole coin count read from a wallet backend. The
// conversion is rounded half away from zero by ltcutil.
func FromCoins(f float64) (currency.Amount, error) {
	amount, err := ltcutil.NewAmount(f)
	if err != nil {
		log.Errorf("invalid litecoin amount %v: %v", f, err)
		return currency.Amount{}, err
	}
	return ToAmount(amount), nil
}
