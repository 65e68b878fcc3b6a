package dcr

import (
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"github.com/decred/dcrd/dcrutil/v4"
)

// ToAmount returns a decred amount of atoms.
func ToAmount(amount dcrutil.Amount) currency.Amount {
	return currency.NewAmountFromInt64(currency.Decred, int64(amount))
}
