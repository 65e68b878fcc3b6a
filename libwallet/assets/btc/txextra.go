package btc

import (
	"math/big"

	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"github.com/btcsuite/btcd/btcutil"
)

// TxExtra carries the fields of a bitcoin family transaction. LTC and BCH
// transactions use it too.
type TxExtra struct {
	// FeePerByte is in satoshis per virtual byte.
	FeePerByte    *btcutil.Amount
	EstimatedSize *int
}

func (e *TxExtra) Family() sharedW.Family { return sharedW.FamilyBitcoin }

func (e *TxExtra) Has(field string) bool {
	if e == nil {
		return false
	}
	switch field {
	case sharedW.FieldFeePerByte:
		return e.FeePerByte != nil
	case sharedW.FieldEstimatedSize:
		return e.EstimatedSize != nil
	default:
		return false
	}
}

// EstimatedFee returns FeePerByte × EstimatedSize in the chain currency.
func (e *TxExtra) EstimatedFee(chain *currency.Currency) (fee currency.Amount, ok bool) {
	if e == nil || e.FeePerByte == nil || e.EstimatedSize == nil {
		return currency.Amount{}, false
	}
	rate, ok := ToChainAmount(chain, *e.FeePerByte)
	if !ok {
		return currency.Amount{}, false
	}
	return rate.Mul(big.NewInt(int64(*e.EstimatedSize))), true
}

var _ sharedW.TransactionExtra = (*TxExtra)(nil)
