package dcr

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"decred.org/dcrwallet/v2/wallet/txrules"
	"github.com/decred/dcrd/dcrutil/v4"
)

// TxExtra carries the decred specific fields of a transaction.
type TxExtra struct {
	// FeePerKB is the relay fee in atoms per kB. Nil uses the network
	// default.
	FeePerKB      *dcrutil.Amount
	EstimatedSize *int
}

func (e *TxExtra) Family() sharedW.Family { return sharedW.FamilyDecred }

func (e *TxExtra) Has(field string) bool {
	if e == nil {
		return false
	}
	switch field {
	case sharedW.FieldFeePerKB:
		return e.FeePerKB != nil
	case sharedW.FieldEstimatedSize:
		return e.EstimatedSize != nil
	default:
		return false
	}
}

// RelayFee returns the fee rate the estimate is computed with.
func (e *TxExtra) RelayFee() dcrutil.Amount {
	if e != nil && e.FeePerKB != nil {
		return *e.FeePerKB
	}
	return txrules.DefaultRelayFeePerKb
}

// EstimatedFee returns the fee of a transaction of EstimatedSize bytes.
func (e *TxExtra) EstimatedFee() (fee currency.Amount, ok bool) {
	if e == nil || e.EstimatedSize == nil {
		return currency.Amount{}, false
	}
	if *e.EstimatedSize <= 0 {
		log.Debugf("estimated size %d, no fee", *e.EstimatedSize)
		return ToAmount(0), true
	}
	return ToAmount(txrules.FeeForSerializeSize(e.RelayFee(), *e.EstimatedSize)), true
}

var _ sharedW.TransactionExtra = (*TxExtra)(nil)
