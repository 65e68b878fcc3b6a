package eth

import (
	"math/big"

	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
)

// TxExtra carries the ethereum specific fields of a transaction.
type TxExtra struct {
	// GasPrice is in wei. Nil until the fee is estimated.
	GasPrice *big.Int
	GasLimit *big.Int
	// FeeCustomUnit is the unit the user picked to read the gas price in.
	FeeCustomUnit *currency.Unit
}

func (e *TxExtra) Family() sharedW.Family { return sharedW.FamilyEthereum }

// A nil record has no field set.
func (e *TxExtra) Has(field string) bool {
	if e == nil {
		return false
	}
	switch field {
	case sharedW.FieldGasPrice:
		return e.GasPrice != nil
	case sharedW.FieldGasLimit:
		return e.GasLimit != nil
	default:
		return false
	}
}

// FeeUnit returns the unit gas prices are displayed in: the custom unit if
// one is set, Gwei otherwise.
func (e *TxExtra) FeeUnit() currency.Unit {
	if e != nil && e.FeeCustomUnit != nil {
		return *e.FeeCustomUnit
	}
	if u, ok := currency.Ethereum.UnitByCode("Gwei"); ok {
		return u
	}
	return currency.Ethereum.DisplayUnit()
}

// FeeRate returns the gas price as an ether amount. ok is false when the gas
// price is not set.
func (e *TxExtra) FeeRate() (rate currency.Amount, ok bool) {
	if e == nil || e.GasPrice == nil {
		return currency.Amount{}, false
	}
	return WeiToAmount(e.GasPrice), true
}

// EstimatedFee returns gasPrice × gasLimit in wei. Fees are paid in ether
// even for token transfers.
func (e *TxExtra) EstimatedFee() (fee currency.Amount, ok bool) {
	if e == nil || e.GasPrice == nil || e.GasLimit == nil {
		return currency.Amount{}, false
	}
	return WeiToAmount(e.GasPrice).Mul(e.GasLimit), true
}

var _ sharedW.TransactionExtra = (*TxExtra)(nil)
