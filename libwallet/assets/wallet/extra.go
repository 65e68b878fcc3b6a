package wallet

import (
	"reflect"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"decred.org/dcrwallet/v2/errors"
)

// Extra field names. They match the keys used in accounts files.
const (
	FieldGasPrice      = "gasPrice"
	FieldGasLimit      = "gasLimit"
	FieldFeePerByte    = "feePerByte"
	FieldFeePerKB      = "feePerKB"
	FieldEstimatedSize = "estimatedSize"
)

// TransactionExtra holds the chain specific fields of a transaction. Each
// family defines its own fixed record implementing it.
type TransactionExtra interface {
	Family() Family
	// Has reports whether the named field is set.
	Has(field string) bool
}

// Every field is optional. The bridge may not have estimated a fee yet and
// rows render what is set.
var extraFields = map[Family][]string{
	FamilyEthereum: {FieldGasLimit, FieldGasPrice},
	FamilyBitcoin:  {FieldFeePerByte, FieldEstimatedSize},
	FamilyDecred:   {FieldFeePerKB, FieldEstimatedSize},
}

// ExtraFieldsFor returns the names of the fields a family extras record
// carries.
func ExtraFieldsFor(family Family) []string {
	fields := extraFields[family]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// IsExtraField reports whether field belongs to the family extras record.
func IsExtraField(family Family, field string) bool {
	for _, f := range extraFields[family] {
		if f == field {
			return true
		}
	}
	return false
}

// ValidateExtra checks an extras record is set and belongs to the family.
func ValidateExtra(family Family, extra TransactionExtra) error {
	const op = "wallet.ValidateExtra"
	if isNilExtra(extra) {
		return utils.CodedError(op, errors.Invalid, utils.ErrIncompleteTxExtra, "no extras for %s transaction", family)
	}
	if extra.Family() != family {
		return utils.CodedError(op, errors.Invalid, utils.ErrIncompleteTxExtra,
			"%s extras on a %s transaction", extra.Family(), family)
	}

	if _, ok := extraFields[family]; !ok {
		return utils.CodedError(op, errors.Invalid, utils.ErrIncompleteTxExtra, "unknown family %q", family)
	}
	return nil
}

// isNilExtra also catches a nil record pointer stored in the interface.
func isNilExtra(extra TransactionExtra) bool {
	if extra == nil {
		return true
	}
	v := reflect.ValueOf(extra)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// NewTransaction builds a transaction after validating its extras against
// the family of the account currency.
func NewTransaction(id string, account *Account, extra TransactionExtra) (*Transaction, error) {
	const op = "wallet.NewTransaction"
	if account == nil || account.Currency == nil {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "transaction %s has no account", id)
	}
	family, ok := familyOfCurrency(account)
	if !ok {
		return nil, utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "%s transactions carry no extras", account.Currency.Ticker())
	}
	if err := ValidateExtra(family, extra); err != nil {
		return nil, err
	}
	return &Transaction{ID: id, AccountID: account.ID, Extra: extra}, nil
}

func familyOfCurrency(account *Account) (Family, bool) {
	c := account.Currency
	if parent := c.Parent(); parent != nil {
		c = parent
	}
	return FamilyOf(utils.AssetType(c.Ticker()))
}
