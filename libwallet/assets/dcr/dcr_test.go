package dcr

import (
	"testing"

	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"github.com/decred/dcrd/dcrutil/v4"
)

func TestToAmount(t *testing.T) {
	if got := ToAmount(dcrutil.Amount(1234500000)).String(); got != "12.345 DCR" {
		t.Errorf("ToAmount = %q", got)
	}
}

func TestEstimatedFee(t *testing.T) {
	size := 2000
	feePerKB := dcrutil.Amount(10000)
	tests := []struct {
		name  string
		extra *TxExtra
		want  string
		ok    bool
	}{
		{"custom rate", &TxExtra{FeePerKB: &feePerKB, EstimatedSize: &size}, "0.0002 DCR", true},
		{"default rate", &TxExtra{EstimatedSize: &size}, "0.0002 DCR", true},
		{"no size", &TxExtra{FeePerKB: &feePerKB}, "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fee, ok := test.extra.EstimatedFee()
			if ok != test.ok {
				t.Fatalf("ok = %v, want %v", ok, test.ok)
			}
			if ok && fee.String() != test.want {
				t.Errorf("fee = %q, want %q", fee.String(), test.want)
			}
		})
	}

	if err := sharedW.ValidateExtra(sharedW.FamilyDecred, &TxExtra{}); err != nil {
		t.Errorf("decred extras have no required field: %v", err)
	}
}
