package eth

import (
	"math/big"

	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"github.com/ethereum/go-ethereum/params"
)

// Wei is the smallest unit of payment accepted on ethereum.
// 1 ether = 1,000,000,000 Gwei (1e9).
// 1 ether = 1,000,000,000,000,000,000 wei (1e18).
var gweiToWei = big.NewInt(params.GWei)

// WeiToAmount returns an ether amount holding wei.
func WeiToAmount(wei *big.Int) currency.Amount {
	return currency.NewAmount(currency.Ethereum, wei)
}

// GweiToWei converts a gas price quoted in Gwei.
func GweiToWei(gwei int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(gwei), gweiToWei)
}

// TokenAmount returns an amount of an ERC-20 token held by an ethereum
// account.
func TokenAmount(token *currency.Currency, raw *big.Int) (currency.Amount, bool) {
	if token == nil || token.Kind() != currency.Token || !token.Parent().Equal(currency.Ethereum) {
		return currency.Amount{}, false
	}
	return currency.NewAmount(token, raw), true
}
