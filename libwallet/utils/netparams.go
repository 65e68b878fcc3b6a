package utils

import (
	"fmt"
	"strings"

	btccfg "github.com/btcsuite/btcd/chaincfg"
	dcrcfg "github.com/decred/dcrd/chaincfg/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type NetworkType string

const (
	Mainnet    NetworkType = "mainnet"
	Testnet    NetworkType = "testnet3"
	Regression NetworkType = "regression"
	Simulation NetworkType = "simulation"
	Unknown    NetworkType = "unknown"
)

// networkAliases maps accepted network names to their network type.
var networkAliases = map[string]NetworkType{
	"mainnet":    Mainnet,
	"testnet":    Testnet,
	"testnet3":   Testnet,
	"test":       Testnet,
	"regression": Regression,
	"reg":        Regression,
	"regnet":     Regression,
	"simulation": Simulation,
	"sim":        Simulation,
	"simnet":     Simulation,
}

// Display returns the title case network name.
func (n NetworkType) Display() string {
	if n == Testnet {
		return "Testnet"
	}
	return cases.Title(language.Und).String(string(n))
}

// IsTestnet reports whether rates for n come from the exchanges' test
// endpoints.
func (n NetworkType) IsTestnet() bool {
	return n == Testnet
}

// ToNetworkType maps the provided network string identifier to the available
// network type constants.
func ToNetworkType(str string) NetworkType {
	if netType, ok := networkAliases[strings.ToLower(str)]; ok {
		return netType
	}
	return Unknown
}

// ChainsParams holds the decred and bitcoin parameters of one network. LTC
// and BCH accounts are checked against the bitcoin family.
type ChainsParams struct {
	DCR *dcrcfg.Params
	BTC *btccfg.Params
}

var chainsParams = map[NetworkType]ChainsParams{
	Mainnet:    {DCR: dcrcfg.MainNetParams(), BTC: &btccfg.MainNetParams},
	Testnet:    {DCR: dcrcfg.TestNet3Params(), BTC: &btccfg.TestNet3Params},
	Simulation: {DCR: dcrcfg.SimNetParams(), BTC: &btccfg.SimNetParams},
	Regression: {DCR: dcrcfg.RegNetParams(), BTC: &btccfg.RegressionNetParams},
}

// NetworkParams returns the chain parameters of netType.
func NetworkParams(netType NetworkType) (ChainsParams, error) {
	params, ok := chainsParams[netType]
	if !ok {
		return ChainsParams{}, fmt.Errorf("%v: (%v)", ErrInvalidNet, netType)
	}
	return params, nil
}

// AssetNetwork returns the name a network goes by on the chain of
// assetType, e.g. "regtest" for BTC on the regression network.
func AssetNetwork(assetType AssetType, netType NetworkType) (string, error) {
	params, err := NetworkParams(netType)
	if err != nil {
		return "", err
	}
	switch assetType {
	case BTCWalletAsset, LTCWalletAsset, BCHWalletAsset:
		return params.BTC.Name, nil
	case DCRWalletAsset:
		return params.DCR.Name, nil
	case ETHWalletAsset:
		return string(netType), nil
	default:
		return "", fmt.Errorf("%v: (%v)", ErrAssetUnknown, assetType)
	}
}
