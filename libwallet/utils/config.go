package utils

import (
	"os"
	"strings"
	"time"
)

type AssetType string

const (
	LogFileName     = "walletdisplay.log"
	DefaultLogLevel = "info"

	// UserFilePerm is the permission used for directories and files created
	// under the application data directory.
	UserFilePerm = os.FileMode(0700)

	BTCWalletAsset AssetType = "BTC"
	DCRWalletAsset AssetType = "DCR"
	LTCWalletAsset AssetType = "LTC"
	BCHWalletAsset AssetType = "BCH"
	ETHWalletAsset AssetType = "ETH"

	fullDateformat = "2006-01-02 15:04:05"
	dateOnlyFormat = "2006-01-02"
	timeOnlyformat = "15:04:05"
)

// ToString returns the lowercase asset type used in directory and bucket
// names.
func (str AssetType) ToString() string {
	return strings.ToLower(string(str))
}

// ToFull returns the full network name of the provided asset.
func (str AssetType) ToFull() string {
	switch str {
	case BTCWalletAsset:
		return "Bitcoin"
	case DCRWalletAsset:
		return "Decred"
	case LTCWalletAsset:
		return "Litecoin"
	case BCHWalletAsset:
		return "Bitcoin Cash"
	case ETHWalletAsset:
		return "Ethereum"
	default:
		return "Unknown"
	}
}

// ExtractDateOrTime returns the date represented by t as a date string if t
// is over 24 hours ago. Otherwise, the time alone is returned as a string.
func ExtractDateOrTime(t time.Time) string {
	utcTime := t.UTC()
	if time.Now().UTC().Sub(utcTime).Hours() > 24 {
		return utcTime.Format(dateOnlyFormat)
	}
	return utcTime.Format(timeOnlyformat)
}

func FormatUTCTime(t time.Time) string {
	return t.UTC().Format(fullDateformat)
}
