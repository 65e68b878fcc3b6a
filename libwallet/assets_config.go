package libwallet

import (
	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"github.com/asdine/storm"
)

// SaveConfigValue stores a generic preference value. Failures are logged.
func (mgr *DisplayManager) SaveConfigValue(key string, value interface{}) {
	if err := mgr.configDB().SaveConfigValue(key, value); err != nil {
		log.Errorf("error setting config value for key: %s, error: %v", key, err)
	}
}

// ReadConfigValue reads a generic preference value. A value never saved
// returns storm.ErrNotFound without logging.
func (mgr *DisplayManager) ReadConfigValue(key string, valueOut interface{}) error {
	err := mgr.configDB().ReadConfigValue(key, valueOut)
	if err != nil && err != storm.ErrNotFound {
		log.Errorf("error reading config value for key: %s, error: %v", key, err)
	}
	return err
}

// DeleteConfigValue deletes a generic preference value.
func (mgr *DisplayManager) DeleteConfigValue(key string) {
	err := mgr.configDB().DeleteConfigValue(key)
	if err != nil && err != storm.ErrNotFound {
		log.Errorf("error deleting config value for key: %s, error: %v", key, err)
	}
}

func (mgr *DisplayManager) configDB() sharedW.ConfigDB {
	return mgr.db
}

func (mgr *DisplayManager) readString(key string) string {
	var data string
	_ = mgr.ReadConfigValue(key, &data)
	return data
}

func (mgr *DisplayManager) GetCurrencyConversionExchange() string {
	key := mgr.readString(sharedW.CurrencyConversionConfigKey)
	if key == "" {
		return defaultRateSource
	}
	return key
}

func (mgr *DisplayManager) SetCurrencyConversionExchange(data string) {
	mgr.SaveConfigValue(sharedW.CurrencyConversionConfigKey, data)
}

// GetCounterCurrency is the saved counter currency id or ticker. It is empty
// when none was saved.
func (mgr *DisplayManager) GetCounterCurrency() string {
	return mgr.readString(sharedW.CounterCurrencyConfigKey)
}

func (mgr *DisplayManager) SetCounterCurrency(idOrTicker string) {
	mgr.SaveConfigValue(sharedW.CounterCurrencyConfigKey, idOrTicker)
}

func (mgr *DisplayManager) GetLanguagePreference() string {
	return mgr.readString(sharedW.LanguagePreferenceKey)
}

func (mgr *DisplayManager) SetLanguagePreference(lang string) {
	mgr.SaveConfigValue(sharedW.LanguagePreferenceKey, lang)
}

func (mgr *DisplayManager) GetFeesURL() string {
	return mgr.readString(sharedW.FeesURLConfigKey)
}

func (mgr *DisplayManager) SetFeesURL(url string) {
	mgr.SaveConfigValue(sharedW.FeesURLConfigKey, url)
}

// GetLogLevels returns the saved log level, empty when none was saved.
func (mgr *DisplayManager) GetLogLevels() string {
	return mgr.readString(sharedW.LogLevelConfigKey)
}

func (mgr *DisplayManager) SetLogLevels(logLevel string) {
	mgr.SaveConfigValue(sharedW.LogLevelConfigKey, logLevel)
}
