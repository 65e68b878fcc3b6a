package wallet

const (
	LogLevelConfigKey           = "log_level"
	CurrencyConversionConfigKey = "currency_conversion_option"
	CounterCurrencyConfigKey    = "counter_currency"
	LanguagePreferenceKey       = "app_language"
	FeesURLConfigKey            = "fees_url"
)

// ConfigDB stores the generic preference values of the display manager.
type ConfigDB interface {
	// SaveConfigValue stores a generic value against key.
	SaveConfigValue(key string, value interface{}) error
	// ReadConfigValue reads the value stored against key into valueOut.
	ReadConfigValue(key string, valueOut interface{}) error
	// DeleteConfigValue deletes the value stored against key.
	DeleteConfigValue(key string) error
}
