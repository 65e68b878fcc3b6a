package walletdata

// ConfigBucketName holds the display preferences saved across runs.
const ConfigBucketName = "user_config"

// SaveConfigValue stores a generic value against the provided key.
func (db *DB) SaveConfigValue(key string, value interface{}) error {
	return db.walletDataDB.Set(ConfigBucketName, key, value)
}

// ReadConfigValue reads the value stored against key into valueOut. It
// returns storm.ErrNotFound when nothing was saved.
func (db *DB) ReadConfigValue(key string, valueOut interface{}) error {
	return db.walletDataDB.Get(ConfigBucketName, key, valueOut)
}

// DeleteConfigValue deletes the value stored against key.
func (db *DB) DeleteConfigValue(key string) error {
	return db.walletDataDB.Delete(ConfigBucketName, key)
}
