package walletdata

import (
	"errors"
	"fmt"

	"github.com/asdine/storm"
	bolt "go.etcd.io/bbolt"
)

const (
	DbName = "walletData.db"

	RateBucketName = "RateIndexInfo"
	KeyDbVersion   = "DbVersion"

	// RateDbVersion forces the stored tickers to be dropped when the layout of
	// TickerRecord changes. Increment it whenever the record structure changes.
	RateDbVersion uint32 = 1
)

type DB struct {
	walletDataDB *storm.DB
	Close        func() error
}

// Initialize opens the storm db at dbPath, creating it if needed. Stored
// tickers written under another RateDbVersion are dropped.
func Initialize(dbPath string) (*DB, error) {
	walletDataDB, err := storm.Open(dbPath)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			// storm failed to acquire the lock on the file.
			return nil, fmt.Errorf("wallet data database is in use by another process")
		}
		return nil, fmt.Errorf("error opening wallet data database: %w", err)
	}

	if err = ensureRateDatabaseVersion(walletDataDB); err != nil {
		walletDataDB.Close()
		return nil, err
	}

	if err = walletDataDB.Init(&TickerRecord{}); err != nil {
		walletDataDB.Close()
		return nil, fmt.Errorf("error initializing ticker bucket: %w", err)
	}

	return &DB{
		walletDataDB: walletDataDB,
		Close:        walletDataDB.Close,
	}, nil
}

// ensureRateDatabaseVersion saves RateDbVersion in a new db. An existing db
// saved under another version has its stored tickers dropped first.
func ensureRateDatabaseVersion(walletDataDB *storm.DB) error {
	var currentDbVersion uint32
	err := walletDataDB.Get(RateBucketName, KeyDbVersion, &currentDbVersion)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return fmt.Errorf("error checking wallet data database version: %w", err)
	}
	if err == nil {
		if currentDbVersion == RateDbVersion {
			return nil
		}
		log.Infof("Dropping tickers stored under db version %d", currentDbVersion)
		if err = walletDataDB.Drop(&TickerRecord{}); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("error deleting outdated tickers: %w", err)
		}
	}
	if err = walletDataDB.Set(RateBucketName, KeyDbVersion, RateDbVersion); err != nil {
		return fmt.Errorf("error updating rate db version: %w", err)
	}
	return nil
}
