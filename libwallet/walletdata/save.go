package walletdata

import (
	"fmt"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet/ext"
	"github.com/asdine/storm"
	"github.com/shopspring/decimal"
)

const KeyLastSaved = "LastSaved"

// TickerRecord is a ticker of a rate source as persisted between runs.
type TickerRecord struct {
	ID                 string `storm:"id"`
	Source             string `storm:"index"`
	Market             string
	LastTradePrice     decimal.Decimal
	PriceChangePercent *decimal.Decimal
	LastUpdate         time.Time
}

func tickerID(source, market string) string {
	return source + "/" + market
}

func newTickerRecord(source string, t *ext.Ticker) *TickerRecord {
	return &TickerRecord{
		ID:                 tickerID(source, t.Market),
		Source:             source,
		Market:             t.Market,
		LastTradePrice:     t.LastTradePrice,
		PriceChangePercent: t.PriceChangePercent,
		LastUpdate:         t.LastUpdate,
	}
}

// Ticker converts the record back into the rate source representation.
func (r *TickerRecord) Ticker() *ext.Ticker {
	return &ext.Ticker{
		Market:             r.Market,
		LastTradePrice:     r.LastTradePrice,
		PriceChangePercent: r.PriceChangePercent,
		LastUpdate:         r.LastUpdate,
	}
}

// SaveOrUpdate saves a ticker record and overwrites the one previously saved
// for the same source and market.
func (db *DB) SaveOrUpdate(record *TickerRecord) (overwritten bool, err error) {
	var existing TickerRecord
	err = db.walletDataDB.One("ID", record.ID, &existing)
	if err != nil && err != storm.ErrNotFound {
		err = fmt.Errorf("error checking if ticker was already saved: %s", err.Error())
		return
	}

	overwritten = err == nil
	err = db.walletDataDB.Save(record)
	return
}

// SaveTickers persists the tickers of a rate source in a single transaction.
// Tickers without a market are skipped.
func (db *DB) SaveTickers(source string, tickers []*ext.Ticker) error {
	tx, err := db.walletDataDB.Begin(true)
	if err != nil {
		return fmt.Errorf("error starting ticker transaction: %s", err.Error())
	}
	defer tx.Rollback()

	for _, t := range tickers {
		if t == nil || t.Market == "" {
			continue
		}
		if err := tx.Save(newTickerRecord(source, t)); err != nil {
			return fmt.Errorf("error saving %s ticker: %s", t.Market, err.Error())
		}
	}

	if err := tx.Set(RateBucketName, tickerID(source, KeyLastSaved), time.Now().Unix()); err != nil {
		return fmt.Errorf("error saving ticker timestamp: %s", err.Error())
	}
	return tx.Commit()
}

// LastSaved returns when tickers of the source were last persisted. A zero
// time is returned if they never were.
func (db *DB) LastSaved(source string) (time.Time, error) {
	var unix int64
	err := db.walletDataDB.Get(RateBucketName, tickerID(source, KeyLastSaved), &unix)
	if err == storm.ErrNotFound {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}

// ClearSavedTickers deletes every ticker of the source.
func (db *DB) ClearSavedTickers(source string) error {
	var records []*TickerRecord
	if err := db.FindAll("Source", source, &records); err != nil {
		return err
	}
	for _, r := range records {
		if err := db.walletDataDB.DeleteStruct(r); err != nil {
			return err
		}
	}
	return db.walletDataDB.Delete(RateBucketName, tickerID(source, KeyLastSaved))
}
