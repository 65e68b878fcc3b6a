package walletdata

import (
	"sort"

	"code.cryptopower.dev/group/walletdisplay/libwallet/ext"
	"github.com/asdine/storm"
	"github.com/asdine/storm/q"
)

// LoadTickers returns the persisted tickers of the source, oldest first.
func (db *DB) LoadTickers(source string) ([]*ext.Ticker, error) {
	var records []*TickerRecord
	if err := db.FindAll("Source", source, &records); err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastUpdate.Before(records[j].LastUpdate)
	})

	tickers := make([]*ext.Ticker, 0, len(records))
	for _, r := range records {
		tickers = append(tickers, r.Ticker())
	}
	return tickers, nil
}

// Count returns the number of tickers saved for the source.
func (db *DB) Count(source string) (int, error) {
	count, err := db.walletDataDB.Select(q.Eq("Source", source)).Count(&TickerRecord{})
	if err != nil {
		return -1, err
	}
	return count, nil
}

func (db *DB) FindOne(fieldName string, value interface{}, obj interface{}) error {
	return db.walletDataDB.One(fieldName, value, obj)
}

func (db *DB) FindAll(fieldName string, value interface{}, records interface{}) error {
	err := db.walletDataDB.Find(fieldName, value, records)
	if err != nil && err != storm.ErrNotFound {
		return err
	}
	return nil
}
