package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/simbot/ledger"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t ledger.ClosedTrade) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(id, direction, amount, entry_price, close_price, entry_time, close_time, profit_amount, pnl_pips, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Direction), t.Stake, t.EntryPrice, t.ClosePrice,
		t.EntryTime, t.CloseTime, t.ProfitAmount, t.PnlPips, t.Reason,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, tick, balance, equity, price)
		VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Tick, e.Balance, e.Equity, e.Price,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
