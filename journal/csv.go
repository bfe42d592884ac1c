package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/simbot/ledger"
)

type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"id", "direction", "amount", "entry_price", "close_price", "entry_time", "close_time", "profit_amount", "pnl_pips", "reason"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "tick", "balance", "equity", "price"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, ew, tf, ef}, nil
}

func (j *CSVJournal) RecordTrade(t ledger.ClosedTrade) error {
	err := j.trades.Write([]string{
		t.ID,
		string(t.Direction),
		f(t.Stake),
		f(t.EntryPrice),
		f(t.ClosePrice),
		t.EntryTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.ProfitAmount),
		f(t.PnlPips),
		t.Reason,
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		strconv.FormatInt(e.Tick, 10),
		f(e.Balance),
		f(e.Equity),
		f(e.Price),
	})
	if err != nil {
		return err
	}

	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
