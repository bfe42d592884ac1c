// Package journal persists closed trades and per-tick equity snapshots.
package journal

import (
	"time"

	"github.com/rustyeddy/simbot/ledger"
)

// EquitySnapshot captures the account value at a single tick. Equity is the
// balance plus the open stake and unrealized profit, when a position is open.
type EquitySnapshot struct {
	Time    time.Time
	Tick    int64
	Balance float64
	Equity  float64
	Price   float64
}

type Journal interface {
	RecordTrade(ledger.ClosedTrade) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards all records. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordTrade(ledger.ClosedTrade) error { return nil }
func (Nop) RecordEquity(EquitySnapshot) error    { return nil }
func (Nop) Close() error                         { return nil }
