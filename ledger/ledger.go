// Package ledger owns the simulated account: the balance, the single open
// position, and the append-only history of closed trades.
package ledger

import "time"

// Direction of a simulated trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Position is the open simulated trade. At most one exists at a time.
type Position struct {
	EntryTime  time.Time `json:"entry_time"`
	EntryPrice float64   `json:"entry_price"`
	Direction  Direction `json:"direction"`
	Stake      float64   `json:"amount"`
}

// ClosedTrade is the immutable settlement record appended when a position
// closes. The JSON field names are the bot's public wire format.
type ClosedTrade struct {
	ID           string    `json:"id"`
	EntryTime    time.Time `json:"entry_time"`
	CloseTime    time.Time `json:"close_time"`
	EntryPrice   float64   `json:"entry_price"`
	ClosePrice   float64   `json:"close_price"`
	Direction    Direction `json:"direction"`
	Stake        float64   `json:"amount"`
	ProfitAmount float64   `json:"profit_amount"`
	PnlPips      float64   `json:"pnl_pips"`
	Reason       string    `json:"reason"`
}

// Ledger is a plain data holder with no logic of its own. It carries no lock:
// the sim engine is its only writer and guards all access with the engine
// lock, so a reader can never observe a half-settled close (position cleared
// but balance not yet credited).
type Ledger struct {
	balance  float64
	position *Position
	trades   []ClosedTrade
}

// New creates a Ledger with the given starting balance.
func New(startBalance float64) *Ledger {
	return &Ledger{balance: startBalance}
}

// Debit removes amount from the balance. The balance may go negative; the
// simulation enforces no margin.
func (l *Ledger) Debit(amount float64) { l.balance -= amount }

// Credit adds amount to the balance.
func (l *Ledger) Credit(amount float64) { l.balance += amount }

// Balance returns the current balance.
func (l *Ledger) Balance() float64 { return l.balance }

// SetPosition installs the open position, or clears it when pos is nil.
func (l *Ledger) SetPosition(pos *Position) { l.position = pos }

// Position returns the open position, or nil when flat.
func (l *Ledger) Position() *Position { return l.position }

// AppendTrade records a settled trade. History is append-only and ordered by
// close time.
func (l *Ledger) AppendTrade(t ClosedTrade) { l.trades = append(l.trades, t) }

// TradeCount returns the number of closed trades.
func (l *Ledger) TradeCount() int { return len(l.trades) }

// Trades returns a copy of the closed-trade history in close order. The copy
// is never nil so it serializes as an empty list.
func (l *Ledger) Trades() []ClosedTrade {
	out := make([]ClosedTrade, len(l.trades))
	copy(out, l.trades)
	return out
}
