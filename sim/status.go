package sim

import (
	"github.com/rustyeddy/simbot/ledger"
	"github.com/rustyeddy/simbot/market"
)

// Status is the read-only view served by the status endpoint and streamed to
// websocket clients. Field names are the bot's public wire format.
type Status struct {
	Symbol       string           `json:"symbol"`
	Balance      float64          `json:"balance"`
	Equity       float64          `json:"equity"`
	OpenPosition *ledger.Position `json:"open_position"`
	TradesCount  int              `json:"trades_count"`
	LatestPrice  *float64         `json:"latest_price"`
	Tick         int64            `json:"tick"`
}

// Status returns a consistent snapshot of the engine state. Between ticks,
// repeated calls return identical values.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Status{
		Symbol:      e.cfg.Symbol,
		Balance:     market.Round6(e.led.Balance()),
		Equity:      market.Round6(e.led.Balance()),
		TradesCount: e.led.TradeCount(),
		Tick:        e.tick,
	}

	if price, ok := e.history.Last(); ok {
		p := price
		s.LatestPrice = &p
		s.Equity = market.Round6(e.equityLocked(price))
	}
	if pos := e.led.Position(); pos != nil {
		cp := *pos
		s.OpenPosition = &cp
	}
	return s
}

// Trades returns a copy of the closed-trade history in close order.
func (e *Engine) Trades() []ledger.ClosedTrade {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.led.Trades()
}
