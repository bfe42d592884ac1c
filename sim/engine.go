// Package sim runs the per-tick trading state machine over the synthetic
// price feed.
package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/simbot/indicators"
	"github.com/rustyeddy/simbot/internal/id"
	"github.com/rustyeddy/simbot/journal"
	"github.com/rustyeddy/simbot/ledger"
	"github.com/rustyeddy/simbot/market"
	"github.com/rustyeddy/simbot/metrics"
	"github.com/rustyeddy/simbot/strategies"
)

// Close reasons recorded on trades and in the journal.
const (
	ReasonTakeProfit   = "TakeProfit"
	ReasonStopLoss     = "StopLoss"
	ReasonReverseCross = "ReverseCross"
)

// PriceSource produces the next simulated price. last is the most recent
// price in the series; ok is false while the series is still empty.
type PriceSource interface {
	Next(last float64, ok bool) float64
}

// Config carries the engine parameters. Validation happens in the config
// package before an Engine is built.
type Config struct {
	Symbol         string
	RSIWindow      int
	MAShort        int
	MALong         int
	Stake          float64
	TakeProfitPips float64 // close when pnl pips reaches this, e.g. 5
	StopLossPips   float64 // close when pnl pips falls to this, e.g. -10
	HistoryLimit   int
}

// Engine owns all mutable simulation state: the price history, the ledger,
// the tick counter and the previous indicator snapshot. Tick is the only
// writer; Status and Trades take the read lock so external views never
// observe a half-applied transition.
type Engine struct {
	mu sync.RWMutex

	cfg   Config
	src   PriceSource
	strat strategies.Strategy
	led   *ledger.Ledger

	history *market.Series
	prev    *indicators.Snapshot
	tick    int64

	journal journal.Journal
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewEngine wires the engine. A nil journal disables journaling; a nil
// logger silences the engine.
func NewEngine(cfg Config, src PriceSource, strat strategies.Strategy, led *ledger.Ledger, j journal.Journal, log *zap.Logger) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 500
	}
	return &Engine{
		cfg:     cfg,
		src:     src,
		strat:   strat,
		led:     led,
		history: market.NewSeries(cfg.HistoryLimit),
		journal: j,
		log:     log,
	}
}

// SetMetrics attaches Prometheus collectors. Call before the first Tick.
func (e *Engine) SetMetrics(m *metrics.Metrics) { e.metrics = m }

// Tick advances the simulation one step: generate a price, recompute the
// indicators, and apply at most one open or close transition. A tick whose
// snapshot is not actionable skips signal evaluation entirely.
func (e *Engine) Tick(now time.Time) error {
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick++

	last, ok := e.history.Last()
	price := e.src.Next(last, ok)
	e.history.Push(price)

	var err error
	snap, actionable := indicators.Compute(e.history.Values(), e.cfg.RSIWindow, e.cfg.MAShort, e.cfg.MALong)
	if actionable {
		if e.prev != nil {
			err = e.step(now, price, *e.prev, snap)
		}
		prev := snap
		e.prev = &prev
	}

	equity := e.equityLocked(price)
	if jerr := e.journal.RecordEquity(journal.EquitySnapshot{
		Time:    now.UTC(),
		Tick:    e.tick,
		Balance: e.led.Balance(),
		Equity:  equity,
		Price:   price,
	}); jerr != nil && err == nil {
		err = jerr
	}

	if e.metrics != nil {
		e.metrics.TicksTotal.Inc()
		e.metrics.Balance.Set(e.led.Balance())
		e.metrics.Equity.Set(equity)
		e.metrics.TickDuration.Observe(time.Since(start).Seconds())
	}

	if e.tick%10 == 0 {
		e.log.Info("tick",
			zap.Int64("tick", e.tick),
			zap.Float64("price", price),
			zap.Float64("balance", e.led.Balance()),
			zap.Bool("open", e.led.Position() != nil),
			zap.Int("trades", e.led.TradeCount()),
		)
	}

	return err
}

// step applies at most one transition for this tick: an open when flat, or a
// close when a take-profit, stop-loss, or reverse crossover fires.
func (e *Engine) step(now time.Time, price float64, prev, cur indicators.Snapshot) error {
	pos := e.led.Position()
	if pos == nil {
		switch e.strat.Evaluate(prev, cur, nil) {
		case strategies.SignalOpenLong:
			e.openLocked(now, price, ledger.Long)
		case strategies.SignalOpenShort:
			e.openLocked(now, price, ledger.Short)
		}
		return nil
	}

	pips := pnlPips(pos, price)

	var reason string
	switch {
	case pips >= e.cfg.TakeProfitPips:
		reason = ReasonTakeProfit
	case pips <= e.cfg.StopLossPips:
		reason = ReasonStopLoss
	case e.strat.Evaluate(prev, cur, pos) == strategies.SignalClose:
		reason = ReasonReverseCross
	default:
		return nil
	}

	return e.closeLocked(now, price, pos, pips, reason)
}

func (e *Engine) openLocked(now time.Time, price float64, dir ledger.Direction) {
	pos := &ledger.Position{
		EntryTime:  now.UTC(),
		EntryPrice: price,
		Direction:  dir,
		Stake:      e.cfg.Stake,
	}

	// Stake is reserved out of the balance for the life of the position.
	e.led.Debit(pos.Stake)
	e.led.SetPosition(pos)

	if e.metrics != nil {
		e.metrics.OpensTotal.WithLabelValues(string(dir)).Inc()
	}
	e.log.Info("open",
		zap.String("direction", string(dir)),
		zap.Float64("entry", price),
		zap.Float64("stake", pos.Stake),
	)
}

func (e *Engine) closeLocked(now time.Time, price float64, pos *ledger.Position, pips float64, reason string) error {
	// Demo conversion from pips to account currency. The constants are part
	// of the simulation's observable behavior and must not change.
	profit := (pips / 10.0) * (pos.Stake / 100.0)

	e.led.Credit(pos.Stake + profit)

	trade := ledger.ClosedTrade{
		ID:           id.New(),
		EntryTime:    pos.EntryTime,
		CloseTime:    now.UTC(),
		EntryPrice:   pos.EntryPrice,
		ClosePrice:   price,
		Direction:    pos.Direction,
		Stake:        pos.Stake,
		ProfitAmount: market.Round6(profit),
		PnlPips:      market.Round3(pips),
		Reason:       reason,
	}
	e.led.AppendTrade(trade)
	e.led.SetPosition(nil)

	if e.metrics != nil {
		e.metrics.ClosesTotal.WithLabelValues(string(pos.Direction), reason).Inc()
	}
	e.log.Info("close",
		zap.String("direction", string(pos.Direction)),
		zap.String("reason", reason),
		zap.Float64("exit", price),
		zap.Float64("pips", trade.PnlPips),
		zap.Float64("profit", trade.ProfitAmount),
	)

	return e.journal.RecordTrade(trade)
}

// equityLocked values the account at the given price: balance plus, when a
// position is open, the reserved stake and its unrealized profit under the
// same scaling rule used at close.
func (e *Engine) equityLocked(price float64) float64 {
	equity := e.led.Balance()
	if pos := e.led.Position(); pos != nil {
		pips := pnlPips(pos, price)
		equity += pos.Stake + (pips/10.0)*(pos.Stake/100.0)
	}
	return equity
}

func pnlPips(pos *ledger.Position, price float64) float64 {
	if pos.Direction == ledger.Long {
		return market.Pips(pos.EntryPrice, price)
	}
	return -market.Pips(pos.EntryPrice, price)
}
