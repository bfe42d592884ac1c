package strategies

import (
	"github.com/rustyeddy/simbot/indicators"
	"github.com/rustyeddy/simbot/ledger"
)

// RSICross opens against RSI extremes confirmed by a moving-average
// crossover and closes on the reverse crossover:
//   - open long when RSI < Oversold and the short MA crosses above the long MA
//   - open short when RSI > Overbought and the short MA crosses below
//   - close an open position when the opposite crossover occurs
//
// Long is evaluated before short, making the tie-break deterministic.
// Take-profit and stop-loss exits live in the engine, which checks them
// before consulting the strategy.
type RSICross struct {
	*RSICrossConfig
}

// RSICrossConfig carries the oscillator thresholds.
type RSICrossConfig struct {
	Oversold   float64 `json:"oversold" yaml:"oversold"`     // default 30
	Overbought float64 `json:"overbought" yaml:"overbought"` // default 70
}

func init() {
	Register("rsi-cross", func() Strategy { return NewRSICross(nil) })
}

// RSICrossConfigDefaults returns the conventional 30/70 thresholds.
func RSICrossConfigDefaults() *RSICrossConfig {
	return &RSICrossConfig{Oversold: 30, Overbought: 70}
}

// NewRSICross builds the strategy, filling missing thresholds with defaults.
func NewRSICross(cfg *RSICrossConfig) *RSICross {
	if cfg == nil {
		cfg = RSICrossConfigDefaults()
	}
	if cfg.Oversold == 0 {
		cfg.Oversold = 30
	}
	if cfg.Overbought == 0 {
		cfg.Overbought = 70
	}
	return &RSICross{RSICrossConfig: cfg}
}

func (s *RSICross) Name() string { return "rsi-cross" }

func (s *RSICross) Evaluate(prev, cur indicators.Snapshot, pos *ledger.Position) Signal {
	// A crossover is a transition between two consecutive ticks: short MA
	// from <= to > the long MA (up), or from >= to < (down).
	crossUp := prev.MAShort <= prev.MALong && cur.MAShort > cur.MALong
	crossDown := prev.MAShort >= prev.MALong && cur.MAShort < cur.MALong

	if pos == nil {
		if cur.RSI < s.Oversold && crossUp {
			return SignalOpenLong
		}
		if cur.RSI > s.Overbought && crossDown {
			return SignalOpenShort
		}
		return SignalNone
	}

	if pos.Direction == ledger.Long && crossDown {
		return SignalClose
	}
	if pos.Direction == ledger.Short && crossUp {
		return SignalClose
	}
	return SignalNone
}
