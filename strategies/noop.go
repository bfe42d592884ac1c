package strategies

import (
	"github.com/rustyeddy/simbot/indicators"
	"github.com/rustyeddy/simbot/ledger"
)

func init() {
	Register("noop", func() Strategy { return Noop{} })
}

// Noop never signals. Useful for exercising the tick pipeline without trades.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Evaluate(prev, cur indicators.Snapshot, pos *ledger.Position) Signal {
	return SignalNone
}
