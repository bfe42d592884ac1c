// Package backtest drives the simulation engine over a fixed number of
// ticks on an accelerated clock and summarizes the outcome.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/simbot/sim"
)

// Runner executes a fixed-length run against an engine. The wall clock is
// simulated: each tick advances Interval from Start without sleeping.
type Runner struct {
	Engine   *sim.Engine
	Ticks    int
	Interval time.Duration
	Start    time.Time
}

// Run executes the loop:
//  1. advance the simulated clock
//  2. engine.Tick(now)
//
// The context is checked between ticks so long runs can be cancelled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Engine == nil {
		return Result{}, fmt.Errorf("backtest: Engine is required")
	}
	if r.Ticks <= 0 {
		return Result{}, fmt.Errorf("backtest: Ticks must be positive, got %d", r.Ticks)
	}

	interval := r.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	now := r.Start
	if now.IsZero() {
		now = time.Now().UTC()
	}

	startBalance := r.Engine.Status().Balance

	for i := 0; i < r.Ticks; i++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		if err := r.Engine.Tick(now); err != nil {
			return Result{}, err
		}
		now = now.Add(interval)
	}

	return summarize(r.Engine, startBalance, r.Start, now), nil
}

func summarize(e *sim.Engine, startBalance float64, start, end time.Time) Result {
	status := e.Status()

	res := Result{
		Ticks:        status.Tick,
		StartBalance: startBalance,
		EndBalance:   status.Balance,
		EndEquity:    status.Equity,
		OpenAtEnd:    status.OpenPosition != nil,
		Start:        start,
		End:          end,
	}

	for _, trade := range e.Trades() {
		res.Trades++
		if trade.ProfitAmount >= 0 {
			res.Wins++
		} else {
			res.Losses++
		}
		res.NetPL += trade.ProfitAmount
	}

	return res
}
