package sim

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/simbot/feed"
	"github.com/rustyeddy/simbot/journal"
	"github.com/rustyeddy/simbot/ledger"
	"github.com/rustyeddy/simbot/metrics"
	"github.com/rustyeddy/simbot/strategies"
)

// scriptedSource replays a fixed price series; the final price repeats once
// the script is exhausted.
type scriptedSource struct {
	prices []float64
	i      int
}

func (s *scriptedSource) Next(last float64, ok bool) float64 {
	p := s.prices[s.i]
	if s.i < len(s.prices)-1 {
		s.i++
	}
	return p
}

type testJournal struct {
	trades []ledger.ClosedTrade
	equity []journal.EquitySnapshot
	closed bool
}

func (j *testJournal) RecordTrade(t ledger.ClosedTrade) error {
	j.trades = append(j.trades, t)
	return nil
}

func (j *testJournal) RecordEquity(e journal.EquitySnapshot) error {
	j.equity = append(j.equity, e)
	return nil
}

func (j *testJournal) Close() error {
	j.closed = true
	return nil
}

// Small windows keep the synthetic series hand-checkable: warmup is
// max(2, 3)+1 = 4 points.
func testConfig() Config {
	return Config{
		Symbol:         "EURUSD",
		RSIWindow:      2,
		MAShort:        2,
		MALong:         3,
		Stake:          10,
		TakeProfitPips: 5,
		StopLossPips:   -10,
		HistoryLimit:   500,
	}
}

func newTestEngine(t *testing.T, cfg Config, prices []float64) (*Engine, *ledger.Ledger, *testJournal) {
	t.Helper()
	led := ledger.New(1000)
	j := &testJournal{}
	e := NewEngine(cfg, &scriptedSource{prices: prices}, strategies.NewRSICross(nil), led, j, nil)
	return e, led, j
}

func runTicks(t *testing.T, e *Engine, n int) {
	t.Helper()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, e.Tick(now))
		now = now.Add(time.Minute)
	}
}

// A sharp fall followed by a gentle rise: RSI stays oversold while the short
// MA crosses above the long MA on the fifth tick.
var qualifyingLong = []float64{1.10, 1.05, 1.00, 1.001, 1.002}

// Mirror image for the short side.
var qualifyingShort = []float64{1.00, 1.05, 1.10, 1.099, 1.098}

func TestNoSignalsBeforeWarmup(t *testing.T) {
	e, led, j := newTestEngine(t, testConfig(), qualifyingLong)

	runTicks(t, e, 3)

	assert.Nil(t, led.Position())
	assert.Zero(t, led.TradeCount())
	assert.Empty(t, j.trades)
	assert.Len(t, j.equity, 3)
}

func TestFirstActionableTickNeverOpens(t *testing.T) {
	e, led, _ := newTestEngine(t, testConfig(), qualifyingLong)

	// Tick 4 is the first actionable snapshot; it has no predecessor.
	runTicks(t, e, 4)
	assert.Nil(t, led.Position())
}

func TestOpensLongOnOversoldUpwardCross(t *testing.T) {
	e, led, _ := newTestEngine(t, testConfig(), qualifyingLong)

	runTicks(t, e, 5)

	pos := led.Position()
	require.NotNil(t, pos)
	assert.Equal(t, ledger.Long, pos.Direction)
	assert.Equal(t, 1.002, pos.EntryPrice)
	assert.Equal(t, 10.0, pos.Stake)
	assert.InDelta(t, 990.0, led.Balance(), 1e-9)
}

func TestOpensShortOnOverboughtDownwardCross(t *testing.T) {
	e, led, _ := newTestEngine(t, testConfig(), qualifyingShort)

	runTicks(t, e, 5)

	pos := led.Position()
	require.NotNil(t, pos)
	assert.Equal(t, ledger.Short, pos.Direction)
	assert.Equal(t, 1.098, pos.EntryPrice)
	assert.InDelta(t, 990.0, led.Balance(), 1e-9)
}

func TestMonotonicRiseNeverOpens(t *testing.T) {
	prices := []float64{1.000, 1.001, 1.002, 1.003, 1.004, 1.005, 1.006, 1.007, 1.008, 1.009}
	e, led, j := newTestEngine(t, testConfig(), prices)

	runTicks(t, e, 10)

	// RSI pins at 100 on a pure rise, so the long condition can never hold.
	assert.Nil(t, led.Position())
	assert.Empty(t, j.trades)
}

func TestClosesOnTakeProfit(t *testing.T) {
	prices := append(append([]float64{}, qualifyingLong...), 1.0027) // +7 pips from entry
	e, led, j := newTestEngine(t, testConfig(), prices)

	runTicks(t, e, 6)

	assert.Nil(t, led.Position())
	require.Len(t, j.trades, 1)

	trade := j.trades[0]
	assert.Equal(t, ReasonTakeProfit, trade.Reason)
	assert.Equal(t, ledger.Long, trade.Direction)
	assert.Equal(t, 1.002, trade.EntryPrice)
	assert.Equal(t, 1.0027, trade.ClosePrice)
	assert.InDelta(t, 7.0, trade.PnlPips, 1e-9)
	// profitAmount = (pips/10) * (stake/100) = 0.7 * 0.1
	assert.InDelta(t, 0.07, trade.ProfitAmount, 1e-9)
	assert.InDelta(t, 1000.07, led.Balance(), 1e-9)
	assert.NotEmpty(t, trade.ID)
}

func TestClosesOnStopLoss(t *testing.T) {
	prices := append(append([]float64{}, qualifyingLong...), 1.0008) // -12 pips from entry
	e, led, j := newTestEngine(t, testConfig(), prices)

	runTicks(t, e, 6)

	assert.Nil(t, led.Position())
	require.Len(t, j.trades, 1)

	trade := j.trades[0]
	assert.Equal(t, ReasonStopLoss, trade.Reason)
	assert.InDelta(t, -12.0, trade.PnlPips, 1e-9)
	assert.InDelta(t, -0.12, trade.ProfitAmount, 1e-9)
	assert.InDelta(t, 999.88, led.Balance(), 1e-9)
}

func TestClosesOnReverseCross(t *testing.T) {
	cfg := testConfig()
	// Thresholds wide enough that only the reverse crossover can fire.
	cfg.TakeProfitPips = 500
	cfg.StopLossPips = -500

	prices := append(append([]float64{}, qualifyingLong...), 0.9995)
	e, led, j := newTestEngine(t, cfg, prices)

	runTicks(t, e, 6)

	assert.Nil(t, led.Position())
	require.Len(t, j.trades, 1)

	trade := j.trades[0]
	assert.Equal(t, ReasonReverseCross, trade.Reason)
	assert.InDelta(t, -25.0, trade.PnlPips, 1e-9)
	assert.InDelta(t, 999.75, led.Balance(), 1e-9)
}

func TestHoldsOpenPositionWhenNothingFires(t *testing.T) {
	cfg := testConfig()
	cfg.TakeProfitPips = 500
	cfg.StopLossPips = -500

	// After the open, the price drifts without crossing back.
	prices := append(append([]float64{}, qualifyingLong...), 1.0021, 1.0022)
	e, led, j := newTestEngine(t, cfg, prices)

	runTicks(t, e, 7)

	require.NotNil(t, led.Position())
	assert.Empty(t, j.trades)
	assert.InDelta(t, 990.0, led.Balance(), 1e-9)
}

func TestStatusSnapshotIsConsistentAndIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig(), qualifyingLong)

	runTicks(t, e, 5)

	s1 := e.Status()
	s2 := e.Status()
	assert.Equal(t, s1, s2)

	assert.Equal(t, "EURUSD", s1.Symbol)
	assert.Equal(t, int64(5), s1.Tick)
	assert.Equal(t, 0, s1.TradesCount)
	require.NotNil(t, s1.LatestPrice)
	assert.Equal(t, 1.002, *s1.LatestPrice)
	require.NotNil(t, s1.OpenPosition)
	assert.InDelta(t, 990.0, s1.Balance, 1e-9)
	// Entry tick: no unrealized movement, so equity is balance plus stake.
	assert.InDelta(t, 1000.0, s1.Equity, 1e-9)

	// Mutating the returned position must not touch engine state.
	s1.OpenPosition.Stake = 999
	assert.Equal(t, 10.0, e.Status().OpenPosition.Stake)
}

func TestStatusEmptyEngine(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig(), qualifyingLong)

	s := e.Status()
	assert.Equal(t, int64(0), s.Tick)
	assert.Nil(t, s.LatestPrice)
	assert.Nil(t, s.OpenPosition)
	assert.InDelta(t, 1000.0, s.Balance, 1e-9)
	assert.InDelta(t, 1000.0, s.Equity, 1e-9)
}

func TestTradesReturnsCopyInCloseOrder(t *testing.T) {
	prices := append(append([]float64{}, qualifyingLong...), 1.0027)
	e, _, _ := newTestEngine(t, testConfig(), prices)

	runTicks(t, e, 6)

	trades := e.Trades()
	require.Len(t, trades, 1)
	trades[0].Reason = "mutated"
	assert.Equal(t, ReasonTakeProfit, e.Trades()[0].Reason)
}

// Over a long random run, the balance must equal the start balance minus
// every stake debited at open plus every stake-and-profit credited at close.
func TestAccountingIdentityOverRandomRun(t *testing.T) {
	cfg := Config{
		Symbol:         "EURUSD",
		RSIWindow:      14,
		MAShort:        5,
		MALong:         20,
		Stake:          10,
		TakeProfitPips: 5,
		StopLossPips:   -10,
		HistoryLimit:   500,
	}
	led := ledger.New(1000)
	j := &testJournal{}
	e := NewEngine(cfg, feed.NewGenerator(1.1, 20240301), strategies.NewRSICross(nil), led, j, nil)

	runTicks(t, e, 600)

	opens := len(j.trades)
	if led.Position() != nil {
		opens++
	}

	expected := 1000.0 - float64(opens)*cfg.Stake
	for _, trade := range j.trades {
		expected += cfg.Stake + trade.ProfitAmount
	}

	// Recorded profits are rounded to 6 decimals, so allow a small drift.
	assert.InDelta(t, expected, led.Balance(), 1e-3)
	assert.Equal(t, len(j.trades), led.TradeCount())
	assert.Len(t, j.equity, 600)
}

func TestMetricsTrackTicksAndTrades(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	prices := append(append([]float64{}, qualifyingLong...), 1.0027)
	led := ledger.New(1000)
	e := NewEngine(testConfig(), &scriptedSource{prices: prices}, strategies.NewRSICross(nil), led, nil, nil)
	e.SetMetrics(m)

	runTicks(t, e, 6)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.TicksTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpensTotal.WithLabelValues("long")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClosesTotal.WithLabelValues("long", ReasonTakeProfit)))
	assert.InDelta(t, 1000.07, testutil.ToFloat64(m.Balance), 1e-9)
}
