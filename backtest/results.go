package backtest

import (
	"fmt"
	"io"
	"time"
)

// Result is a lightweight summary of a backtest run.
type Result struct {
	Ticks  int64
	Trades int
	Wins   int
	Losses int

	StartBalance float64
	EndBalance   float64
	EndEquity    float64
	NetPL        float64
	OpenAtEnd    bool

	Start time.Time
	End   time.Time
}

// WinRate returns wins as a percentage of closed trades, 0 when none closed.
func (r Result) WinRate() float64 {
	if r.Trades == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trades) * 100
}

// ReturnPct returns the net change in balance as a percentage of the start.
func (r Result) ReturnPct() float64 {
	if r.StartBalance == 0 {
		return 0
	}
	return (r.EndBalance - r.StartBalance) / r.StartBalance * 100
}

func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Ticks:         %d\n", r.Ticks)
	if !r.Start.IsZero() {
		fmt.Fprintf(w, "Start:         %s\n", r.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", r.End.Format(time.RFC3339))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", r.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", r.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.WinRate())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance: %.2f\n", r.StartBalance)
	fmt.Fprintf(w, "End Balance:   %.2f\n", r.EndBalance)
	fmt.Fprintf(w, "End Equity:    %.2f\n", r.EndEquity)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", r.NetPL)
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.ReturnPct())

	if r.OpenAtEnd {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Note: a position was still open at the end of the run.")
	}

	fmt.Fprintln(w)
}
