package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/simbot/backtest"
	"github.com/rustyeddy/simbot/config"
	"github.com/rustyeddy/simbot/logger"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a fast offline simulation and print a summary",
	Long: `Run the simulation for a fixed number of ticks without sleeping between
them, then print trade statistics and account performance.

Examples:
  simbot backtest --ticks 10000
  simbot backtest --ticks 10000 --seed 42 -f simulation.yaml`,
	RunE: runBacktest,
}

var (
	backtestTicks int
	backtestSeed  int64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().IntVar(&backtestTicks, "ticks", 10000, "number of ticks to simulate")
	backtestCmd.Flags().Int64Var(&backtestSeed, "seed", 0, "feed seed; 0 seeds from the clock")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if backtestSeed != 0 {
		cfg.Seed = backtestSeed
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	j, err := newJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	engine, err := buildEngine(cfg, j, nil, zap.NewNop())
	if err != nil {
		return err
	}

	runner := &backtest.Runner{
		Engine:   engine,
		Ticks:    backtestTicks,
		Interval: time.Duration(cfg.Interval) * time.Second,
		Start:    time.Now().UTC(),
	}

	res, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	backtest.PrintResult(os.Stdout, res)
	return nil
}
