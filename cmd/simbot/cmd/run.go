package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/simbot/api"
	"github.com/rustyeddy/simbot/config"
	"github.com/rustyeddy/simbot/feed"
	"github.com/rustyeddy/simbot/journal"
	"github.com/rustyeddy/simbot/ledger"
	"github.com/rustyeddy/simbot/logger"
	"github.com/rustyeddy/simbot/metrics"
	"github.com/rustyeddy/simbot/sim"
	"github.com/rustyeddy/simbot/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation loop and serve the HTTP views",
	Long: `Run the trading simulation: one tick per interval generates a price,
recomputes the indicators, and applies at most one open or close. The
current status, trade history, metrics and a websocket stream are served
over HTTP.

Example:
  simbot run -f simulation.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// newJournal builds the journal named by the config: "none", "csv" or
// "sqlite". Validate guarantees the paths are set for the chosen type.
func newJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(cfg.TradesFile, cfg.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}

// buildEngine assembles the engine from the effective configuration.
func buildEngine(cfg *config.Config, j journal.Journal, m *metrics.Metrics, log *zap.Logger) (*sim.Engine, error) {
	strat, err := strategies.ByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	engine := sim.NewEngine(sim.Config{
		Symbol:         cfg.Symbol,
		RSIWindow:      cfg.RSIWindow,
		MAShort:        cfg.MAShort,
		MALong:         cfg.MALong,
		Stake:          cfg.TradeAmount,
		TakeProfitPips: cfg.TakeProfitPips,
		StopLossPips:   cfg.StopLossPips,
		HistoryLimit:   cfg.HistoryLimit,
	}, feed.NewGenerator(feed.DefaultBase, cfg.Seed), strat, ledger.New(cfg.StartBalance), j, log)

	if m != nil {
		engine.SetMetrics(m)
	}
	return engine, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
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

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine, err := buildEngine(cfg, j, m, log)
	if err != nil {
		return err
	}

	hub := api.NewHub(m, log)
	srv := api.NewServer(engine, hub, reg, log)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("simulation starting",
		zap.String("symbol", cfg.Symbol),
		zap.String("strategy", cfg.Strategy),
		zap.Float64("balance", cfg.StartBalance),
		zap.Int("interval_seconds", cfg.Interval),
	)

	tickAndPublish := func() {
		if err := engine.Tick(time.Now()); err != nil {
			log.Error("tick", zap.Error(err))
		}
		hub.Broadcast(engine.Status())
	}

	// First tick fires immediately; the ticker paces the rest.
	tickAndPublish()

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			tickAndPublish()
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		case <-ctx.Done():
			break loop
		}
	}

	log.Info("shutting down")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	status := engine.Status()
	log.Info("final state",
		zap.Int64("ticks", status.Tick),
		zap.Float64("balance", status.Balance),
		zap.Int("trades", status.TradesCount),
	)
	return nil
}
