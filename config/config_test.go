package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "EURUSD", cfg.Symbol)
	assert.Equal(t, 1000.0, cfg.StartBalance)
	assert.Equal(t, 60, cfg.Interval)
	assert.Equal(t, 14, cfg.RSIWindow)
	assert.Equal(t, 5, cfg.MAShort)
	assert.Equal(t, 20, cfg.MALong)
	assert.Equal(t, 10.0, cfg.TradeAmount)
	assert.Equal(t, "10000", cfg.Server.Port)
}

func TestValidateRejectsBadWindows(t *testing.T) {
	cfg := Default()
	cfg.RSIWindow = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MAShort = 20
	cfg.MALong = 5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HistoryLimit = 10
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := Default()
	cfg.TakeProfitPips = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.StopLossPips = 10
	assert.Error(t, cfg.Validate())
}

func TestValidateJournal(t *testing.T) {
	cfg := Default()
	cfg.Journal.Type = "csv"
	assert.Error(t, cfg.Validate())

	cfg.Journal.TradesFile = "trades.csv"
	cfg.Journal.EquityFile = "equity.csv"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Journal.Type = "sqlite"
	assert.Error(t, cfg.Validate())
	cfg.Journal.DBPath = "journal.db"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Journal.Type = "parquet"
	assert.Error(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("START_BALANCE", "2500.5")
	t.Setenv("SYMBOL", "GBPUSD")
	t.Setenv("RSI_WINDOW", "7")
	t.Setenv("PORT", "8080")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2500.5, cfg.StartBalance)
	assert.Equal(t, "GBPUSD", cfg.Symbol)
	assert.Equal(t, 7, cfg.RSIWindow)
	assert.Equal(t, "8080", cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.MALong)
}

func TestEnvIgnoresUnparseable(t *testing.T) {
	t.Setenv("RSI_WINDOW", "fourteen")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.RSIWindow)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	data := []byte("symbol: USDJPY\nma_short: 3\nma_long: 9\nrsi_window: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "USDJPY", cfg.Symbol)
	assert.Equal(t, 3, cfg.MAShort)
	assert.Equal(t, 9, cfg.MALong)
	// Defaults survive for keys the file omits.
	assert.Equal(t, 1000.0, cfg.StartBalance)
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")

	cfg := Default()
	cfg.Symbol = "AUDUSD"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
