package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// applyEnv overlays environment variables onto the config, keeping the
// original demo's variable names. A .env file is honored when present.
func (c *Config) applyEnv() {
	// Ignore the error so the bot still starts when .env is missing.
	_ = godotenv.Load()

	c.Symbol = getEnv("SYMBOL", c.Symbol)
	c.StartBalance = getEnvFloat("START_BALANCE", c.StartBalance)
	c.Interval = getEnvInt("INTERVAL_SECONDS", c.Interval)
	c.RSIWindow = getEnvInt("RSI_WINDOW", c.RSIWindow)
	c.MAShort = getEnvInt("MA_SHORT", c.MAShort)
	c.MALong = getEnvInt("MA_LONG", c.MALong)
	c.TradeAmount = getEnvFloat("TRADE_AMOUNT", c.TradeAmount)
	c.TakeProfitPips = getEnvFloat("TAKE_PROFIT_PIPS", c.TakeProfitPips)
	c.StopLossPips = getEnvFloat("STOP_LOSS_PIPS", c.StopLossPips)
	c.HistoryLimit = getEnvInt("HISTORY_LIMIT", c.HistoryLimit)
	c.Strategy = getEnv("STRATEGY", c.Strategy)
	c.Seed = getEnvInt64("SEED", c.Seed)

	c.Server.Port = getEnv("PORT", c.Server.Port)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Log.OutputFile = getEnv("LOG_OUTPUT_FILE", c.Log.OutputFile)
	c.Log.Environment = getEnv("LOG_ENVIRONMENT", c.Log.Environment)

	c.Journal.Type = getEnv("JOURNAL_TYPE", c.Journal.Type)
	c.Journal.TradesFile = getEnv("JOURNAL_TRADES_FILE", c.Journal.TradesFile)
	c.Journal.EquityFile = getEnv("JOURNAL_EQUITY_FILE", c.Journal.EquityFile)
	c.Journal.DBPath = getEnv("JOURNAL_DB_PATH", c.Journal.DBPath)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
