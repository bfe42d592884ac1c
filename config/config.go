// Package config loads simulation settings from defaults, an optional YAML
// or JSON file, and environment variables (highest precedence).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete bot configuration.
type Config struct {
	Symbol         string  `json:"symbol" yaml:"symbol"`
	StartBalance   float64 `json:"start_balance" yaml:"start_balance"`
	Interval       int     `json:"interval_seconds" yaml:"interval_seconds"`
	RSIWindow      int     `json:"rsi_window" yaml:"rsi_window"`
	MAShort        int     `json:"ma_short" yaml:"ma_short"`
	MALong         int     `json:"ma_long" yaml:"ma_long"`
	TradeAmount    float64 `json:"trade_amount" yaml:"trade_amount"`
	TakeProfitPips float64 `json:"take_profit_pips" yaml:"take_profit_pips"`
	StopLossPips   float64 `json:"stop_loss_pips" yaml:"stop_loss_pips"`
	HistoryLimit   int     `json:"history_limit" yaml:"history_limit"`
	Strategy       string  `json:"strategy" yaml:"strategy"`
	Seed           int64   `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 seeds from the clock

	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// ServerConfig contains the HTTP status-view parameters.
type ServerConfig struct {
	Port string `json:"port" yaml:"port"`
}

// LogConfig contains the logger parameters.
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`                       // "debug", "info", "warn", "error"
	Format      string `json:"format" yaml:"format"`                     // "json" or "console"
	OutputFile  string `json:"output_file,omitempty" yaml:"output_file,omitempty"` // optional rotating file sink
	Environment string `json:"environment" yaml:"environment"`           // "dev" or "prod"
}

// JournalConfig contains trade-journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns the configuration the original demo shipped with.
func Default() *Config {
	return &Config{
		Symbol:         "EURUSD",
		StartBalance:   1000.0,
		Interval:       60,
		RSIWindow:      14,
		MAShort:        5,
		MALong:         20,
		TradeAmount:    10.0,
		TakeProfitPips: 5.0,
		StopLossPips:   -10.0,
		HistoryLimit:   500,
		Strategy:       "rsi-cross",
		Server: ServerConfig{
			Port: "10000",
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			Environment: "dev",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the file
// at path (when non-empty), overlaid with environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON) on top of the
// defaults, without applying the environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, c); err != nil {
		if jerr := json.Unmarshal(data, c); jerr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return nil
}

// SaveToFile writes the configuration, YAML or JSON by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.StartBalance <= 0 {
		return fmt.Errorf("start_balance must be positive")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval_seconds must be positive")
	}
	if c.RSIWindow <= 0 {
		return fmt.Errorf("rsi_window must be positive")
	}
	if c.MAShort <= 0 || c.MALong <= 0 {
		return fmt.Errorf("ma windows must be positive")
	}
	if c.MAShort >= c.MALong {
		return fmt.Errorf("ma_short (%d) must be less than ma_long (%d)", c.MAShort, c.MALong)
	}
	if c.TradeAmount <= 0 {
		return fmt.Errorf("trade_amount must be positive")
	}
	if c.TakeProfitPips <= 0 {
		return fmt.Errorf("take_profit_pips must be positive")
	}
	if c.StopLossPips >= 0 {
		return fmt.Errorf("stop_loss_pips must be negative")
	}
	warmup := c.RSIWindow
	if c.MALong > warmup {
		warmup = c.MALong
	}
	if c.HistoryLimit <= warmup+1 {
		return fmt.Errorf("history_limit (%d) must exceed the indicator warmup (%d)", c.HistoryLimit, warmup+1)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}
