package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/simbot/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for the simulation.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  simbot config init -o simulation.yaml
  simbot config validate simulation.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

var configInitOutput string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "simulation.yaml", "output config file path")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  simbot run -f %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(args[0])
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid: %s\n", args[0])
	fmt.Printf("  Symbol:   %s (balance %.2f)\n", cfg.Symbol, cfg.StartBalance)
	fmt.Printf("  Strategy: %s (RSI %d, MA %d/%d)\n", cfg.Strategy, cfg.RSIWindow, cfg.MAShort, cfg.MALong)
	fmt.Printf("  Journal:  %s\n", cfg.Journal.Type)
	return nil
}
