package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/config"
	"github.com/Veraticus/cooccur/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "cooccur",
		Short: "🧺 Frequent itemset and association rule miner",
		Long: `cooccur finds items that are bought together in transaction baskets.

It mines frequent itemsets by brute force, Apriori or FP-Growth, derives
association rules ranked by confidence, and can compare all three strategies
on the same data.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/cooccur/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("data-dir", "", "folder holding *_transactions.csv datasets")
	rootCmd.PersistentFlags().String("output-dir", "", "folder for saved CSV results")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("output-dir"))

	setDefaults()

	// Add commands
	rootCmd.AddCommand(datasetsCmd())
	rootCmd.AddCommand(mineCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func setDefaults() {
	viper.SetDefault("data.dir", "./data")
	viper.SetDefault("output.dir", "./outputs")
	viper.SetDefault("output.top", report.DefaultTop)
	viper.SetDefault("output.format", string(report.FormatTable))
	viper.SetDefault("mining.min_support", config.DefaultMinSupport)
	viper.SetDefault("mining.min_confidence", config.DefaultMinConfidence)
	viper.SetDefault("database.path", "$HOME/.local/share/cooccur/runs.db")
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}

	var userErr *common.UserError
	switch {
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	case errors.As(err, &userErr):
		fmt.Fprintln(os.Stderr, cli.FormatError(userErr.UserMessage))
		common.LogDebug("Command failed", common.Fields{"error": err})
	default:
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
	}
	os.Exit(1)
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/cooccur", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: COOCCUR_MINING_MIN_SUPPORT maps to mining.min_support
	viper.SetEnvPrefix("COOCCUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cooccur %s\n", version)
		},
	}
}
