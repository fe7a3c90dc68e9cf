package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/logging"
)

var (
	cfgPath  string
	dbPath   string
	dataDir  string
	logLevel string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mlbhits",
	Short: "MLB hit prediction pipeline",
	Long: `Scrape Statcast events and FanGraphs season stats, train a hit classifier
and write per-event hit predictions.

A daily run is: mlbhits scrape && mlbhits predict (or: mlbhits run).`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file (falls back to $MLBHITS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite run ledger (default ~/.mlbhits/mlbhits.db)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for scraped CSVs, the model and predictions")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// loadConfig layers flags over the file/env configuration and builds the
// diagnostic logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		c.DBPath = dbPath
	}
	if flags.Changed("data-dir") {
		c.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	l, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("config loaded", zap.String("data_dir", cfg.DataDir), zap.String("db", cfg.DBPath))
	return nil
}
