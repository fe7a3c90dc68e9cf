// Package config holds the mlbhits settings and their defaults.
package config

import (
	"path/filepath"
	"time"
)

// File names under DataDir.
const (
	EventsFile      = "statcast_data.csv"
	BattingFile     = "batting_stats.csv"
	PitchingFile    = "pitching_stats.csv"
	GamesFile       = "todays_games.csv"
	ModelFile       = "trained_model.json"
	PredictionsFile = "predictions_today.csv"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls diagnostic verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir holds every CSV the pipeline reads and writes, plus the model.
	DataDir string `koanf:"data_dir"`

	// DBPath is the SQLite run ledger.
	DBPath string `koanf:"db_path"`

	// Season is the FanGraphs season scraped for aggregates.
	Season int `koanf:"season"`

	// StatcastDays is how many days back the event scrape reaches.
	StatcastDays int `koanf:"statcast_days"`

	// Source endpoints. Empty means the client default.
	StatcastURL  string   `koanf:"statcast_url"`
	FangraphsURL string   `koanf:"fangraphs_url"`
	ScheduleURL  string   `koanf:"schedule_url"`
	RegisterURLs []string `koanf:"register_urls"`

	// RegisterFile resolves IDs from a local Chadwick register copy instead
	// of downloading it.
	RegisterFile string `koanf:"register_file"`

	// HTTPTimeout bounds scrape requests. LookupTimeout bounds each register
	// chunk request; zero leaves it unbounded.
	HTTPTimeout   time.Duration `koanf:"http_timeout"`
	LookupTimeout time.Duration `koanf:"lookup_timeout"`

	// ModelFile overrides the model artifact name; a .zst suffix compresses it.
	ModelFile string `koanf:"model_file"`

	TestFraction float64 `koanf:"test_fraction"`
	Seed         uint64  `koanf:"seed"`

	// Board thresholds.
	MinLaunchSpeed float64 `koanf:"min_launch_speed"`
	MinWRCPlus     float64 `koanf:"min_wrc_plus"`

	// MetricsFile, when set, receives per-run gauges in the Prometheus
	// text format.
	MetricsFile string `koanf:"metrics_file"`

	// AnthropicModel is used by `analyze ask`.
	AnthropicModel string `koanf:"anthropic_model"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		LogLevel:       "info",
		DataDir:        ".",
		DBPath:         filepath.Join(userHome(), ".mlbhits", "mlbhits.db"),
		Season:         time.Now().Year(),
		StatcastDays:   3,
		HTTPTimeout:    2 * time.Minute,
		ModelFile:      ModelFile,
		TestFraction:   0.2,
		Seed:           42,
		MinLaunchSpeed: 100,
		MinWRCPlus:     100,
		AnthropicModel: "claude-haiku-4-5-20251001",
	}
}

// Path returns name joined onto DataDir.
func (c *Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

// ModelPath returns the model artifact location.
func (c *Config) ModelPath() string {
	return c.Path(c.ModelFile)
}
