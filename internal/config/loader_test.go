package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-mlb-hits/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.DataDir, convey.ShouldEqual, ".")
				convey.So(cfg.StatcastDays, convey.ShouldEqual, 3)
				convey.So(cfg.TestFraction, convey.ShouldEqual, 0.2)
				convey.So(cfg.Seed, convey.ShouldEqual, uint64(42))
				convey.So(cfg.MinLaunchSpeed, convey.ShouldEqual, 100.0)
				convey.So(cfg.MinWRCPlus, convey.ShouldEqual, 100.0)
				convey.So(cfg.ModelPath(), convey.ShouldEqual, config.ModelFile)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("MLBHITS_DATA_DIR", "/tmp/mlb")
			t.Setenv("MLBHITS_STATCAST_DAYS", "7")
			t.Setenv("MLBHITS_MIN_WRC_PLUS", "120.5")
			t.Setenv("MLBHITS_LOOKUP_TIMEOUT", "45s")

			cfg, err := config.Load("")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/mlb")
				convey.So(cfg.StatcastDays, convey.ShouldEqual, 7)
				convey.So(cfg.MinWRCPlus, convey.ShouldEqual, 120.5)
				convey.So(cfg.LookupTimeout, convey.ShouldEqual, 45*time.Second)
				convey.So(cfg.Path(config.EventsFile), convey.ShouldEqual, filepath.Join("/tmp/mlb", "statcast_data.csv"))
			})
		})

		convey.Convey("When loading config with a YAML file and env vars", func() {
			path := writeTempConfig(t, `
data_dir: /srv/mlb
season: 2024
log_level: debug
model_file: model.json.zst
register_urls:
  - http://mirror/people-0.csv
`)
			t.Setenv("MLBHITS_SEASON", "2025")

			cfg, err := config.Load(path)

			convey.Convey("Then env vars should win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/mlb")
				convey.So(cfg.Season, convey.ShouldEqual, 2025)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.RegisterURLs, convey.ShouldResemble, []string{"http://mirror/people-0.csv"})
				convey.So(cfg.ModelPath(), convey.ShouldEqual, filepath.Join("/srv/mlb", "model.json.zst"))
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then it should report a load error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
			})
		})

		convey.Convey("When a value is out of range", func() {
			t.Setenv("MLBHITS_TEST_FRACTION", "1.5")

			_, err := config.Load("")

			convey.Convey("Then it should be rejected as invalid", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the log level is unknown", func() {
			t.Setenv("MLBHITS_LOG_LEVEL", "chatty")

			_, err := config.Load("")

			convey.Convey("Then it should be rejected as invalid", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mlbhits.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"MLBHITS_CONFIG", "MLBHITS_DATA_DIR", "MLBHITS_STATCAST_DAYS", "MLBHITS_MIN_WRC_PLUS",
		"MLBHITS_LOOKUP_TIMEOUT", "MLBHITS_SEASON", "MLBHITS_TEST_FRACTION", "MLBHITS_LOG_LEVEL",
	} {
		_ = os.Unsetenv(k)
	}
}
