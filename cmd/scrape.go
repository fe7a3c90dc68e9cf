package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/fangraphs"
	"github.com/pable/go-mlb-hits/internal/pipeline"
	"github.com/pable/go-mlb-hits/internal/statcast"
)

var (
	scrapeDays       int
	scrapeSeason     int
	scrapeNoPitching bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Download Statcast events and FanGraphs season stats",
	Long: `Download the last N days of Statcast pitch events into statcast_data.csv and the
season's FanGraphs batting (and pitching) leaderboards into batting_stats.csv and
pitching_stats.csv. Existing files are replaced.

An empty Statcast window (off-days, All-Star break) is reported and skipped;
season stats are still refreshed.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeDays, "days", 0, "days of Statcast events to fetch (default from config, 3)")
	scrapeCmd.Flags().IntVar(&scrapeSeason, "season", 0, "FanGraphs season (default from config, current year)")
	scrapeCmd.Flags().BoolVar(&scrapeNoPitching, "no-pitching", false, "skip the pitching leaderboard")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	t := startRun("scrape")
	return t.finish(scrape(cmd, t))
}

func scrape(cmd *cobra.Command, t *runTracker) error {
	ctx := cmd.Context()
	days := cfg.StatcastDays
	if scrapeDays > 0 {
		days = scrapeDays
	}
	season := cfg.Season
	if scrapeSeason > 0 {
		season = scrapeSeason
	}

	// Statcast.
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	fmt.Fprintf(os.Stdout, "Fetching Statcast events %s .. %s...\n", start.Format(time.DateOnly), end.Format(time.DateOnly))
	sc := statcast.NewClient(cfg.StatcastURL, cfg.HTTPTimeout)
	var emptyErr error
	raw, err := sc.Fetch(ctx, start, end)
	switch {
	case errors.Is(err, statcast.ErrNoData):
		cWarn.Fprintf(os.Stdout, "  no Statcast events in window; keeping previous %s\n", config.EventsFile)
		emptyErr = err
	case err != nil:
		return fmt.Errorf("fetch statcast: %w", err)
	default:
		cleaned, skipped, err := statcast.Clean(raw)
		if err != nil {
			return fmt.Errorf("clean statcast: %w", err)
		}
		if len(skipped) > 0 {
			logger.Info("optional statcast columns absent", zap.Strings("columns", skipped))
		}
		if cleaned.Empty() {
			cWarn.Fprintln(os.Stdout, "  no events with a batter id; nothing saved")
			emptyErr = statcast.ErrNoData
		} else {
			path := cfg.Path(config.EventsFile)
			if err := cleaned.WriteFile(path); err != nil {
				return fmt.Errorf("save statcast: %w", err)
			}
			fmt.Fprintf(os.Stdout, "  %d events (%d raw) -> %s\n", cleaned.Len(), raw.Len(), path)
			t.counts(pipeline.Counts{Events: raw.Len(), WithBatter: cleaned.Len()})
		}
	}

	// FanGraphs.
	fg := fangraphs.NewClient(cfg.FangraphsURL, cfg.HTTPTimeout)
	fmt.Fprintf(os.Stdout, "Fetching FanGraphs %d batting stats...\n", season)
	bat, err := fg.Batting(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch batting stats: %w", err)
	}
	path := cfg.Path(config.BattingFile)
	if err := bat.WriteFile(path); err != nil {
		return fmt.Errorf("save batting stats: %w", err)
	}
	fmt.Fprintf(os.Stdout, "  %d batters -> %s\n", bat.Len(), path)

	if !scrapeNoPitching {
		fmt.Fprintf(os.Stdout, "Fetching FanGraphs %d pitching stats...\n", season)
		pit, err := fg.Pitching(ctx, season)
		if err != nil {
			return fmt.Errorf("fetch pitching stats: %w", err)
		}
		path := cfg.Path(config.PitchingFile)
		if err := pit.WriteFile(path); err != nil {
			return fmt.Errorf("save pitching stats: %w", err)
		}
		fmt.Fprintf(os.Stdout, "  %d pitchers -> %s\n", pit.Len(), path)
	}

	if emptyErr != nil {
		return emptyErr
	}
	cOK.Fprintln(os.Stdout, "Scrape complete.")
	return nil
}
