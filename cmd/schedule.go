package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/report"
	"github.com/pable/go-mlb-hits/internal/schedule"
)

var scheduleDate string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Scrape the day's MLB matchups from ESPN",
	Long: `Scrape the ESPN MLB schedule page for one date and save the matchups to
todays_games.csv (Date, Away Team, Home Team). A day without games is reported
and leaves the previous file in place.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "schedule date YYYY-MM-DD (default today)")
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	t := startRun("schedule")
	return t.finish(scrapeSchedule(cmd))
}

func scrapeSchedule(cmd *cobra.Command) error {
	date := time.Now()
	if scheduleDate != "" {
		d, err := time.ParseInLocation(time.DateOnly, scheduleDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", scheduleDate, err)
		}
		date = d
	}

	fmt.Fprintf(os.Stdout, "Fetching ESPN schedule for %s...\n", date.Format(time.DateOnly))
	games, err := schedule.NewClient(cfg.ScheduleURL, cfg.HTTPTimeout).Games(cmd.Context(), date)
	if err != nil {
		return err
	}
	path := cfg.Path(config.GamesFile)
	if err := schedule.Frame(games).WriteFile(path); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	report.PrintSchedule(os.Stdout, games)
	fmt.Fprintf(os.Stdout, "\n%d games -> %s\n", len(games), path)
	return nil
}
