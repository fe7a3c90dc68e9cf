package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/predictions"
	"github.com/pable/go-mlb-hits/internal/report"
)

var (
	boardTeams    []string
	boardPlayers  []string
	boardMinSpeed float64
	boardMinWRC   float64
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show today's predicted hits with filters",
	Long: `Show the predicted hits from predictions_today.csv, narrowed by team, player,
minimum launch speed and minimum wRC+, followed by hits per team and the
top hitters by wRC+.

Examples:
  mlbhits board
  mlbhits board --team NYY --team LAD --min-speed 95
  mlbhits board --player "Aaron Judge" --min-wrc 0`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringArrayVar(&boardTeams, "team", nil, "team abbreviation to include (repeatable)")
	boardCmd.Flags().StringArrayVar(&boardPlayers, "player", nil, "player name to include (repeatable)")
	boardCmd.Flags().Float64Var(&boardMinSpeed, "min-speed", 0, "minimum launch speed in mph (default from config, 100)")
	boardCmd.Flags().Float64Var(&boardMinWRC, "min-wrc", 0, "minimum wRC+ (default from config, 100)")
}

func runBoard(cmd *cobra.Command, _ []string) error {
	path := cfg.Path(config.PredictionsFile)
	set, err := predictions.Read(path)
	if predictions.IsUnavailable(err) {
		cWarn.Fprintf(os.Stdout, "No predictions to show (%v). Run 'mlbhits predict' first.\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load predictions: %w", err)
	}

	f := predictions.Filter{
		Teams:          boardTeams,
		Players:        boardPlayers,
		MinLaunchSpeed: cfg.MinLaunchSpeed,
		MinWRCPlus:     cfg.MinWRCPlus,
	}
	if cmd.Flags().Changed("min-speed") {
		f.MinLaunchSpeed = boardMinSpeed
	}
	if cmd.Flags().Changed("min-wrc") {
		f.MinWRCPlus = boardMinWRC
	}

	hits := set.Hits()
	cMuted.Fprintf(os.Stdout, "%s: %d rows, %d predicted hits, %d teams\n", path, set.Len(), hits.Len(), len(set.Teams()))
	filtered := hits.Filter(f)
	report.PrintBoard(os.Stdout, filtered)
	report.PrintTeamCounts(os.Stdout, "Predicted hits per team", filtered.CountByTeam(), 0)
	report.PrintRows(os.Stdout, "Top hitters by wRC+", filtered.TopBy(model.ColWRCPlus, 10),
		[]string{model.ColName, model.ColTeam, model.ColWRCPlus, "AVG", "OBP"})
	return nil
}
