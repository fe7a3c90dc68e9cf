package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-hits/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the run ledger",
	Long: `Run an arbitrary SQL query against the run ledger and print results as a table.

Schema overview:
  runs(id, command, started_at, finished_at, status, events, with_batter,
    resolved, joined, usable, predicted_hits, accuracy, message)
  predictions(run_id, row_num, game_date, batter, idfg, name, team, events,
    launch_speed, launch_angle, wrc_plus, avg, obp, predicted_hit)

predictions holds the latest prediction file only.

Example:
  mlbhits sql "SELECT team, SUM(predicted_hit) FROM predictions GROUP BY team ORDER BY 2 DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openLedger()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	report.Table(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
