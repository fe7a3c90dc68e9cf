package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/pipeline"
	"github.com/pable/go-mlb-hits/internal/predictions"
	"github.com/pable/go-mlb-hits/internal/report"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict hits for the scraped events with the saved model",
	Long: `Rebuild the feature table from the scraped files, apply the saved model and
write predictions_today.csv (the joined table plus a predicted_hit column).
The file is also snapshotted into the run ledger for 'mlbhits sql'.

Run 'mlbhits train' first; predict never trains.`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, _ []string) error {
	t := startRun("predict")
	return t.finish(predict(cmd, t))
}

func predict(cmd *cobra.Command, t *runTracker) error {
	fmt.Fprintln(os.Stdout, "Predicting hits...")
	sum, err := pipeline.Predict(cmd.Context(), pipelineDeps())
	if sum != nil {
		t.counts(sum.Counts)
		report.PrintStageCounts(os.Stdout, sum.Counts)
	}
	if err != nil {
		return err
	}
	t.hits(sum.Hits)

	path := cfg.Path(config.PredictionsFile)
	cOK.Fprintf(os.Stdout, "\n%d predictions (%d hits) -> %s\n", sum.Written, sum.Hits, path)
	snapshotPredictions(path, t.rec.ID)
	return nil
}

// snapshotPredictions copies the prediction file into the ledger database.
// The CSV stays the source of truth, so failures are only logged.
func snapshotPredictions(path, runID string) {
	set, err := predictions.Read(path)
	if err != nil {
		logger.Warn("read predictions for snapshot", zap.Error(err))
		return
	}
	db, err := openLedger()
	if err != nil {
		logger.Warn("prediction snapshot", zap.Error(err))
		return
	}
	defer db.Close()
	n, err := db.ReplacePredictions(runID, set)
	if err != nil {
		logger.Warn("prediction snapshot", zap.Error(err))
		return
	}
	logger.Debug("predictions snapshotted", zap.String("run", runID), zap.Int("rows", n))
}
