package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-hits/internal/pipeline"
	"github.com/pable/go-mlb-hits/internal/report"
)

var (
	trainTestFraction float64
	trainSeed         uint64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the hit classifier on the scraped events",
	Long: `Join the scraped Statcast events to FanGraphs batting stats, fit the hit
classifier on a seeded random split and report precision/recall on the
held-out rows. The fitted model replaces the previous one.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().Float64Var(&trainTestFraction, "test-fraction", -1, "held-out share in [0,1) (default from config, 0.2)")
	trainCmd.Flags().Uint64Var(&trainSeed, "seed", 0, "split seed (default from config, 42)")
}

func runTrain(cmd *cobra.Command, _ []string) error {
	t := startRun("train")
	return t.finish(train(cmd, t))
}

func train(cmd *cobra.Command, t *runTracker) error {
	opts := pipeline.TrainOptions{TestFraction: cfg.TestFraction, Seed: cfg.Seed}
	if cmd.Flags().Changed("test-fraction") {
		opts.TestFraction = trainTestFraction
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = trainSeed
	}

	fmt.Fprintln(os.Stdout, "Training hit classifier...")
	sum, err := pipeline.Train(cmd.Context(), pipelineDeps(), opts)
	if sum != nil {
		t.counts(sum.Counts)
		report.PrintStageCounts(os.Stdout, sum.Counts)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nTrained on %d rows (%d hits), held out %d.\n", sum.TrainRows, sum.Positives, sum.TestRows)
	if sum.Evaluation != nil {
		t.accuracy(sum.Evaluation.Accuracy)
		report.PrintEvaluation(os.Stdout, *sum.Evaluation)
	} else {
		cWarn.Fprintln(os.Stdout, "No held-out rows; evaluation skipped.")
	}
	cOK.Fprintf(os.Stdout, "\nModel saved -> %s\n", cfg.ModelPath())
	return nil
}
