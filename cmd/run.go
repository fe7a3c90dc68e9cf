package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Daily batch: scrape, then predict",
	Long: `Run the daily batch: scrape fresh Statcast events and FanGraphs stats, then
predict with the saved model. Each step is recorded as its own run. An empty
scrape window stops the batch before predict.`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func runDaily(cmd *cobra.Command, _ []string) error {
	st := startRun("scrape")
	scrapeErr := scrape(cmd, st)
	if err := st.finish(scrapeErr); err != nil || scrapeErr != nil {
		return err
	}

	pt := startRun("predict")
	return pt.finish(predict(cmd, pt))
}
