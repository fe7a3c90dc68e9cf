package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/predictions"
	"github.com/pable/go-mlb-hits/internal/report"
)

const analyzeSystemPrompt = `You are an MLB hitting analyst. You are given a summary of a day's batted-ball
events, each joined to the batter's FanGraphs season line and labelled by a
classifier as a predicted hit (1) or not (0), plus a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Predictions are model output, not game results. Say so when it matters.

Glossary:
- launch_speed: exit velocity in mph. 95+ is hard contact.
- launch_angle: vertical angle off the bat in degrees. 10-30 is line drive / fly ball.
- wRC+: park- and league-adjusted run creation. 100 is league average.
- AVG / OBP / SLG / wOBA: season batting average, on-base, slugging, weighted on-base.
- BB% / K%: season walk and strikeout rates.`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize today's predictions",
	Long: `Print a summary of predictions_today.csv: row totals, predicted label counts,
the hardest-hit predicted hits, the top hitters by wRC+ and predicted hits per
team. 'mlbhits analyze ask' sends the same summary to Claude with a question.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var analyzeAskCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask an AI analyst about today's predictions (requires ANTHROPIC_API_KEY)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyzeAsk,
}

func init() {
	analyzeAskCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (default from config)")
	analyzeAskCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.AddCommand(analyzeAskCmd)
}

// loadPredictions reads today's file, printing a notice and returning a nil
// set when there is nothing to show.
func loadPredictions() (*predictions.Set, error) {
	set, err := predictions.Read(cfg.Path(config.PredictionsFile))
	if predictions.IsUnavailable(err) {
		cWarn.Fprintf(os.Stdout, "No predictions to analyze (%v). Run 'mlbhits predict' first.\n", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}
	return set, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	set, err := loadPredictions()
	if err != nil || set == nil {
		return err
	}
	hits := set.Hits()

	report.PrintPredictionSummary(os.Stdout, set)
	report.PrintRows(os.Stdout, "Hardest-hit predicted hits", hits.TopBy(model.ColLaunchSpeed, 10),
		[]string{model.ColName, model.ColTeam, model.ColLaunchSpeed, model.ColWRCPlus})
	report.PrintRows(os.Stdout, "Top predicted hitters by wRC+", hits.TopBy(model.ColWRCPlus, 10),
		[]string{model.ColName, model.ColTeam, model.ColWRCPlus, "AVG"})
	report.PrintTeamCounts(os.Stdout, "Predicted hits per team", hits.CountByTeam(), 10)
	return nil
}

func runAnalyzeAsk(cmd *cobra.Command, args []string) error {
	set, err := loadPredictions()
	if err != nil || set == nil {
		return err
	}
	contextJSON, err := buildPredictionContext(set)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	modelID := analyzeModel
	if modelID == "" {
		modelID = cfg.AnthropicModel
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, modelID, contextJSON, strings.Join(args, " "))
}

// buildPredictionContext serialises the day's summary into compact JSON.
func buildPredictionContext(set *predictions.Set) (string, error) {
	type hitterEntry struct {
		Name        string   `json:"name"`
		Team        string   `json:"team"`
		Outcome     string   `json:"outcome,omitempty"`
		LaunchSpeed *float64 `json:"launch_speed"`
		LaunchAngle *float64 `json:"launch_angle"`
		WRCPlus     *float64 `json:"wrc_plus"`
		AVG         *float64 `json:"avg"`
	}
	entries := func(s *predictions.Set) []hitterEntry {
		out := make([]hitterEntry, 0, s.Len())
		for i := 0; i < s.Len(); i++ {
			out = append(out, hitterEntry{
				Name:        s.Get(i, model.ColName),
				Team:        s.Get(i, model.ColTeam),
				Outcome:     s.Get(i, model.ColOutcome),
				LaunchSpeed: num(s, i, model.ColLaunchSpeed),
				LaunchAngle: num(s, i, "launch_angle"),
				WRCPlus:     num(s, i, model.ColWRCPlus),
				AVG:         num(s, i, "AVG"),
			})
		}
		return out
	}

	hits := set.Hits()
	counts := set.LabelCounts()
	perTeam := make(map[string]int)
	for _, tc := range hits.CountByTeam() {
		perTeam[tc.Team] = tc.Count
	}
	doc := map[string]interface{}{
		"subject":            "daily hit predictions",
		"rows":               set.Len(),
		"predicted_hits":     counts[model.Hit],
		"predicted_no_hits":  counts[model.NoHit],
		"hits_per_team":      perTeam,
		"hardest_hit":        entries(hits.TopBy(model.ColLaunchSpeed, 15)),
		"top_wrc_plus":       entries(hits.TopBy(model.ColWRCPlus, 15)),
		"predicted_hit_rate": round2(float64(counts[model.Hit]) / float64(max(set.Len(), 1))),
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

func num(s *predictions.Set, i int, col string) *float64 {
	v, ok := s.Frame.Float(i, col)
	if !ok {
		return nil
	}
	v = round2(v)
	return &v
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*100+0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	cHeader.Fprintln(os.Stdout, "\n─── Analysis ────────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
