package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pable/go-mlb-hits/internal/classifier"
	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/pipeline"
	"github.com/pable/go-mlb-hits/internal/predictions"
)

func sampleSet() *predictions.Set {
	f := dataset.New("Name", "Team", "launch_speed", "wRC+", "predicted_hit")
	f.Append("Aaron Judge", "NYY", "112.4", "190", "1")
	f.Append("Luis Arraez", "SDP", "", "120", "0")
	return &predictions.Set{Frame: f}
}

func TestPrintBoardIncludesLogo(t *testing.T) {
	var buf bytes.Buffer
	PrintBoard(&buf, sampleSet())
	out := buf.String()
	if !strings.Contains(out, "Aaron Judge") {
		t.Errorf("expected player name in board:\n%s", out)
	}
	if !strings.Contains(out, "teamlogos/mlb/500/nyy.png") {
		t.Errorf("expected NYY logo url in board:\n%s", out)
	}
	if !strings.Contains(out, "—") {
		t.Errorf("expected placeholder for the missing launch speed:\n%s", out)
	}
}

func TestPrintBoardEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintBoard(&buf, &predictions.Set{Frame: dataset.New("Name")})
	if !strings.Contains(buf.String(), "no rows match") {
		t.Errorf("expected empty notice, got:\n%s", buf.String())
	}
}

func TestPrintStageCountsAndSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintStageCounts(&buf, pipeline.Counts{Events: 120, WithBatter: 118, Resolved: 100, Joined: 95, Usable: 80})
	PrintPredictionSummary(&buf, sampleSet())
	out := buf.String()
	for _, want := range []string{"120", "complete features", "Total rows: 2", "predicted hit: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintEvaluation(t *testing.T) {
	ev, err := classifier.Evaluate([]model.Label{1, 0, 1, 0}, []model.Label{1, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	PrintEvaluation(&buf, ev)
	out := buf.String()
	for _, want := range []string{"accuracy 0.750", "weighted avg", "no hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintRuns(t *testing.T) {
	acc := 0.71
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	PrintRuns(&buf, []model.RunRecord{{
		ID: "0123456789abcdef", Command: "train", Status: model.RunOK,
		StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond), Accuracy: &acc,
	}})
	out := buf.String()
	if !strings.Contains(out, "01234567") || strings.Contains(out, "0123456789abcdef") {
		t.Errorf("expected shortened run id:\n%s", out)
	}
	if !strings.Contains(out, "0.710") || !strings.Contains(out, "1.5s") {
		t.Errorf("expected accuracy and duration:\n%s", out)
	}
}

func TestBar(t *testing.T) {
	if got := bar(5, 10, 10); got != "█████" {
		t.Errorf("bar(5,10,10) = %q", got)
	}
	if got := bar(1, 100, 10); got != "█" {
		t.Errorf("small non-zero counts should still draw: %q", got)
	}
}
