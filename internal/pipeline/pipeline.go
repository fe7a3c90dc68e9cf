// Package pipeline runs the train and predict stages over the scraped CSVs.
// Both stages build their feature matrix through Prepare.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pable/go-mlb-hits/internal/classifier"
	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/fangraphs"
	"github.com/pable/go-mlb-hits/internal/features"
	"github.com/pable/go-mlb-hits/internal/idmap"
	"github.com/pable/go-mlb-hits/internal/predictions"
	"github.com/pable/go-mlb-hits/internal/statcast"
)

// ErrNoEvents means the pitch-event file held no rows.
var ErrNoEvents = errors.New("pipeline: no pitch events")

// Paths locates the files a run reads and writes.
type Paths struct {
	Events      string
	Batting     string
	Model       string
	Predictions string
}

// Deps are the collaborators of a run.
type Deps struct {
	Paths    Paths
	Resolver idmap.Resolver
	Trainer  classifier.Trainer
	Log      *zap.Logger
}

func (d Deps) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Counts are the row counts after each stage.
type Counts struct {
	Events     int
	WithBatter int
	Resolved   int
	Joined     int
	Usable     int
}

func countsOf(res *features.Result) Counts {
	if res == nil {
		return Counts{}
	}
	return Counts{
		Events:     res.Events,
		WithBatter: res.WithBatter,
		Resolved:   res.Resolved,
		Joined:     res.Joined,
		Usable:     res.Usable,
	}
}

// IsEmpty reports whether err is a zero-row condition: the run stops but
// nothing is broken.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrNoEvents) || features.IsEmpty(err)
}

// Prepare loads events and season stats, reconciles batter IDs and
// assembles the feature records. On a zero-row condition the partial
// result is returned together with the error.
func Prepare(ctx context.Context, d Deps) (*features.Result, error) {
	log := d.log()

	raw, err := dataset.ReadFile(d.Paths.Events)
	if errors.Is(err, dataset.ErrNoHeader) {
		return &features.Result{}, ErrNoEvents
	}
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	events, err := statcast.ParseEvents(raw)
	if err != nil {
		return nil, err
	}
	if len(events.Events) == 0 {
		return &features.Result{}, ErrNoEvents
	}

	statsFrame, err := dataset.ReadFile(d.Paths.Batting)
	if err != nil {
		return nil, fmt.Errorf("load batting stats: %w", err)
	}
	stats, err := fangraphs.ParseStats(statsFrame)
	if err != nil {
		return nil, err
	}

	m, err := idmap.Reconcile(ctx, d.Resolver, events)
	if err != nil {
		return nil, fmt.Errorf("reconcile ids: %w", err)
	}
	log.Debug("ids reconciled", zap.Int("batters", len(events.BatterIDs())), zap.Int("resolved", m.Len()))

	res, err := features.Assemble(events, stats, m)
	if res != nil {
		log.Info("features assembled",
			zap.Int("events", res.Events),
			zap.Int("resolved", res.Resolved),
			zap.Int("joined", res.Joined),
			zap.Int("usable", res.Usable))
	}
	return res, err
}

// TrainOptions control the held-out split.
type TrainOptions struct {
	TestFraction float64
	Seed         uint64
}

// TrainSummary describes a finished training run.
type TrainSummary struct {
	Counts
	TrainRows  int
	TestRows   int
	Positives  int
	Evaluation *classifier.Evaluation // nil when the test split is empty
	Model      *classifier.Fitted
}

// Train fits the classifier on the training split, evaluates it on the
// held-out rows and saves it, replacing any previous model.
func Train(ctx context.Context, d Deps, opts TrainOptions) (*TrainSummary, error) {
	res, err := Prepare(ctx, d)
	sum := &TrainSummary{Counts: countsOf(res)}
	if err != nil {
		return sum, err
	}

	X := classifier.Matrix(features.Matrix(res.Records))
	y := features.Labels(res.Records)
	for _, l := range y {
		sum.Positives += int(l)
	}

	trainIdx, testIdx, err := classifier.Split(len(X), opts.TestFraction, opts.Seed)
	if err != nil {
		return sum, err
	}
	Xtr, ytr := classifier.Rows(X, y, trainIdx)
	sum.TrainRows, sum.TestRows = len(trainIdx), len(testIdx)

	m, err := d.Trainer.Fit(Xtr, ytr)
	if err != nil {
		return sum, fmt.Errorf("fit: %w", err)
	}
	fitted := classifier.NewFitted(res.Features, m, len(Xtr))
	sum.Model = fitted

	if len(testIdx) > 0 {
		Xte, yte := classifier.Rows(X, y, testIdx)
		pred, err := fitted.Predict(res.Features, Xte)
		if err != nil {
			return sum, fmt.Errorf("evaluate: %w", err)
		}
		ev, err := classifier.Evaluate(yte, pred)
		if err != nil {
			return sum, fmt.Errorf("evaluate: %w", err)
		}
		sum.Evaluation = &ev
	}

	if err := classifier.Save(d.Paths.Model, fitted); err != nil {
		return sum, fmt.Errorf("save model: %w", err)
	}
	d.log().Info("model saved", zap.String("path", d.Paths.Model), zap.Int("rows", len(Xtr)))
	return sum, nil
}

// PredictSummary describes a finished prediction run.
type PredictSummary struct {
	Counts
	Written int
	Hits    int
}

// Predict applies the saved model to today's events and writes the
// prediction file.
func Predict(ctx context.Context, d Deps) (*PredictSummary, error) {
	res, err := Prepare(ctx, d)
	sum := &PredictSummary{Counts: countsOf(res)}
	if err != nil {
		return sum, err
	}

	fitted, err := classifier.Load(d.Paths.Model)
	if err != nil {
		return sum, err
	}
	labels, err := fitted.Predict(res.Features, classifier.Matrix(features.Matrix(res.Records)))
	if err != nil {
		return sum, fmt.Errorf("predict: %w", err)
	}
	for _, l := range labels {
		sum.Hits += int(l)
	}

	n, err := predictions.Write(d.Paths.Predictions, res.Columns, res.Records, labels)
	if err != nil {
		return sum, err
	}
	sum.Written = n
	d.log().Info("predictions written", zap.String("path", d.Paths.Predictions), zap.Int("rows", n), zap.Int("hits", sum.Hits))
	return sum, nil
}
