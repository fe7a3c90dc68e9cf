package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pable/go-mlb-hits/internal/classifier"
	"github.com/pable/go-mlb-hits/internal/config"
	"github.com/pable/go-mlb-hits/internal/idmap"
	"github.com/pable/go-mlb-hits/internal/metrics"
	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/pipeline"
	"github.com/pable/go-mlb-hits/internal/schedule"
	"github.com/pable/go-mlb-hits/internal/statcast"
	"github.com/pable/go-mlb-hits/internal/storage"
)

// runTracker collects what a command did for the run ledger and the
// metrics textfile.
type runTracker struct {
	rec     model.RunRecord
	metrics *metrics.Run
}

func startRun(command string) *runTracker {
	return &runTracker{
		rec:     model.RunRecord{ID: uuid.NewString(), Command: command, StartedAt: time.Now()},
		metrics: metrics.NewRun(command),
	}
}

func (t *runTracker) counts(c pipeline.Counts) {
	t.rec.Events, t.rec.WithBatter = c.Events, c.WithBatter
	t.rec.Resolved, t.rec.Joined, t.rec.Usable = c.Resolved, c.Joined, c.Usable
	t.metrics.Stage("events", c.Events)
	t.metrics.Stage("with_batter", c.WithBatter)
	t.metrics.Stage("resolved", c.Resolved)
	t.metrics.Stage("joined", c.Joined)
	t.metrics.Stage("usable", c.Usable)
}

func (t *runTracker) hits(n int) {
	t.rec.PredictedHits = n
	t.metrics.Hits(n)
}

func (t *runTracker) accuracy(v float64) {
	t.rec.Accuracy = &v
	t.metrics.Accuracy(v)
}

// finish records the run and converts zero-row conditions into a message
// and a nil error, so the command exits 0. Ledger and metrics failures are
// logged, never returned.
func (t *runTracker) finish(err error) error {
	t.rec.FinishedAt = time.Now()
	switch {
	case err == nil:
		t.rec.Status = model.RunOK
	case isEmptyRun(err):
		t.rec.Status = model.RunEmpty
		t.rec.Message = err.Error()
	default:
		t.rec.Status = model.RunFailed
		t.rec.Message = err.Error()
	}

	if db, oerr := storage.Open(cfg.DBPath); oerr != nil {
		logger.Warn("run ledger unavailable", zap.Error(oerr))
	} else {
		if _, ierr := db.InsertRun(t.rec); ierr != nil {
			logger.Warn("record run", zap.Error(ierr))
		}
		db.Close()
	}

	t.metrics.Finish(string(t.rec.Status))
	if cfg.MetricsFile != "" {
		if merr := t.metrics.WriteTextfile(cfg.MetricsFile); merr != nil {
			logger.Warn("metrics textfile", zap.Error(merr))
		}
	}

	if t.rec.Status == model.RunEmpty {
		cWarn.Fprintf(os.Stdout, "Nothing to do: %v\n", err)
		return nil
	}
	return err
}

// isEmptyRun reports the upstream-empty and join-empty conditions.
func isEmptyRun(err error) bool {
	return pipeline.IsEmpty(err) ||
		errors.Is(err, statcast.ErrNoData) ||
		errors.Is(err, schedule.ErrNoGames)
}

// pipelineDeps wires the configured files and collaborators.
func pipelineDeps() pipeline.Deps {
	return pipeline.Deps{
		Paths: pipeline.Paths{
			Events:      cfg.Path(config.EventsFile),
			Batting:     cfg.Path(config.BattingFile),
			Model:       cfg.ModelPath(),
			Predictions: cfg.Path(config.PredictionsFile),
		},
		Resolver: newResolver(),
		Trainer:  classifier.LogisticTrainer{},
		Log:      logger,
	}
}

func newResolver() idmap.Resolver {
	if cfg.RegisterFile != "" {
		logger.Debug("resolving ids from local register", zap.String("path", cfg.RegisterFile))
		return idmap.RegisterFileResolver{Path: cfg.RegisterFile}
	}
	return idmap.NewChadwickResolver(cfg.RegisterURLs, cfg.LookupTimeout, logger)
}

func openLedger() (*storage.DB, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
