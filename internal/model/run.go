package model

import "time"

// RunStatus is the outcome of one command invocation.
type RunStatus string

const (
	RunOK     RunStatus = "ok"
	RunEmpty  RunStatus = "empty" // a stage produced zero rows; nothing was written
	RunFailed RunStatus = "failed"
)

// RunRecord is one row of the run ledger.
type RunRecord struct {
	ID         string
	Command    string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     RunStatus

	Events        int
	WithBatter    int
	Resolved      int
	Joined        int
	Usable        int
	PredictedHits int
	Accuracy      *float64 // train runs with a held-out split only
	Message       string
}

// Duration returns the wall time of the run.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
