// Package classifier fits and applies the binary hit classifier.
package classifier

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pable/go-mlb-hits/internal/model"
)

var (
	// ErrEmptyInput is returned by Fit and Predict when given no rows.
	ErrEmptyInput = errors.New("classifier: empty input")
	// ErrSchemaMismatch means a matrix was built for a different feature list
	// than the model was fitted on.
	ErrSchemaMismatch = errors.New("classifier: feature schema mismatch")
)

// Matrix is a row-major feature matrix; every row has the same width.
type Matrix [][]float64

// Width returns the column count, validating that rows agree.
func (m Matrix) Width() (int, error) {
	if len(m) == 0 {
		return 0, ErrEmptyInput
	}
	w := len(m[0])
	for i, row := range m {
		if len(row) != w {
			return 0, fmt.Errorf("classifier: row %d has %d values, want %d", i, len(row), w)
		}
	}
	return w, nil
}

// Trainer fits a Model to labelled rows.
type Trainer interface {
	Fit(X Matrix, y []model.Label) (Model, error)
}

// Model predicts a label per row.
type Model interface {
	Predict(X Matrix) ([]model.Label, error)
}

// Fitted is the persisted artifact: a model plus the feature columns it was
// trained on, in order.
type Fitted struct {
	Columns   []string
	Kind      string
	TrainedAt time.Time
	Rows      int
	Model     Model
}

// NewFitted stamps m with the column list and training size.
func NewFitted(columns []string, m Model, rows int) *Fitted {
	return &Fitted{
		Columns:   slices.Clone(columns),
		Kind:      kindOf(m),
		TrainedAt: time.Now().UTC(),
		Rows:      rows,
		Model:     m,
	}
}

// Predict applies the model to X after checking that columns is exactly the
// list the model was fitted on.
func (f *Fitted) Predict(columns []string, X Matrix) ([]model.Label, error) {
	if !slices.Equal(columns, f.Columns) {
		return nil, fmt.Errorf("%w: model has %v, input has %v", ErrSchemaMismatch, f.Columns, columns)
	}
	w, err := X.Width()
	if err != nil {
		return nil, err
	}
	if w != len(f.Columns) {
		return nil, fmt.Errorf("%w: %d values per row, want %d", ErrSchemaMismatch, w, len(f.Columns))
	}
	return f.Model.Predict(X)
}

func checkTraining(X Matrix, y []model.Label) (int, error) {
	w, err := X.Width()
	if err != nil {
		return 0, err
	}
	if len(y) != len(X) {
		return 0, fmt.Errorf("classifier: %d rows but %d labels", len(X), len(y))
	}
	if w == 0 {
		return 0, fmt.Errorf("classifier: rows have no features")
	}
	return w, nil
}
