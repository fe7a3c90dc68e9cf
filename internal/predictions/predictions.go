// Package predictions writes and reads the per-event prediction file.
package predictions

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
)

var (
	// ErrNoPredictions is returned by Write when there is nothing to write.
	// No file is created or replaced in that case.
	ErrNoPredictions = errors.New("predictions: no predictions to write")
	// ErrArtifactMissing means the prediction file does not exist.
	ErrArtifactMissing = errors.New("predictions: file not found")
	// ErrArtifactEmpty means the prediction file exists but holds no rows.
	ErrArtifactEmpty = errors.New("predictions: file is empty")
)

// Write writes one row per record, the record's joined columns followed by
// the predicted label, fully replacing whatever was at path. labels[i] is
// the prediction for records[i].
func Write(path string, columns []string, records []model.FeatureRecord, labels []model.Label) (int, error) {
	if len(records) != len(labels) {
		return 0, fmt.Errorf("predictions: %d records but %d labels", len(records), len(labels))
	}
	if len(records) == 0 {
		return 0, ErrNoPredictions
	}

	cols := slices.DeleteFunc(slices.Clone(columns), func(c string) bool { return c == model.ColPrediction })
	f := dataset.New(append(cols, model.ColPrediction)...)
	for i, r := range records {
		row := make([]string, 0, len(cols)+1)
		for _, c := range cols {
			row = append(row, r.Row[c])
		}
		row = append(row, strconv.Itoa(int(labels[i])))
		f.Append(row...)
	}
	if err := f.WriteFile(path); err != nil {
		return 0, fmt.Errorf("write predictions: %w", err)
	}
	return f.Len(), nil
}

// Read loads a prediction file. Absence and emptiness are checked before
// any parsing so callers can report them distinctly.
func Read(path string) (*Set, error) {
	st, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrArtifactEmpty, path)
	}

	f, err := dataset.ReadFile(path)
	if errors.Is(err, dataset.ErrNoHeader) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactEmpty, path)
	}
	if err != nil {
		return nil, err
	}
	if f.Empty() {
		return nil, fmt.Errorf("%w: %s has a header but no rows", ErrArtifactEmpty, path)
	}
	if !f.Has(model.ColPrediction) {
		return nil, fmt.Errorf("predictions: %s has no %s column", path, model.ColPrediction)
	}
	return &Set{Frame: f}, nil
}

// IsUnavailable reports whether err means there is no prediction file to
// show rather than a broken one.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrArtifactMissing) || errors.Is(err, ErrArtifactEmpty)
}
