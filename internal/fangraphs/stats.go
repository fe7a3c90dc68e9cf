package fangraphs

import (
	"errors"
	"fmt"

	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
)

// ErrNoIDColumn is returned when a season frame has no IDfg column.
var ErrNoIDColumn = errors.New("fangraphs: IDfg column missing")

// ParseStats converts an IDfg-keyed frame into a StatsBatch. Rows whose ID
// is null are skipped.
func ParseStats(f *dataset.Frame) (model.StatsBatch, error) {
	if !f.Has(model.ColTargetID) {
		return model.StatsBatch{}, fmt.Errorf("parse stats: %w", ErrNoIDColumn)
	}
	batch := model.StatsBatch{
		Columns: append([]string(nil), f.Columns...),
		Rows:    make([]model.SeasonStats, 0, f.Len()),
	}
	for i := range f.Rows {
		id := model.ParseTargetID(f.Get(i, model.ColTargetID))
		if id.IsZero() {
			continue
		}
		batch.Rows = append(batch.Rows, model.SeasonStats{Player: id, Fields: f.RowMap(i)})
	}
	return batch, nil
}
