package statcast

import (
	"errors"
	"fmt"

	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
)

// ErrNoBatterColumn is returned when a Statcast frame lacks the batter ID column.
var ErrNoBatterColumn = errors.New("statcast: batter column missing")

// OptionalColumns are kept by Clean when present. Savant adds and retires
// columns between seasons, so absent ones are skipped, not reported as errors.
var OptionalColumns = []string{
	"game_date", "game_pk", "player_name", model.ColBatter, model.ColPitcher,
	model.ColOutcome, "description", "stand", "p_throws",
	"home_team", "away_team", "inning", "inning_topbot", "pitch_type",
	"launch_speed", "launch_angle", "release_speed", "effective_speed",
	"hit_distance_sc", "bb_type", "bat_speed",
	"estimated_ba_using_speedangle", "estimated_woba_using_speedangle",
}

// Clean projects raw onto OptionalColumns and drops rows without a batter.
// It returns the names of optional columns the source did not have.
func Clean(raw *dataset.Frame) (*dataset.Frame, []string, error) {
	if !raw.Has(model.ColBatter) {
		return nil, nil, ErrNoBatterColumn
	}
	sel, skipped := raw.Select(OptionalColumns)
	out := sel.Filter(func(i int) bool {
		return !model.ParseSourceID(sel.Get(i, model.ColBatter)).IsZero()
	})
	return out, skipped, nil
}

// ParseEvents converts a Statcast frame into a PitchBatch. Batter and pitcher
// identifiers are normalized here, once, at the data-model boundary.
func ParseEvents(f *dataset.Frame) (model.PitchBatch, error) {
	if !f.Has(model.ColBatter) {
		return model.PitchBatch{}, fmt.Errorf("parse events: %w", ErrNoBatterColumn)
	}
	batch := model.PitchBatch{
		Columns: append([]string(nil), f.Columns...),
		Events:  make([]model.PitchEvent, 0, f.Len()),
	}
	for i := range f.Rows {
		outcome := f.Get(i, model.ColOutcome)
		if model.IsNull(outcome) {
			outcome = ""
		}
		batch.Events = append(batch.Events, model.PitchEvent{
			Batter:  model.ParseSourceID(f.Get(i, model.ColBatter)),
			Pitcher: model.ParseSourceID(f.Get(i, model.ColPitcher)),
			Outcome: outcome,
			Fields:  f.RowMap(i),
		})
	}
	return batch, nil
}
