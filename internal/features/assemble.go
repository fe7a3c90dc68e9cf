// Package features joins pitch events with season aggregates and builds the
// classifier's feature matrix.
package features

import (
	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/idmap"
	"github.com/pable/go-mlb-hits/internal/model"
)

// collisionSuffix is appended to a season column whose name the event schema
// already uses.
const collisionSuffix = "_season"

// Result is the assembled feature set of one run.
type Result struct {
	// Columns is the joined row's column order: event columns, IDfg, season columns.
	Columns []string
	// Features is the ordered feature list every record's Values follows.
	Features []string
	Records  []model.FeatureRecord

	Events     int // input events
	WithBatter int // events with a batter ID
	Resolved   int // events whose batter has a FanGraphs ID
	Joined     int // events matched to a season row
	Usable     int // joined rows with every feature present
}

// Assemble inner-joins events to stats through m, selects model.FeatureColumns
// and drops rows with any missing feature value. Events without a mapping or
// without a season row are dropped. It never imputes.
func Assemble(events model.PitchBatch, stats model.StatsBatch, m *idmap.Mapping) (*Result, error) {
	res := &Result{
		Features:   model.FeatureNames(),
		Events:     len(events.Events),
		WithBatter: events.WithBatter(),
	}

	var rename map[string]string
	res.Columns, rename = joinedColumns(events.Columns, stats.Columns)

	byPlayer := make(map[model.TargetID]model.SeasonStats, len(stats.Rows))
	for _, s := range stats.Rows {
		if _, dup := byPlayer[s.Player]; !dup {
			byPlayer[s.Player] = s
		}
	}

	type joined struct {
		ev     model.PitchEvent
		player model.TargetID
		row    map[string]string
	}
	var rows []joined
	for _, ev := range events.Events {
		if ev.Batter.IsZero() {
			continue
		}
		player, ok := m.Target(ev.Batter)
		if !ok {
			continue
		}
		res.Resolved++
		season, ok := byPlayer[player]
		if !ok {
			continue
		}
		rows = append(rows, joined{ev: ev, player: player, row: mergeRow(ev, player, season, rename)})
	}
	res.Joined = len(rows)
	if res.Joined == 0 {
		return res, ErrNoJoinedRows
	}

	if missing := missingFeatures(res.Columns, res.Features); len(missing) > 0 {
		return res, &MissingColumnError{Columns: missing}
	}

	for _, j := range rows {
		values, ok := featureValues(j.row, res.Features)
		if !ok {
			continue
		}
		res.Records = append(res.Records, model.FeatureRecord{
			Batter: j.ev.Batter,
			Player: j.player,
			Label:  model.LabelOf(j.ev.Outcome),
			Values: values,
			Row:    j.row,
		})
	}
	res.Usable = len(res.Records)
	if res.Usable == 0 {
		return res, ErrNoUsableRows
	}
	return res, nil
}

// Matrix returns the feature values of records, row-aligned.
func Matrix(records []model.FeatureRecord) [][]float64 {
	out := make([][]float64, len(records))
	for i, r := range records {
		out[i] = r.Values
	}
	return out
}

// Labels returns the derived labels of records, row-aligned.
func Labels(records []model.FeatureRecord) []model.Label {
	out := make([]model.Label, len(records))
	for i, r := range records {
		out[i] = r.Label
	}
	return out
}

// joinedColumns builds the joined header and the season-column renames
// needed to keep event columns authoritative on name collisions.
func joinedColumns(eventCols, statCols []string) ([]string, map[string]string) {
	seen := make(map[string]struct{}, len(eventCols)+len(statCols))
	cols := make([]string, 0, len(eventCols)+len(statCols)+1)
	for _, c := range eventCols {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	if _, ok := seen[model.ColTargetID]; !ok {
		seen[model.ColTargetID] = struct{}{}
		cols = append(cols, model.ColTargetID)
	}
	rename := make(map[string]string)
	for _, c := range statCols {
		if c == model.ColTargetID {
			continue
		}
		name := c
		if _, clash := seen[c]; clash {
			name = c + collisionSuffix
			rename[c] = name
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cols = append(cols, name)
	}
	return cols, rename
}

func mergeRow(ev model.PitchEvent, player model.TargetID, season model.SeasonStats, rename map[string]string) map[string]string {
	row := make(map[string]string, len(ev.Fields)+len(season.Fields)+1)
	for k, v := range season.Fields {
		if k == model.ColTargetID {
			continue
		}
		if to, ok := rename[k]; ok {
			k = to
		}
		row[k] = v
	}
	for k, v := range ev.Fields {
		row[k] = v
	}
	row[model.ColTargetID] = player.String()
	return row
}

func missingFeatures(columns, features []string) []string {
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c] = struct{}{}
	}
	var missing []string
	for _, f := range features {
		if _, ok := have[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func featureValues(row map[string]string, features []string) ([]float64, bool) {
	values := make([]float64, len(features))
	for i, f := range features {
		v, ok := dataset.ParseFloat(row[f])
		if !ok {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
