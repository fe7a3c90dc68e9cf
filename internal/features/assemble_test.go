package features

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-mlb-hits/internal/idmap"
	"github.com/pable/go-mlb-hits/internal/model"
)

var eventCols = []string{"batter", "pitcher", "events", "launch_speed", "launch_angle", "release_speed", "effective_speed", "home_team"}

var statCols = []string{"IDfg", "Name", "Team", "PA", "BB%", "K%", "AVG", "OBP", "SLG", "wOBA", "wRC+"}

func event(batter, outcome, speed string) model.PitchEvent {
	return model.PitchEvent{
		Batter:  model.ParseSourceID(batter),
		Outcome: outcome,
		Fields: map[string]string{
			"batter": batter, "pitcher": "543037", "events": outcome,
			"launch_speed": speed, "launch_angle": "28", "release_speed": "96.1",
			"effective_speed": "95.8", "home_team": "LAD",
		},
	}
}

func seasonRow(id string) model.SeasonStats {
	return model.SeasonStats{
		Player: model.ParseTargetID(id),
		Fields: map[string]string{
			"IDfg": id, "Name": "Shohei Ohtani", "Team": "LAD", "PA": "400", "BB%": "0.12", "K%": "0.22",
			"AVG": "0.280", "OBP": "0.380", "SLG": "0.600", "wOBA": "0.410", "wRC+": "135",
		},
	}
}

func TestAssembleHomeRunProducesPositiveRecord(t *testing.T) {
	events := model.PitchBatch{Columns: eventCols, Events: []model.PitchEvent{event("660271", "home_run", "105.3")}}
	stats := model.StatsBatch{Columns: statCols, Rows: []model.SeasonStats{seasonRow("X")}}
	m := idmap.NewMapping()
	m.Add("660271", "X")

	res, err := Assemble(events, stats, m)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, model.Hit, rec.Label)
	assert.Equal(t, model.TargetID("X"), rec.Player)
	assert.Equal(t, model.FeatureColumns, res.Features)
	assert.Len(t, rec.Values, len(model.FeatureColumns))
	assert.Equal(t, 105.3, rec.Values[0])
	assert.Equal(t, 135.0, rec.Values[len(rec.Values)-1])
	assert.Equal(t, "Shohei Ohtani", rec.Row["Name"])
	assert.Equal(t, "X", rec.Row["IDfg"])
}

func TestAssembleUnresolvedBatterIsDropped(t *testing.T) {
	events := model.PitchBatch{Columns: eventCols, Events: []model.PitchEvent{
		event("660271", "home_run", "105.3"),
		event("999999", "single", "99.0"),
	}}
	stats := model.StatsBatch{Columns: statCols, Rows: []model.SeasonStats{seasonRow("19755")}}
	m := idmap.NewMapping()
	m.Add("660271", "19755")

	res, err := Assemble(events, stats, m)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Usable)
	for _, r := range res.Records {
		assert.NotEqual(t, model.SourceID("999999"), r.Batter)
	}
}

func TestAssembleOnlyUnresolvedBatterIsJoinEmpty(t *testing.T) {
	events := model.PitchBatch{Columns: eventCols, Events: []model.PitchEvent{event("999999", "single", "99.0")}}
	stats := model.StatsBatch{Columns: statCols, Rows: []model.SeasonStats{seasonRow("19755")}}

	res, err := Assemble(events, stats, idmap.NewMapping())
	assert.ErrorIs(t, err, ErrNoJoinedRows)
	assert.True(t, IsEmpty(err))
	assert.Empty(t, res.Records)
}

func TestAssembleResolvedButNoSeasonRow(t *testing.T) {
	events := model.PitchBatch{Columns: eventCols, Events: []model.PitchEvent{event("660271", "single", "99.0")}}
	m := idmap.NewMapping()
	m.Add("660271", "19755")

	res, err := Assemble(events, model.StatsBatch{Columns: statCols}, m)
	assert.ErrorIs(t, err, ErrNoJoinedRows)
	assert.Equal(t, 1, res.Resolved)
	assert.Equal(t, 0, res.Joined)
}

func TestAssembleZeroEvents(t *testing.T) {
	res, err := Assemble(model.PitchBatch{Columns: eventCols}, model.StatsBatch{Columns: statCols}, idmap.NewMapping())
	assert.True(t, IsEmpty(err))
	assert.Equal(t, 0, res.Events)
	assert.Empty(t, res.Records)
}

func TestAssembleDropsIncompleteRows(t *testing.T) {
	events := model.PitchBatch{Columns: eventCols, Events: []model.PitchEvent{
		event("660271", "", ""),
		event("660271", "field_out", "nan"),
	}}
	stats := model.StatsBatch{Columns: statCols, Rows: []model.SeasonStats{seasonRow("19755")}}
	m := idmap.NewMapping()
	m.Add("660271", "19755")

	res, err := Assemble(events, stats, m)
	assert.ErrorIs(t, err, ErrNoUsableRows)
	assert.Equal(t, 2, res.Joined)
	assert.Equal(t, 0, res.Usable)
}

func TestAssembleMissingFeatureColumnIsFatal(t *testing.T) {
	cols := []string{"IDfg", "Name", "PA", "AVG"}
	row := seasonRow("19755")
	events := model.PitchBatch{Columns: eventCols, Events: []model.PitchEvent{event("660271", "single", "101")}}
	m := idmap.NewMapping()
	m.Add("660271", "19755")

	_, err := Assemble(events, model.StatsBatch{Columns: cols, Rows: []model.SeasonStats{row}}, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFeature)
	assert.False(t, IsEmpty(err))

	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Contains(t, mce.Columns, "wRC+")
	assert.NotContains(t, mce.Columns, "PA")
}

func TestAssembleColumnCollisionKeepsEventValue(t *testing.T) {
	ev := event("660271", "double", "101")
	ev.Fields["Team"] = "home"
	events := model.PitchBatch{Columns: append(append([]string(nil), eventCols...), "Team"), Events: []model.PitchEvent{ev}}
	stats := model.StatsBatch{Columns: statCols, Rows: []model.SeasonStats{seasonRow("19755")}}
	m := idmap.NewMapping()
	m.Add("660271", "19755")

	res, err := Assemble(events, stats, m)
	require.NoError(t, err)
	assert.Contains(t, res.Columns, "Team_season")
	assert.Equal(t, "home", res.Records[0].Row["Team"])
	assert.Equal(t, "LAD", res.Records[0].Row["Team_season"])
}

func TestAssembleNeverGrowsTheBatch(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	outcomes := []string{"single", "double", "triple", "home_run", "field_out", "strikeout", ""}
	speeds := []string{"101.2", "88", "", "nan", "75.5"}

	for trial := 0; trial < 50; trial++ {
		m := idmap.NewMapping()
		var stats model.StatsBatch
		stats.Columns = statCols
		for p := 0; p < 10; p++ {
			src := strconv.Itoa(600000 + p)
			if rng.IntN(3) > 0 {
				m.Add(model.SourceID(src), model.TargetID("fg"+src))
			}
			if rng.IntN(3) > 0 {
				stats.Rows = append(stats.Rows, seasonRow("fg"+src))
			}
		}
		var events model.PitchBatch
		events.Columns = eventCols
		n := rng.IntN(40)
		for i := 0; i < n; i++ {
			batter := strconv.Itoa(600000 + rng.IntN(12))
			if rng.IntN(8) == 0 {
				batter = ""
			}
			events.Events = append(events.Events, event(batter, outcomes[rng.IntN(len(outcomes))], speeds[rng.IntN(len(speeds))]))
		}

		res, err := Assemble(events, stats, m)
		if err != nil {
			require.True(t, IsEmpty(err), "trial %d: %v", trial, err)
		}
		assert.LessOrEqual(t, len(res.Records), events.WithBatter(), "trial %d", trial)
		assert.LessOrEqual(t, res.Usable, res.Joined)
		assert.LessOrEqual(t, res.Joined, res.Resolved)
		assert.LessOrEqual(t, res.Resolved, res.WithBatter)
	}
}

func TestMatrixAndLabelsAreRowAligned(t *testing.T) {
	recs := []model.FeatureRecord{
		{Label: model.Hit, Values: []float64{1, 2}},
		{Label: model.NoHit, Values: []float64{3, 4}},
	}
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, Matrix(recs))
	assert.Equal(t, []model.Label{model.Hit, model.NoHit}, Labels(recs))
}
