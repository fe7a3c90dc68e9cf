package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-mlb-hits/internal/classifier"
	"github.com/pable/go-mlb-hits/internal/idmap"
	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/predictions"
)

const eventsHeader = "game_date,batter,pitcher,events,launch_speed,launch_angle,release_speed,effective_speed\n"

const battingCSV = `IDfg,Season,Name,Team,PA,BB%,K%,AVG,OBP,SLG,wOBA,wRC+
19755,2025,Shohei Ohtani,LAD,400,0.12,0.22,0.280,0.380,0.600,0.410,135
15640,2025,Aaron Judge,NYY,420,0.15,0.25,0.310,0.420,0.650,0.450,190
`

func resolver() idmap.StaticResolver {
	return idmap.StaticResolver{"660271": "19755", "592450": "15640"}
}

// trainingEvents builds rows where hard contact is a hit.
func trainingEvents() string {
	var b strings.Builder
	b.WriteString(eventsHeader)
	for i := 0; i < 30; i++ {
		batter := "660271"
		if i%2 == 1 {
			batter = "592450"
		}
		speed := 75.0 + float64(i)
		outcome := "field_out"
		if speed >= 92 {
			outcome = "single"
		}
		fmt.Fprintf(&b, "2025-06-01,%s,543037,%s,%.1f,20,95.0,94.5\n", batter, outcome, speed)
	}
	fmt.Fprintf(&b, "2025-06-01,999999,543037,single,101.0,20,95.0,94.5\n")
	fmt.Fprintf(&b, "2025-06-01,660271,543037,,,,95.0,94.5\n")
	return b.String()
}

func setup(t *testing.T, events string) Deps {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		return p
	}
	return Deps{
		Paths: Paths{
			Events:      write("statcast_data.csv", events),
			Batting:     write("batting_stats.csv", battingCSV),
			Model:       filepath.Join(dir, "trained_model.json"),
			Predictions: filepath.Join(dir, "predictions_today.csv"),
		},
		Resolver: resolver(),
		Trainer:  classifier.LogisticTrainer{},
	}
}

func TestTrainThenPredict(t *testing.T) {
	d := setup(t, trainingEvents())

	ts, err := Train(context.Background(), d, TrainOptions{TestFraction: 0.2, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 32, ts.Events)
	assert.Equal(t, 31, ts.Resolved)
	assert.Equal(t, 30, ts.Usable)
	assert.Equal(t, 24, ts.TrainRows)
	assert.Equal(t, 6, ts.TestRows)
	require.NotNil(t, ts.Evaluation)
	assert.Equal(t, model.FeatureColumns, ts.Model.Columns)

	ps, err := Predict(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 30, ps.Written)

	set, err := predictions.Read(d.Paths.Predictions)
	require.NoError(t, err)
	assert.Equal(t, 30, set.Len())
	assert.Equal(t, model.ColPrediction, set.Frame.Columns[len(set.Frame.Columns)-1])
	assert.True(t, set.Frame.Has(model.ColWRCPlus))
	for i := 0; i < set.Len(); i++ {
		assert.NotEqual(t, "999999", set.Get(i, model.ColBatter))
	}
}

func TestTrainAndPredictShareTheFeatureSchema(t *testing.T) {
	d := setup(t, trainingEvents())
	_, err := Train(context.Background(), d, TrainOptions{TestFraction: 0.2, Seed: 42})
	require.NoError(t, err)

	fitted, err := classifier.Load(d.Paths.Model)
	require.NoError(t, err)

	res, err := Prepare(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, fitted.Columns, res.Features)
	assert.Equal(t, model.FeatureColumns, res.Features)

	// A model fitted on another column order is refused at predict time.
	reordered := append([]string{fitted.Columns[1], fitted.Columns[0]}, fitted.Columns[2:]...)
	fitted.Columns = reordered
	require.NoError(t, classifier.Save(d.Paths.Model, fitted))
	_, err = Predict(context.Background(), d)
	assert.ErrorIs(t, err, classifier.ErrSchemaMismatch)
}

func TestSingleHomeRunEndToEnd(t *testing.T) {
	d := setup(t, eventsHeader+"2025-06-01,660271,543037,home_run,105.3,28,96.1,95.8\n")
	res, err := Prepare(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, model.Hit, res.Records[0].Label)
	assert.Equal(t, model.TargetID("19755"), res.Records[0].Player)
}

func TestUnresolvedOnlyIsJoinEmpty(t *testing.T) {
	d := setup(t, eventsHeader+"2025-06-01,999999,543037,single,101.0,20,95.0,94.5\n")

	sum, err := Predict(context.Background(), d)
	assert.True(t, IsEmpty(err))
	assert.Equal(t, 1, sum.Events)
	assert.Equal(t, 0, sum.Usable)

	_, statErr := os.Stat(d.Paths.Predictions)
	assert.True(t, os.IsNotExist(statErr), "no prediction file on an empty run")
}

func TestEmptyEventFile(t *testing.T) {
	for name, body := range map[string]string{"no header": "", "header only": eventsHeader} {
		t.Run(name, func(t *testing.T) {
			d := setup(t, body)
			sum, err := Train(context.Background(), d, TrainOptions{TestFraction: 0.2, Seed: 42})
			assert.ErrorIs(t, err, ErrNoEvents)
			assert.True(t, IsEmpty(err))
			assert.Zero(t, sum.Events)
		})
	}
}

func TestPredictWithoutModel(t *testing.T) {
	d := setup(t, trainingEvents())
	_, err := Predict(context.Background(), d)
	assert.ErrorIs(t, err, classifier.ErrNoModel)
	assert.False(t, IsEmpty(err))
}
