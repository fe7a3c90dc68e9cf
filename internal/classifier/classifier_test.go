package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-mlb-hits/internal/model"
)

// separable returns rows where the label is 1 iff the first value exceeds 95.
func separable() (Matrix, []model.Label) {
	var X Matrix
	var y []model.Label
	for i := 0; i < 40; i++ {
		speed := 80 + float64(i)
		X = append(X, []float64{speed, 0.3})
		if speed > 95 {
			y = append(y, model.Hit)
		} else {
			y = append(y, model.NoHit)
		}
	}
	return X, y
}

func TestLogisticLearnsSeparableData(t *testing.T) {
	X, y := separable()
	m, err := LogisticTrainer{Iterations: 2000, LearningRate: 0.5}.Fit(X, y)
	require.NoError(t, err)

	got, err := m.Predict(Matrix{{110, 0.3}, {70, 0.3}})
	require.NoError(t, err)
	assert.Equal(t, []model.Label{model.Hit, model.NoHit}, got)

	all, err := m.Predict(X)
	require.NoError(t, err)
	ev, err := Evaluate(y, all)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ev.Accuracy, 0.9)
}

func TestLogisticIsDeterministic(t *testing.T) {
	X, y := separable()
	a, err := LogisticTrainer{}.Fit(X, y)
	require.NoError(t, err)
	b, err := LogisticTrainer{}.Fit(X, y)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFitRejectsBadInput(t *testing.T) {
	_, err := LogisticTrainer{}.Fit(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = LogisticTrainer{}.Fit(Matrix{{1}, {2}}, []model.Label{model.Hit})
	assert.Error(t, err)

	_, err = LogisticTrainer{}.Fit(Matrix{{1, 2}, {2}}, []model.Label{model.Hit, model.NoHit})
	assert.Error(t, err)
}

func TestFittedRejectsSchemaDrift(t *testing.T) {
	X, y := separable()
	m, err := LogisticTrainer{}.Fit(X, y)
	require.NoError(t, err)
	f := NewFitted([]string{"launch_speed", "launch_angle"}, m, len(X))

	_, err = f.Predict([]string{"launch_angle", "launch_speed"}, X)
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = f.Predict([]string{"launch_speed", "launch_angle"}, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	got, err := f.Predict([]string{"launch_speed", "launch_angle"}, X)
	require.NoError(t, err)
	assert.Len(t, got, len(X))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	X, y := separable()
	m, err := LogisticTrainer{}.Fit(X, y)
	require.NoError(t, err)
	f := NewFitted([]string{"launch_speed", "launch_angle"}, m, len(X))

	for _, name := range []string{"model.json", "model.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, f))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, f.Columns, loaded.Columns)
			assert.Equal(t, KindLogistic, loaded.Kind)
			assert.Equal(t, f.Rows, loaded.Rows)
			assert.True(t, f.TrainedAt.Equal(loaded.TrainedAt))

			want, _ := f.Predict(f.Columns, X)
			got, err := loaded.Predict(f.Columns, X)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveReplacesPreviousModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("stale garbage that is longer than nothing"), 0644))

	X, y := separable()
	m, err := LogisticTrainer{}.Fit(X, y)
	require.NoError(t, err)
	require.NoError(t, Save(path, NewFitted([]string{"a", "b"}, m, len(X))))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, loaded.Columns)
}

func TestLoadMissingModel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestSplitIsDeterministicAndDisjoint(t *testing.T) {
	train, test, err := Split(10, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, train, 8)
	assert.Len(t, test, 2)

	seen := map[int]bool{}
	for _, i := range append(append([]int(nil), train...), test...) {
		assert.False(t, seen[i], "index %d repeated", i)
		seen[i] = true
	}
	assert.Len(t, seen, 10)

	train2, test2, _ := Split(10, 0.2, 42)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)
}

func TestSplitEdges(t *testing.T) {
	_, _, err := Split(0, 0.2, 42)
	assert.ErrorIs(t, err, ErrEmptyInput)

	train, test, err := Split(1, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, train, 1)
	assert.Empty(t, test)

	_, _, err = Split(5, 1, 42)
	assert.Error(t, err)
}

func TestEvaluateReport(t *testing.T) {
	truth := []model.Label{1, 1, 1, 0, 0, 0, 0, 0}
	pred := []model.Label{1, 1, 0, 1, 0, 0, 0, 0}

	ev, err := Evaluate(truth, pred)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, ev.Accuracy, 1e-9)
	assert.Equal(t, 8, ev.Support)

	hit := ev.Classes[1]
	assert.Equal(t, model.Hit, hit.Label)
	assert.InDelta(t, 2.0/3.0, hit.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, hit.Recall, 1e-9)
	assert.Equal(t, 3, hit.Support)

	miss := ev.Classes[0]
	assert.InDelta(t, 0.8, miss.Precision, 1e-9)
	assert.InDelta(t, 0.8, miss.Recall, 1e-9)
	assert.Equal(t, 5, miss.Support)

	assert.InDelta(t, (0.8+2.0/3.0)/2, ev.Macro.F1, 1e-9)
	assert.InDelta(t, (0.8*5+2.0/3.0*3)/8, ev.Weighted.F1, 1e-9)

	_, err = Evaluate(truth, pred[:3])
	assert.Error(t, err)
}
