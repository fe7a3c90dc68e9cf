package classifier

import (
	"fmt"
	"math"

	"github.com/pable/go-mlb-hits/internal/model"
)

const (
	defaultIterations   = 500
	defaultLearningRate = 0.1
	defaultL2           = 0.001
	defaultThreshold    = 0.5
)

// LogisticTrainer fits an L2-regularized logistic regression by batch
// gradient descent on standardized features. Training is deterministic.
type LogisticTrainer struct {
	Iterations   int
	LearningRate float64
	L2           float64
}

// Logistic is a fitted logistic regression.
type Logistic struct {
	Means     []float64 `json:"means"`
	Scales    []float64 `json:"scales"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Threshold float64   `json:"threshold"`
}

// Fit implements Trainer.
func (t LogisticTrainer) Fit(X Matrix, y []model.Label) (Model, error) {
	w, err := checkTraining(X, y)
	if err != nil {
		return nil, err
	}
	iters := t.Iterations
	if iters <= 0 {
		iters = defaultIterations
	}
	lr := t.LearningRate
	if lr <= 0 {
		lr = defaultLearningRate
	}
	l2 := t.L2
	if l2 <= 0 {
		l2 = defaultL2
	}

	m := &Logistic{Threshold: defaultThreshold}
	m.Means, m.Scales = standardization(X, w)
	Z := m.standardize(X)

	m.Weights = make([]float64, w)
	grad := make([]float64, w)
	n := float64(len(Z))
	for iter := 0; iter < iters; iter++ {
		clear(grad)
		var gradBias float64
		for i, row := range Z {
			e := sigmoid(dot(m.Weights, row)+m.Bias) - float64(y[i])
			for k := range grad {
				grad[k] += e * row[k]
			}
			gradBias += e
		}
		for k := range m.Weights {
			m.Weights[k] -= lr * (grad[k]/n + l2*m.Weights[k])
		}
		m.Bias -= lr * gradBias / n
	}
	return m, nil
}

// Probabilities returns P(hit) per row.
func (m *Logistic) Probabilities(X Matrix) ([]float64, error) {
	w, err := X.Width()
	if err != nil {
		return nil, err
	}
	if w != len(m.Weights) {
		return nil, fmt.Errorf("classifier: %d values per row, model expects %d", w, len(m.Weights))
	}
	out := make([]float64, len(X))
	for i, row := range m.standardize(X) {
		out[i] = sigmoid(dot(m.Weights, row) + m.Bias)
	}
	return out, nil
}

// Predict implements Model.
func (m *Logistic) Predict(X Matrix) ([]model.Label, error) {
	probs, err := m.Probabilities(X)
	if err != nil {
		return nil, err
	}
	th := m.Threshold
	if th == 0 {
		th = defaultThreshold
	}
	out := make([]model.Label, len(probs))
	for i, p := range probs {
		if p >= th {
			out[i] = model.Hit
		}
	}
	return out, nil
}

func (m *Logistic) standardize(X Matrix) Matrix {
	out := make(Matrix, len(X))
	for i, row := range X {
		z := make([]float64, len(row))
		for k, v := range row {
			z[k] = (v - m.Means[k]) / m.Scales[k]
		}
		out[i] = z
	}
	return out
}

// standardization returns per-column mean and standard deviation. Constant
// columns get scale 1.
func standardization(X Matrix, w int) (means, scales []float64) {
	means = make([]float64, w)
	scales = make([]float64, w)
	n := float64(len(X))
	for _, row := range X {
		for k, v := range row {
			means[k] += v
		}
	}
	for k := range means {
		means[k] /= n
	}
	for _, row := range X {
		for k, v := range row {
			d := v - means[k]
			scales[k] += d * d
		}
	}
	for k := range scales {
		scales[k] = math.Sqrt(scales[k] / n)
		if scales[k] == 0 {
			scales[k] = 1
		}
	}
	return means, scales
}

func sigmoid(z float64) float64 {
	if z > 30 {
		return 1
	}
	if z < -30 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
