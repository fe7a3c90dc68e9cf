package classifier

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pable/go-mlb-hits/internal/model"
)

// Split shuffles 0..n-1 with a seeded source and returns the train and test
// index sets. The test set holds ceil(n*testFraction) rows; the train set is
// never empty when n > 0.
func Split(n int, testFraction float64, seed uint64) (train, test []int, err error) {
	if n <= 0 {
		return nil, nil, ErrEmptyInput
	}
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("classifier: test fraction %v outside [0, 1)", testFraction)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewPCG(seed, 0))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nTest := int(math.Ceil(float64(n)*testFraction - 1e-9))
	if nTest >= n {
		nTest = n - 1
	}
	return idx[nTest:], idx[:nTest], nil
}

// Rows picks the rows of X and y at idx.
func Rows(X Matrix, y []model.Label, idx []int) (Matrix, []model.Label) {
	xs := make(Matrix, len(idx))
	ys := make([]model.Label, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}

// ClassMetrics are the per-label figures of an Evaluation.
type ClassMetrics struct {
	Label     model.Label
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation is a held-out classification report.
type Evaluation struct {
	Accuracy float64
	Classes  []ClassMetrics // NoHit, Hit
	Macro    ClassMetrics
	Weighted ClassMetrics
	Support  int
}

// Evaluate compares predictions against the true labels.
func Evaluate(truth, pred []model.Label) (Evaluation, error) {
	if len(truth) != len(pred) {
		return Evaluation{}, fmt.Errorf("classifier: %d labels but %d predictions", len(truth), len(pred))
	}
	if len(truth) == 0 {
		return Evaluation{}, ErrEmptyInput
	}

	var ev Evaluation
	ev.Support = len(truth)
	correct := 0
	for i := range truth {
		if truth[i] == pred[i] {
			correct++
		}
	}
	ev.Accuracy = float64(correct) / float64(len(truth))

	for _, lbl := range []model.Label{model.NoHit, model.Hit} {
		var tp, fp, fn int
		for i := range truth {
			switch {
			case pred[i] == lbl && truth[i] == lbl:
				tp++
			case pred[i] == lbl:
				fp++
			case truth[i] == lbl:
				fn++
			}
		}
		c := ClassMetrics{
			Label:     lbl,
			Precision: ratio(tp, tp+fp),
			Recall:    ratio(tp, tp+fn),
			Support:   tp + fn,
		}
		if c.Precision+c.Recall > 0 {
			c.F1 = 2 * c.Precision * c.Recall / (c.Precision + c.Recall)
		}
		ev.Classes = append(ev.Classes, c)

		ev.Macro.Precision += c.Precision / 2
		ev.Macro.Recall += c.Recall / 2
		ev.Macro.F1 += c.F1 / 2
		w := float64(c.Support) / float64(ev.Support)
		ev.Weighted.Precision += c.Precision * w
		ev.Weighted.Recall += c.Recall * w
		ev.Weighted.F1 += c.F1 * w
	}
	ev.Macro.Support = ev.Support
	ev.Weighted.Support = ev.Support
	return ev, nil
}

// ratio returns a/b, or 0 when b is zero.
func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
