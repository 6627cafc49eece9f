package classifier

import (
	"fmt"
	"math"
)

// Estimator is one frozen base model. Implementations are read-only after
// load and safe for concurrent scoring.
type Estimator interface {
	PredictProba(features []float64) []float64
	NumClasses() int
}

// Scaler holds the standardization fitted offline together with the model.
// It is applied to every vector before any estimator sees it.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *Scaler) Transform(features []float64) []float64 {
	out := make([]float64, len(features))
	for i, v := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}

		out[i] = (v - s.Mean[i]) / scale
	}

	return out
}

func (s *Scaler) validate(size int) error {
	if len(s.Mean) != size || len(s.Scale) != size {
		return fmt.Errorf("scaler expects %d features, got mean=%d scale=%d", size, len(s.Mean), len(s.Scale))
	}

	return nil
}

// LinearEstimator scores with frozen logistic-regression weights. A single
// coefficient row is treated as a binary model (sigmoid), multiple rows as
// one-vs-rest with a softmax over the margins.
type LinearEstimator struct {
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

func (l *LinearEstimator) NumClasses() int {
	if len(l.Coef) == 1 {
		return 2
	}

	return len(l.Coef)
}

func (l *LinearEstimator) PredictProba(features []float64) []float64 {
	margins := make([]float64, len(l.Coef))
	for i, row := range l.Coef {
		z := l.Intercept[i]
		for j, w := range row {
			z += w * features[j]
		}

		margins[i] = z
	}

	if len(margins) == 1 {
		p := sigmoid(margins[0])
		return []float64{1 - p, p}
	}

	return softmax(margins)
}

func (l *LinearEstimator) validate(size int) error {
	if len(l.Coef) == 0 || len(l.Coef) != len(l.Intercept) {
		return fmt.Errorf("linear estimator has %d coefficient rows and %d intercepts", len(l.Coef), len(l.Intercept))
	}

	for i, row := range l.Coef {
		if len(row) != size {
			return fmt.Errorf("linear estimator row %d has %d weights, expected %d", i, len(row), size)
		}
	}

	return nil
}

// TreeNode is one node of an exported decision tree. Left/Right of -1 marks
// a leaf carrying the class distribution.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *Tree) predict(features []float64) []float64 {
	i := 0
	for t.Nodes[i].Left >= 0 {
		node := t.Nodes[i]
		if features[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}

	return t.Nodes[i].Value
}

// ForestEstimator averages the leaf distributions of frozen decision trees.
type ForestEstimator struct {
	Trees   []Tree `json:"trees"`
	Classes int    `json:"classes"`
}

func (f *ForestEstimator) NumClasses() int {
	return f.Classes
}

func (f *ForestEstimator) PredictProba(features []float64) []float64 {
	acc := make([]float64, f.Classes)
	for i := range f.Trees {
		leaf := f.Trees[i].predict(features)
		for j := range acc {
			acc[j] += leaf[j]
		}
	}

	normalize(acc)

	return acc
}

func (f *ForestEstimator) validate(size int) error {
	if f.Classes < 2 {
		return fmt.Errorf("forest estimator declares %d classes", f.Classes)
	}

	if len(f.Trees) == 0 {
		return fmt.Errorf("forest estimator has no trees")
	}

	for ti := range f.Trees {
		nodes := f.Trees[ti].Nodes
		if len(nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}

		for ni, node := range nodes {
			if node.Left < 0 {
				if len(node.Value) != f.Classes {
					return fmt.Errorf("tree %d leaf %d has %d values, expected %d", ti, ni, len(node.Value), f.Classes)
				}
				continue
			}

			if node.Feature < 0 || node.Feature >= size {
				return fmt.Errorf("tree %d node %d splits on feature %d, layout has %d", ti, ni, node.Feature, size)
			}

			if node.Left >= len(nodes) || node.Right < 0 || node.Right >= len(nodes) {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}

			if node.Left <= ni || node.Right <= ni {
				return fmt.Errorf("tree %d node %d children must come after their parent", ti, ni)
			}
		}
	}

	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(margins []float64) []float64 {
	max := margins[0]
	for _, z := range margins[1:] {
		if z > max {
			max = z
		}
	}

	out := make([]float64, len(margins))
	var sum float64
	for i, z := range margins {
		out[i] = math.Exp(z - max)
		sum += out[i]
	}

	for i := range out {
		out[i] /= sum
	}

	return out
}

func normalize(probs []float64) {
	var sum float64
	for _, p := range probs {
		sum += p
	}

	if sum <= 0 {
		uniform := 1 / float64(len(probs))
		for i := range probs {
			probs[i] = uniform
		}

		return
	}

	for i := range probs {
		probs[i] /= sum
	}
}
