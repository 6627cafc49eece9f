package classifier

import (
	"fmt"
	"math"
	"sort"
)

// Isotonic is a frozen calibration curve exported as knot pairs. Applying
// it interpolates linearly between knots and clamps outside them, mapping
// raw ensemble scores onto empirically honest probabilities.
type Isotonic struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (c *Isotonic) Apply(p float64) float64 {
	if len(c.X) == 0 {
		return p
	}

	if p <= c.X[0] {
		return c.Y[0]
	}

	last := len(c.X) - 1
	if p >= c.X[last] {
		return c.Y[last]
	}

	i := sort.SearchFloat64s(c.X, p)
	x0, x1 := c.X[i-1], c.X[i]
	y0, y1 := c.Y[i-1], c.Y[i]
	if x1 == x0 {
		return y1
	}

	return y0 + (y1-y0)*(p-x0)/(x1-x0)
}

func (c *Isotonic) validate() error {
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("calibration has %d x knots and %d y knots", len(c.X), len(c.Y))
	}

	for i := 1; i < len(c.X); i++ {
		if c.X[i] < c.X[i-1] {
			return fmt.Errorf("calibration knots must be sorted, knot %d decreases", i)
		}
	}

	for _, y := range c.Y {
		if y < 0 || y > 1 {
			return fmt.Errorf("calibration output %v outside [0,1]", y)
		}
	}

	return nil
}

// Ensemble combines frozen base estimators by weighted soft voting over a
// shared label set, then runs the optional calibration curve. Read-only
// after load, scored concurrently without locking.
type Ensemble struct {
	Labels      []string
	Layout      Layout
	Scaler      *Scaler
	Estimators  []Estimator
	Weights     []float64
	Calibration *Isotonic
}

func (e *Ensemble) Score(features []float64) (ClassProbabilities, error) {
	if len(features) != e.Layout.Size() {
		return ClassProbabilities{}, fmt.Errorf("feature vector has %d values, layout %s expects %d", len(features), e.Layout, e.Layout.Size())
	}

	scaled := e.Scaler.Transform(features)

	acc := make([]float64, len(e.Labels))
	for i, estimator := range e.Estimators {
		probs := estimator.PredictProba(scaled)
		if len(probs) != len(acc) {
			return ClassProbabilities{}, fmt.Errorf("estimator %d produced %d probabilities for %d labels", i, len(probs), len(acc))
		}

		for j, p := range probs {
			acc[j] += e.Weights[i] * p
		}
	}

	if e.Calibration != nil {
		for j, p := range acc {
			acc[j] = e.Calibration.Apply(p)
		}
	}

	normalize(acc)

	for _, p := range acc {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return ClassProbabilities{}, fmt.Errorf("non-finite probability in ensemble output")
		}
	}

	return ClassProbabilities{Labels: e.Labels, Probs: acc}, nil
}

func (e *Ensemble) validate() error {
	if len(e.Labels) < 2 {
		return fmt.Errorf("ensemble needs at least 2 labels, got %d", len(e.Labels))
	}

	seen := make(map[string]bool, len(e.Labels))
	for _, label := range e.Labels {
		if label == "" || seen[label] {
			return fmt.Errorf("ensemble labels must be unique and non-empty")
		}
		seen[label] = true
	}

	if e.Layout.Size() == 0 {
		return fmt.Errorf("unknown feature layout %q", e.Layout)
	}

	if e.Scaler == nil {
		return fmt.Errorf("ensemble is missing its scaler")
	}

	if err := e.Scaler.validate(e.Layout.Size()); err != nil {
		return err
	}

	if len(e.Estimators) == 0 {
		return fmt.Errorf("ensemble has no estimators")
	}

	if len(e.Weights) != len(e.Estimators) {
		return fmt.Errorf("ensemble has %d estimators but %d weights", len(e.Estimators), len(e.Weights))
	}

	var sum float64
	for _, w := range e.Weights {
		if w < 0 {
			return fmt.Errorf("negative voting weight %v", w)
		}
		sum += w
	}

	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("voting weights sum to %v, expected 1", sum)
	}

	for i, estimator := range e.Estimators {
		if estimator.NumClasses() != len(e.Labels) {
			return fmt.Errorf("estimator %d scores %d classes for %d labels", i, estimator.NumClasses(), len(e.Labels))
		}

		var err error
		switch est := estimator.(type) {
		case *LinearEstimator:
			err = est.validate(e.Layout.Size())
		case *ForestEstimator:
			err = est.validate(e.Layout.Size())
		}

		if err != nil {
			return fmt.Errorf("estimator %d: %w", i, err)
		}
	}

	if e.Calibration != nil {
		if err := e.Calibration.validate(); err != nil {
			return err
		}
	}

	return nil
}
