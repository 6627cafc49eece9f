package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEstimator always answers the same distribution, regardless of input.
type fixedEstimator struct {
	probs []float64
}

func (f *fixedEstimator) PredictProba(_ []float64) []float64 { return f.probs }
func (f *fixedEstimator) NumClasses() int                    { return len(f.probs) }

func identityScaler(size int) *Scaler {
	s := &Scaler{Mean: make([]float64, size), Scale: make([]float64, size)}
	for i := range s.Scale {
		s.Scale[i] = 1
	}

	return s
}

func testVector() FeatureVector {
	return make(FeatureVector, FeatureCount)
}

func TestEnsemble_SoftVoting(t *testing.T) {
	ensemble := &Ensemble{
		Labels: []string{LabelAbsent, LabelPresent},
		Layout: LayoutColorShape24,
		Scaler: identityScaler(FeatureCount),
		Estimators: []Estimator{
			&fixedEstimator{probs: []float64{0.2, 0.8}},
			&fixedEstimator{probs: []float64{0.5, 0.5}},
		},
		Weights: []float64{0.6, 0.4},
	}

	probs, err := ensemble.Score(testVector())
	require.NoError(t, err)

	// 0.6*0.8 + 0.4*0.5 = 0.68 for the present class.
	assert.InDelta(t, 0.68, probs.Prob(LabelPresent), 1e-9)
	assert.InDelta(t, 0.32, probs.Prob(LabelAbsent), 1e-9)
}

func TestEnsemble_OutputSumsToOne(t *testing.T) {
	ensemble := &Ensemble{
		Labels: CategoryLabels,
		Layout: LayoutColorShape24,
		Scaler: identityScaler(FeatureCount),
		Estimators: []Estimator{
			&fixedEstimator{probs: []float64{0.3, 0.2, 0.1, 0.1, 0.05, 0.05, 0.05, 0.05, 0.04, 0.03, 0.02, 0.01}},
		},
		Weights:     []float64{1},
		Calibration: &Isotonic{X: []float64{0, 0.5, 1}, Y: []float64{0.05, 0.6, 0.95}},
	}

	probs, err := ensemble.Score(testVector())
	require.NoError(t, err)

	var sum float64
	for _, p := range probs.Probs {
		sum += p
	}

	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestEnsemble_RejectsLayoutMismatch(t *testing.T) {
	ensemble := &Ensemble{
		Labels:     []string{LabelAbsent, LabelPresent},
		Layout:     LayoutColorShape24,
		Scaler:     identityScaler(FeatureCount),
		Estimators: []Estimator{&fixedEstimator{probs: []float64{0.5, 0.5}}},
		Weights:    []float64{1},
	}

	_, err := ensemble.Score(make(FeatureVector, 10))
	assert.Error(t, err)
}

func TestIsotonic_Apply(t *testing.T) {
	curve := &Isotonic{
		X: []float64{0.2, 0.5, 0.8},
		Y: []float64{0.1, 0.5, 0.9},
	}

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "clamps below the first knot", input: 0.0, expected: 0.1},
		{name: "clamps above the last knot", input: 0.99, expected: 0.9},
		{name: "hits a knot exactly", input: 0.5, expected: 0.5},
		{name: "interpolates between knots", input: 0.35, expected: 0.3},
		{name: "interpolates in the upper segment", input: 0.65, expected: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, curve.Apply(tt.input), 1e-9)
		})
	}
}

func TestScaler_Transform(t *testing.T) {
	scaler := &Scaler{Mean: []float64{10, 0, 5}, Scale: []float64{2, 1, 0}}

	out := scaler.Transform([]float64{14, 3, 5})

	assert.InDelta(t, 2, out[0], 1e-9)
	assert.InDelta(t, 3, out[1], 1e-9)
	// Zero scale must not divide by zero.
	assert.InDelta(t, 0, out[2], 1e-9)
}

func TestLinearEstimator_Binary(t *testing.T) {
	estimator := &LinearEstimator{
		Coef:      [][]float64{{1, -1}},
		Intercept: []float64{0},
	}

	probs := estimator.PredictProba([]float64{0, 0})
	require.Len(t, probs, 2)
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)

	probs = estimator.PredictProba([]float64{10, 0})
	assert.Greater(t, probs[1], 0.99)
}

func TestLinearEstimator_MulticlassSoftmax(t *testing.T) {
	estimator := &LinearEstimator{
		Coef:      [][]float64{{1}, {1}, {1}},
		Intercept: []float64{0, 0, 0},
	}

	probs := estimator.PredictProba([]float64{3})

	var sum float64
	for _, p := range probs {
		assert.InDelta(t, 1.0/3.0, p, 1e-9)
		sum += p
	}

	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForestEstimator_AveragesTrees(t *testing.T) {
	leftLeaning := Tree{Nodes: []TreeNode{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: []float64{1, 0}},
		{Left: -1, Right: -1, Value: []float64{0, 1}},
	}}
	alwaysPositive := Tree{Nodes: []TreeNode{
		{Left: -1, Right: -1, Value: []float64{0, 1}},
	}}

	forest := &ForestEstimator{Trees: []Tree{leftLeaning, alwaysPositive}, Classes: 2}

	probs := forest.PredictProba([]float64{0})
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)

	probs = forest.PredictProba([]float64{1})
	assert.InDelta(t, 0.0, probs[0], 1e-9)
	assert.InDelta(t, 1.0, probs[1], 1e-9)
}

func TestEnsemble_ValidateRejectsBadWeights(t *testing.T) {
	ensemble := &Ensemble{
		Labels:     []string{LabelAbsent, LabelPresent},
		Layout:     LayoutColorShape24,
		Scaler:     identityScaler(FeatureCount),
		Estimators: []Estimator{&fixedEstimator{probs: []float64{0.5, 0.5}}},
		Weights:    []float64{0.5},
	}

	assert.Error(t, ensemble.validate())

	ensemble.Weights = []float64{1}
	assert.NoError(t, ensemble.validate())
}

func TestClassProbabilities_TopK(t *testing.T) {
	probs := ClassProbabilities{
		Labels: []string{"Azul", "Verde", "Vermelho"},
		Probs:  []float64{0.2, 0.7, 0.1},
	}

	top := probs.TopK(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Verde", top[0].Label)
	assert.Equal(t, "Azul", top[1].Label)

	label, p := probs.ArgMax()
	assert.Equal(t, "Verde", label)
	assert.InDelta(t, 0.7, p, 1e-9)
}
