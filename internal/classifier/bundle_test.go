package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func linearSpec(weight float64, rows int) estimatorSpec {
	coef := make([][]float64, rows)
	intercept := make([]float64, rows)
	for i := range coef {
		coef[i] = make([]float64, FeatureCount)
		coef[i][0] = float64(i + 1)
	}

	return estimatorSpec{Type: "linear", Weight: weight, Coef: coef, Intercept: intercept}
}

func forestSpec(weight float64, classes int) estimatorSpec {
	leaf := make([]float64, classes)
	leaf[0] = 1

	return estimatorSpec{
		Type:    "forest",
		Weight:  weight,
		Classes: classes,
		Trees:   []Tree{{Nodes: []TreeNode{{Left: -1, Right: -1, Value: leaf}}}},
	}
}

func writeValidBundle(t *testing.T, dir string) {
	t.Helper()

	writeArtifact(t, dir, "classes.json", classesFile{Categories: CategoryLabels})
	writeArtifact(t, dir, "category.json", modelFile{
		Scaler:     identityScaler(FeatureCount),
		Estimators: []estimatorSpec{linearSpec(1, len(CategoryLabels))},
	})
	writeArtifact(t, dir, "presence.json", modelFile{
		Labels:     []string{LabelAbsent, LabelPresent},
		Scaler:     identityScaler(FeatureCount),
		Estimators: []estimatorSpec{linearSpec(0.6, 1), forestSpec(0.4, 2)},
		Calibration: &Isotonic{
			X: []float64{0, 1},
			Y: []float64{0, 1},
		},
	})
}

func TestLoadModelBundle_Valid(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)

	bundle, err := LoadModelBundle(dir)
	require.NoError(t, err)

	assert.Equal(t, LayoutColorShape24, bundle.Layout)
	require.NotNil(t, bundle.Presence)
	require.NotNil(t, bundle.Category)
	assert.Equal(t, CategoryLabels, bundle.Category.Labels)

	probs, err := bundle.Presence.Score(make(FeatureVector, FeatureCount))
	require.NoError(t, err)
	require.Len(t, probs.Probs, 2)

	var sum float64
	for _, p := range probs.Probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestLoadModelBundle_SingleStageWithoutPresence(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "presence.json")))

	bundle, err := LoadModelBundle(dir)
	require.NoError(t, err)

	assert.Nil(t, bundle.Presence)
	require.NotNil(t, bundle.Category)
}

func TestLoadModelBundle_Failures(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, dir string)
	}{
		{
			name: "missing classes file",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "classes.json")))
			},
		},
		{
			name: "missing category model",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "category.json")))
			},
		},
		{
			name: "malformed json",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "category.json"), []byte("{"), 0o644))
			},
		},
		{
			name: "unknown category label",
			corrupt: func(t *testing.T, dir string) {
				writeArtifact(t, dir, "classes.json", classesFile{Categories: []string{"Dourado"}})
			},
		},
		{
			name: "unknown feature layout",
			corrupt: func(t *testing.T, dir string) {
				writeArtifact(t, dir, "classes.json", classesFile{Layout: "histogram_36", Categories: CategoryLabels})
			},
		},
		{
			name: "voting weights do not sum to one",
			corrupt: func(t *testing.T, dir string) {
				writeArtifact(t, dir, "presence.json", modelFile{
					Scaler:     identityScaler(FeatureCount),
					Estimators: []estimatorSpec{linearSpec(0.6, 1), forestSpec(0.3, 2)},
				})
			},
		},
		{
			name: "unknown estimator type",
			corrupt: func(t *testing.T, dir string) {
				writeArtifact(t, dir, "category.json", modelFile{
					Scaler:     identityScaler(FeatureCount),
					Estimators: []estimatorSpec{{Type: "svm", Weight: 1}},
				})
			},
		},
		{
			name: "scaler length mismatch",
			corrupt: func(t *testing.T, dir string) {
				writeArtifact(t, dir, "category.json", modelFile{
					Scaler:     identityScaler(12),
					Estimators: []estimatorSpec{linearSpec(1, len(CategoryLabels))},
				})
			},
		},
		{
			name: "presence labels in the wrong order",
			corrupt: func(t *testing.T, dir string) {
				writeArtifact(t, dir, "presence.json", modelFile{
					Labels:     []string{LabelPresent, LabelAbsent},
					Scaler:     identityScaler(FeatureCount),
					Estimators: []estimatorSpec{linearSpec(1, 1)},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeValidBundle(t, dir)
			tt.corrupt(t, dir)

			_, err := LoadModelBundle(dir)
			assert.Error(t, err)
		})
	}
}
