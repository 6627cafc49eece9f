package classificationService

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"TotemIA/internal/classifier"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

func uniformCategoryEngine(t *testing.T) *classifier.Engine {
	t.Helper()

	size := classifier.LayoutColorShape24.Size()
	coef := make([][]float64, len(classifier.CategoryLabels))
	for i := range coef {
		coef[i] = make([]float64, size)
	}

	ensemble := &classifier.Ensemble{
		Labels: classifier.CategoryLabels,
		Layout: classifier.LayoutColorShape24,
		Scaler: &classifier.Scaler{
			Mean:  make([]float64, size),
			Scale: make([]float64, size),
		},
		Estimators: []classifier.Estimator{
			&classifier.LinearEstimator{
				Coef:      coef,
				Intercept: make([]float64, len(classifier.CategoryLabels)),
			},
		},
		Weights: []float64{1},
	}

	return classifier.NewEngine(&classifier.ModelBundle{
		Layout:   classifier.LayoutColorShape24,
		Category: ensemble,
	})
}

func grayFrame(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDiagnose_ReportsTopKProbabilities(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := &classificationService{
		log:           logger,
		engine:        uniformCategoryEngine(t),
		allowed:       map[string]bool{},
		minConfidence: 0.7,
	}

	result, err := svc.Diagnose(context.Background(), grayFrame(t))

	require.NoError(t, err)
	assert.False(t, result.Accepted)

	// A zero-weight model scores every category equally, so the top three
	// entries must each carry the uniform probability, not zero.
	require.Len(t, result.TopK, 3)
	for _, score := range result.TopK {
		assert.NotEmpty(t, score.Label)
		assert.InDelta(t, 1.0/float64(len(classifier.CategoryLabels)), score.Probability, 1e-9)
	}
}
