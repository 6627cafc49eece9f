package classifier

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidFrame encodes a PNG of one solid color. A color (255, 255-s, 255-s)
// has HSV saturation exactly s, which makes the zone under test explicit.
func solidFrame(t *testing.T, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func frameWithSaturation(t *testing.T, sat uint8) []byte {
	t.Helper()
	return solidFrame(t, color.RGBA{R: 255, G: 255 - sat, B: 255 - sat, A: 255})
}

func categoryEnsemble(label string, confidence float64) *Ensemble {
	probs := make([]float64, len(CategoryLabels))
	rest := (1 - confidence) / float64(len(CategoryLabels)-1)
	for i, l := range CategoryLabels {
		if l == label {
			probs[i] = confidence
		} else {
			probs[i] = rest
		}
	}

	return &Ensemble{
		Labels:     CategoryLabels,
		Layout:     LayoutColorShape24,
		Scaler:     identityScaler(FeatureCount),
		Estimators: []Estimator{&fixedEstimator{probs: probs}},
		Weights:    []float64{1},
	}
}

func presenceEnsemble(pPresent float64) *Ensemble {
	return &Ensemble{
		Labels:     []string{LabelAbsent, LabelPresent},
		Layout:     LayoutColorShape24,
		Scaler:     identityScaler(FeatureCount),
		Estimators: []Estimator{&fixedEstimator{probs: []float64{1 - pPresent, pPresent}}},
		Weights:    []float64{1},
	}
}

func testEngine(pPresent float64, label string, confidence float64) *Engine {
	return NewEngine(&ModelBundle{
		Layout:   LayoutColorShape24,
		Presence: presenceEnsemble(pPresent),
		Category: categoryEnsemble(label, confidence),
	})
}

func allowAll() map[string]bool {
	allowed := make(map[string]bool, len(CategoryLabels))
	for _, l := range CategoryLabels {
		allowed[l] = true
	}

	return allowed
}

func TestEngine_HighSaturationAccepts(t *testing.T) {
	engine := testEngine(0.9, "Azul", 0.6)

	decision := engine.Evaluate(frameWithSaturation(t, 150), allowAll(), 0.5)

	assert.True(t, decision.Accepted)
	assert.Equal(t, ReasonEligible, decision.Reason)
	assert.Equal(t, RuleSatHigh, decision.Rule)
	assert.InDelta(t, 0.95, decision.Confidence, 1e-9)
	assert.Equal(t, "Azul", decision.Category)
	require.NotNil(t, decision.Probabilities)
}

func TestEngine_VeryLowSaturationRejects(t *testing.T) {
	engine := testEngine(0.9, "Azul", 0.99)

	decision := engine.Evaluate(frameWithSaturation(t, 10), allowAll(), 0.5)

	assert.False(t, decision.Accepted)
	assert.Equal(t, ReasonNotTarget, decision.Reason)
	assert.Equal(t, RuleSatVeryLow, decision.Rule)
	assert.InDelta(t, 0.95, decision.Confidence, 1e-9)
}

func TestEngine_AllowlistDowngradesForceAccept(t *testing.T) {
	engine := testEngine(0.9, "Transparente", 0.6)

	allowed := map[string]bool{"Azul": true, "Verde": true}
	decision := engine.Evaluate(frameWithSaturation(t, 40), allowed, 0.5)

	// The low-saturation band forces an accept, the allowlist gate then
	// downgrades it. A downgrade never becomes an upgrade elsewhere.
	assert.False(t, decision.Accepted)
	assert.Equal(t, ReasonNonAllowedCategory, decision.Reason)
	assert.Equal(t, RuleLowSatForceAccept, decision.Rule)
}

func TestEngine_LowSaturationForceAcceptWhenAllowed(t *testing.T) {
	engine := testEngine(0.9, "Azul", 0.2)

	decision := engine.Evaluate(frameWithSaturation(t, 40), allowAll(), 0.5)

	assert.True(t, decision.Accepted)
	assert.Equal(t, ReasonEligible, decision.Reason)
	assert.Equal(t, RuleLowSatForceAccept, decision.Rule)
	assert.InDelta(t, 0.75, decision.Confidence, 1e-9)
}

func TestEngine_MiddleBandConfidentAccept(t *testing.T) {
	engine := testEngine(0.9, "Verde", 0.9)

	decision := engine.Evaluate(frameWithSaturation(t, 75), allowAll(), 0.5)

	assert.True(t, decision.Accepted)
	assert.Equal(t, ReasonEligible, decision.Reason)
	assert.Equal(t, RuleSvmHighConf, decision.Rule)
	assert.InDelta(t, 0.9, decision.Confidence, 1e-9)
	assert.Equal(t, "Verde", decision.Category)
}

func TestEngine_ConfidenceFloorDowngrades(t *testing.T) {
	engine := testEngine(0.9, "Verde", 0.9)

	decision := engine.Evaluate(frameWithSaturation(t, 75), allowAll(), 0.95)

	assert.False(t, decision.Accepted)
	assert.Equal(t, ReasonLowConfidence, decision.Reason)
}

func TestEngine_PresenceGateFailsClosed(t *testing.T) {
	tests := []struct {
		name     string
		pPresent float64
	}{
		{name: "clearly absent", pPresent: 0.1},
		{name: "exact tie resolves to absent", pPresent: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := testEngine(tt.pPresent, "Azul", 0.9)

			decision := engine.Evaluate(frameWithSaturation(t, 150), allowAll(), 0.5)

			assert.False(t, decision.Accepted)
			assert.Equal(t, ReasonNotTarget, decision.Reason)
			assert.InDelta(t, tt.pPresent, decision.Confidence, 1e-9)
			assert.Nil(t, decision.Probabilities)
		})
	}
}

func TestEngine_SingleStageBundleSkipsPresence(t *testing.T) {
	engine := NewEngine(&ModelBundle{
		Layout:   LayoutColorShape24,
		Category: categoryEnsemble("Azul", 0.9),
	})

	decision := engine.Evaluate(frameWithSaturation(t, 75), allowAll(), 0.5)

	assert.True(t, decision.Accepted)
	assert.Equal(t, RuleSvmHighConf, decision.Rule)
}

func TestEngine_InvalidFrame(t *testing.T) {
	engine := testEngine(0.9, "Azul", 0.9)

	tests := []struct {
		name  string
		frame []byte
	}{
		{name: "empty frame", frame: nil},
		{name: "garbage bytes", frame: []byte("definitely not an image")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := engine.Evaluate(tt.frame, allowAll(), 0.5)

			assert.False(t, decision.Accepted)
			assert.Equal(t, ReasonInvalidImage, decision.Reason)
			assert.Zero(t, decision.Confidence)
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	engine := testEngine(0.9, "Azul", 0.85)
	frame := frameWithSaturation(t, 87)

	first := engine.Evaluate(frame, allowAll(), 0.5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Evaluate(frame, allowAll(), 0.5))
	}
}

func TestEngine_ReasonAcceptCoupling(t *testing.T) {
	engine := testEngine(0.9, "Azul", 0.85)

	for _, sat := range []uint8{5, 35, 75, 110, 140} {
		decision := engine.Evaluate(frameWithSaturation(t, sat), allowAll(), 0.5)
		assert.Equal(t, decision.Accepted, decision.Reason == ReasonEligible)
		assert.GreaterOrEqual(t, decision.Confidence, 0.0)
		assert.LessOrEqual(t, decision.Confidence, 1.0)
	}
}
