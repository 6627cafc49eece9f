package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_ZoneTable(t *testing.T) {
	tests := []struct {
		name               string
		saturation         float64
		allowed            bool
		confidence         float64
		expectedAccept     bool
		expectedConfidence float64
		expectedRule       ReasonCode
	}{
		{
			name:               "high saturation with agreeing category",
			saturation:         150,
			allowed:            true,
			confidence:         0.6,
			expectedAccept:     true,
			expectedConfidence: 0.95,
			expectedRule:       RuleSatHigh,
		},
		{
			name:               "high saturation with disagreeing category",
			saturation:         150,
			allowed:            false,
			confidence:         0.6,
			expectedAccept:     true,
			expectedConfidence: 0.90,
			expectedRule:       RuleSatHigh,
		},
		{
			name:               "very low saturation rejects regardless of category",
			saturation:         10,
			allowed:            true,
			confidence:         0.99,
			expectedAccept:     false,
			expectedConfidence: 0.95,
			expectedRule:       RuleSatVeryLow,
		},
		{
			name:               "mid-high band follows an allowed category",
			saturation:         110,
			allowed:            true,
			confidence:         0.5,
			expectedAccept:     true,
			expectedConfidence: 0.75,
			expectedRule:       RuleMidHighSat,
		},
		{
			name:               "mid-high band rejects a disallowed category",
			saturation:         110,
			allowed:            false,
			confidence:         0.5,
			expectedAccept:     false,
			expectedConfidence: 0.65,
			expectedRule:       ReasonNotTarget,
		},
		{
			name:               "low band forces accept even for disallowed category",
			saturation:         40,
			allowed:            false,
			confidence:         0.2,
			expectedAccept:     true,
			expectedConfidence: 0.75,
			expectedRule:       RuleLowSatForceAccept,
		},
		{
			name:               "middle band accepts a confident allowed category",
			saturation:         75,
			allowed:            true,
			confidence:         0.9,
			expectedAccept:     true,
			expectedConfidence: 0.9,
			expectedRule:       RuleSvmHighConf,
		},
		{
			name:               "middle band rejects at exactly 0.8 confidence",
			saturation:         75,
			allowed:            true,
			confidence:         0.8,
			expectedAccept:     false,
			expectedConfidence: 0.7,
			expectedRule:       ReasonNotTarget,
		},
		{
			name:               "middle band rejects a disallowed category",
			saturation:         75,
			allowed:            false,
			confidence:         0.95,
			expectedAccept:     false,
			expectedConfidence: 0.7,
			expectedRule:       ReasonNotTarget,
		},
		{
			name:               "middle band reject keeps the inverse confidence when higher",
			saturation:         75,
			allowed:            true,
			confidence:         0.1,
			expectedAccept:     false,
			expectedConfidence: 0.9,
			expectedRule:       ReasonNotTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Reconcile(tt.saturation, tt.allowed, tt.confidence)
			assert.Equal(t, tt.expectedAccept, verdict.Accept)
			assert.InDelta(t, tt.expectedConfidence, verdict.Confidence, 1e-9)
			assert.Equal(t, tt.expectedRule, verdict.Rule)
		})
	}
}

func TestReconcile_BoundaryExactness(t *testing.T) {
	tests := []struct {
		name         string
		saturation   float64
		expectedRule ReasonCode
	}{
		{name: "120 belongs to the mid-high band", saturation: 120, expectedRule: RuleMidHighSat},
		{name: "just above 120 is the high band", saturation: 120.0001, expectedRule: RuleSatHigh},
		{name: "100 belongs to the deferral band", saturation: 100, expectedRule: RuleSvmHighConf},
		{name: "just above 100 is the mid-high band", saturation: 100.0001, expectedRule: RuleMidHighSat},
		{name: "50 belongs to the deferral band", saturation: 50, expectedRule: RuleSvmHighConf},
		{name: "just below 50 forces accept", saturation: 49.9999, expectedRule: RuleLowSatForceAccept},
		{name: "30 belongs to the force-accept band", saturation: 30, expectedRule: RuleLowSatForceAccept},
		{name: "just below 30 rejects", saturation: 29.9999, expectedRule: RuleSatVeryLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Reconcile(tt.saturation, true, 0.85)
			assert.Equal(t, tt.expectedRule, verdict.Rule)
		})
	}
}

func TestReconcile_IsPure(t *testing.T) {
	first := Reconcile(87.5, true, 0.83)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Reconcile(87.5, true, 0.83))
	}
}

func TestReconcile_ConfidenceRange(t *testing.T) {
	for sat := 0.0; sat <= 255; sat += 5 {
		for conf := 0.0; conf <= 1; conf += 0.1 {
			verdict := Reconcile(sat, sat > 60, conf)
			assert.GreaterOrEqual(t, verdict.Confidence, 0.0)
			assert.LessOrEqual(t, verdict.Confidence, 1.0)
		}
	}
}
