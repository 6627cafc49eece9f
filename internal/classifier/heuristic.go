package classifier

// Verdict is the reconciler's provisional outcome. The engine may still
// downgrade an accept through the allowlist and confidence gates, it never
// upgrades a reject.
type Verdict struct {
	Accept     bool
	Confidence float64
	Rule       ReasonCode
}

// Reconcile maps the frame saturation onto the tuned zone table. The cut
// points 120/100/50/30 were calibrated against real totem samples and must
// not drift; boundaries are evaluated exactly as written, first match wins.
//
//	sat > 120        force accept (0.95 agreeing, 0.90 otherwise)
//	sat < 30         force reject (0.95)
//	100 < sat <= 120 follow the category stage (0.75 / 0.65)
//	30 <= sat < 50   force accept (0.75)
//	50 <= sat <= 100 defer to the category stage above 0.8 confidence
//
// Pure function: no state, identical inputs always yield identical verdicts.
func Reconcile(saturation float64, categoryAllowed bool, categoryConfidence float64) Verdict {
	switch {
	case saturation > 120:
		confidence := 0.90
		if categoryAllowed {
			confidence = 0.95
		}

		return Verdict{Accept: true, Confidence: confidence, Rule: RuleSatHigh}

	case saturation < 30:
		return Verdict{Accept: false, Confidence: 0.95, Rule: RuleSatVeryLow}

	case saturation > 100:
		if categoryAllowed {
			return Verdict{Accept: true, Confidence: 0.75, Rule: RuleMidHighSat}
		}

		return Verdict{Accept: false, Confidence: 0.65, Rule: ReasonNotTarget}

	case saturation < 50:
		return Verdict{Accept: true, Confidence: 0.75, Rule: RuleLowSatForceAccept}

	default:
		if categoryAllowed && categoryConfidence > 0.8 {
			return Verdict{Accept: true, Confidence: categoryConfidence, Rule: RuleSvmHighConf}
		}

		confidence := 1 - categoryConfidence
		if confidence < 0.7 {
			confidence = 0.7
		}

		return Verdict{Accept: false, Confidence: confidence, Rule: ReasonNotTarget}
	}
}
