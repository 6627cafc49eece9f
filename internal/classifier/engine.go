package classifier

// Decision is the final answer for one frame. Reason carries the policy
// outcome (Accepted is true exactly when Reason is ELIGIBLE); Rule carries
// the saturation-zone code that produced the provisional verdict, kept for
// downstream telemetry and the gate controller.
type Decision struct {
	Accepted      bool                `json:"accepted"`
	Category      string              `json:"category,omitempty"`
	Confidence    float64             `json:"confidence"`
	Reason        ReasonCode          `json:"reason"`
	Rule          ReasonCode          `json:"rule,omitempty"`
	Saturation    float64             `json:"saturation"`
	Probabilities *ClassProbabilities `json:"probabilities,omitempty"`
}

// Engine orchestrates extraction, the two classification stages, the
// heuristic reconciler and the policy gates. All fields are read-only after
// construction; Evaluate is safe to call from any number of workers.
type Engine struct {
	extractor *Extractor
	presence  *PresenceClassifier
	category  *CategoryClassifier
}

// NewEngine builds an engine from a validated bundle. A bundle without a
// presence model runs single-stage: every frame is treated as present and
// only the category stage plus the saturation table decide.
func NewEngine(bundle *ModelBundle) *Engine {
	e := &Engine{
		extractor: NewExtractor(),
		category:  NewCategoryClassifier(bundle.Category),
	}

	if bundle.Presence != nil {
		e.presence = NewPresenceClassifier(bundle.Presence)
	}

	return e
}

// Evaluate runs the full pipeline on one frame. It never panics and never
// returns an error: every failure mode collapses into a rejecting Decision
// with the matching reason code.
func (e *Engine) Evaluate(frame []byte, allowed map[string]bool, minConfidence float64) Decision {
	features, saturation, err := e.extractor.Extract(frame)
	if err != nil {
		return Decision{Reason: ReasonInvalidImage, Confidence: 0}
	}

	if e.presence != nil {
		present, confidence, err := e.presence.IsPresent(features)
		if err != nil {
			return Decision{Reason: ReasonInvalidImage, Confidence: 0, Saturation: saturation}
		}

		if !present {
			return Decision{
				Reason:     ReasonNotTarget,
				Confidence: confidence,
				Saturation: saturation,
			}
		}
	}

	probs, err := e.category.Classify(features)
	if err != nil {
		return Decision{Reason: ReasonInvalidImage, Confidence: 0, Saturation: saturation}
	}

	category, categoryConfidence := probs.ArgMax()
	verdict := Reconcile(saturation, allowed[category], categoryConfidence)

	decision := Decision{
		Category:      category,
		Confidence:    verdict.Confidence,
		Rule:          verdict.Rule,
		Saturation:    saturation,
		Probabilities: &probs,
	}

	if !verdict.Accept {
		decision.Reason = ReasonNotTarget
		return decision
	}

	// Policy gates run after the reconciler and only ever downgrade.
	switch {
	case !allowed[category]:
		decision.Reason = ReasonNonAllowedCategory
	case verdict.Confidence < minConfidence:
		decision.Reason = ReasonLowConfidence
	default:
		decision.Accepted = true
		decision.Reason = ReasonEligible
	}

	return decision
}
