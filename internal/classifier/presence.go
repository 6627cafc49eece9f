package classifier

// PresenceClassifier is the stage-1 gate: is there a cap in the frame at
// all. The verdict is the argmax of the binary ensemble; an exact tie fails
// closed to absent.
type PresenceClassifier struct {
	ensemble *Ensemble
}

func NewPresenceClassifier(ensemble *Ensemble) *PresenceClassifier {
	return &PresenceClassifier{ensemble: ensemble}
}

func (p *PresenceClassifier) IsPresent(features FeatureVector) (bool, float64, error) {
	probs, err := p.ensemble.Score(features)
	if err != nil {
		return false, 0, err
	}

	present := probs.Prob(LabelPresent)
	absent := probs.Prob(LabelAbsent)

	return present > absent, present, nil
}
