package classifier

// CategoryClassifier is stage 2: the full color distribution over the
// closed label set. Only consulted after the presence gate passed.
type CategoryClassifier struct {
	ensemble *Ensemble
}

func NewCategoryClassifier(ensemble *Ensemble) *CategoryClassifier {
	return &CategoryClassifier{ensemble: ensemble}
}

func (c *CategoryClassifier) Classify(features FeatureVector) (ClassProbabilities, error) {
	return c.ensemble.Score(features)
}

func (c *CategoryClassifier) Labels() []string {
	return c.ensemble.Labels
}
