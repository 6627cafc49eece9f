package classifier

import "sort"

// Layout identifies the feature vector contract an engine was built against.
// Models trained on one layout must never score vectors from another.
type Layout string

const LayoutColorShape24 Layout = "color_shape_24"

func (l Layout) Size() int {
	if l == LayoutColorShape24 {
		return 24
	}

	return 0
}

// FeatureCount is the length of the LayoutColorShape24 vector:
// rgb mean/std/median (9), hsv mean/std/median (9), then the shape block
// area/10000, perimeter/1000, circularity, aspect ratio, solidity,
// hull area/10000 (6).
const FeatureCount = 24

type FeatureVector []float64

const (
	LabelAbsent  = "ausente"
	LabelPresent = "presente"
)

// CategoryLabels is the closed set of cap colors the category stage knows.
var CategoryLabels = []string{
	"Vermelho",
	"Azul",
	"Verde",
	"Amarelo",
	"Branco",
	"Preto",
	"Laranja",
	"Rosa",
	"Roxo",
	"Marrom",
	"Cinza",
	"Transparente",
}

type ClassProbabilities struct {
	Labels []string  `json:"labels"`
	Probs  []float64 `json:"probs"`
}

type ClassScore struct {
	Label string  `json:"label"`
	Prob  float64 `json:"prob"`
}

func (c ClassProbabilities) ArgMax() (string, float64) {
	if len(c.Labels) == 0 {
		return "", 0
	}

	best := 0
	for i := 1; i < len(c.Probs); i++ {
		if c.Probs[i] > c.Probs[best] {
			best = i
		}
	}

	return c.Labels[best], c.Probs[best]
}

func (c ClassProbabilities) Prob(label string) float64 {
	for i, l := range c.Labels {
		if l == label {
			return c.Probs[i]
		}
	}

	return 0
}

// TopK returns the k highest-probability labels, best first. Diagnostic
// only, it never feeds back into a decision.
func (c ClassProbabilities) TopK(k int) []ClassScore {
	scores := make([]ClassScore, len(c.Labels))
	for i := range c.Labels {
		scores[i] = ClassScore{Label: c.Labels[i], Prob: c.Probs[i]}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Prob > scores[j].Prob
	})

	if k > len(scores) {
		k = len(scores)
	}

	return scores[:k]
}
