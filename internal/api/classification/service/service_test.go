package classificationService

import (
	"testing"

	"TotemIA/internal/classifier"
	"github.com/stretchr/testify/assert"
)

func TestAllowedCategoriesFromEnv(t *testing.T) {
	t.Run("defaults to every known category", func(t *testing.T) {
		t.Setenv("ALLOWED_CATEGORIES", "")

		allowed := allowedCategoriesFromEnv()

		assert.Len(t, allowed, len(classifier.CategoryLabels))
		for _, label := range classifier.CategoryLabels {
			assert.True(t, allowed[label])
		}
	})

	t.Run("parses a comma separated list with spaces", func(t *testing.T) {
		t.Setenv("ALLOWED_CATEGORIES", "Vermelho, Azul ,Verde")

		allowed := allowedCategoriesFromEnv()

		assert.Len(t, allowed, 3)
		assert.True(t, allowed["Vermelho"])
		assert.True(t, allowed["Azul"])
		assert.True(t, allowed["Verde"])
		assert.False(t, allowed["Amarelo"])
	})
}

func TestMinConfidenceFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{name: "unset falls back to default", value: "", expected: 0.7},
		{name: "valid value is used", value: "0.85", expected: 0.85},
		{name: "garbage falls back to default", value: "abc", expected: 0.7},
		{name: "out of range falls back to default", value: "1.5", expected: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MIN_CONFIDENCE", tt.value)

			assert.Equal(t, tt.expected, minConfidenceFromEnv())
		})
	}
}
