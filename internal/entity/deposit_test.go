package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsForCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		expected int
	}{
		{name: "common color earns base points", category: "Vermelho", expected: 5},
		{name: "rare color earns more", category: "Laranja", expected: 8},
		{name: "transparent is the most valuable", category: "Transparente", expected: 10},
		{name: "unknown category falls back to base points", category: "Dourado", expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PointsForCategory(tt.category))
		})
	}
}

func TestIsValidCapCategory(t *testing.T) {
	assert.True(t, IsValidCapCategory("Azul"))
	assert.True(t, IsValidCapCategory("Transparente"))
	assert.False(t, IsValidCapCategory("Dourado"))
	assert.False(t, IsValidCapCategory(""))
}
