package rewardsService

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeVoucherCode(t *testing.T) {
	tests := []struct {
		name         string
		redemptionID string
		expected     string
	}{
		{
			name:         "long ULID keeps the last eight characters",
			redemptionID: "01HXYZABCDEF123456789XYZAB",
			expected:     "TAMPS-789XYZAB",
		},
		{
			name:         "short id is used as-is",
			redemptionID: "ABC123",
			expected:     "TAMPS-ABC123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, makeVoucherCode(tt.redemptionID))
		})
	}
}
