package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundUpTo10(t *testing.T) {
	tests := []struct {
		mean float64
		want float64
	}{
		{0, 0},
		{1, 10},
		{10, 10},
		{10.1, 20},
		{4333.333333, 4340},
		{9999.99, 10000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundUpTo10(tt.mean), "mean %v", tt.mean)
	}
}
