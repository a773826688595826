package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{2.0, "2"},
		{0, "0"},
		{100, "100"},
		{0.5, "1/2"},
		{1.5, "1 1/2"},
		{0.125, "1/8"},
		{0.25, "1/4"},
		{2.75, "2 3/4"},
		{1.0 / 3, "1/3"},
		{2.0 / 3, "2/3"},
		{1 + 2.0/3, "1 2/3"},
		{0.2, "0.2"},
		{1.1, "1.1"},
		{0.05, "0.05"},
		{2.456, "2.46"},
		{3.999, "4"},
		{0.001, "0"},
		{-1.5, "-1 1/2"},
		{-0.001, "0"},
		{-0.004, "0"},
		{-0.05, "-0.05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount), "FormatAmount(%v)", tt.amount)
	}
}

func TestFormatAmountIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "1 1/4", FormatAmount(1.25))
	}
}
