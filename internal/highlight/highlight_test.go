package highlight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositivity(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"3.99%", Green},
		{"0.00%", Green},
		{"4.00%", Red},
		{"27.31%", Red},
		{"nan%", Neutral},
		{"n/a", Neutral},
		{"abc", Neutral},
		{"%", Neutral},
		{"", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Positivity(tt.in))
		})
	}
}

func TestCaseRate(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"24", Green},
		{"24.99", Green},
		{"25", Amber},
		{"149", Amber},
		{"150", Red},
		{"1523.4", Red},
		{"", Neutral},
		{"NaN", Neutral},
		{"high", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CaseRate(tt.in))
		})
	}
}

func TestValueRules(t *testing.T) {
	assert.Equal(t, Neutral, PositivityValue(math.NaN()))
	assert.Equal(t, Neutral, CaseRateValue(math.NaN()))
	assert.Equal(t, Amber, CaseRateValue(25))
}

func TestCSS(t *testing.T) {
	assert.Equal(t, "background-color: lightcoral", Red.CSS())
	assert.Equal(t, "background-color: white", Neutral.CSS())
}
