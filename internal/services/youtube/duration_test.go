package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"PT1H30M45S", "1h 30m"},
		{"PT45S", "45s"},
		{"PT12M", "12m"},
		{"PT4M13S", "4m 13s"},
		{"PT2H", "2h"},
		{"PT1H0M5S", "1h"},
		{"PT0S", "0m"},
		{"PT", "0m"},
		{"PT05M", "5m"},
		{"", "Unknown"},
		{"garbage", "Unknown"},
		{"P1DT2H", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.input))
		})
	}
}
