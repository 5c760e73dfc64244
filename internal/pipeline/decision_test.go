package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonFor(t *testing.T) {
	tests := []struct {
		want        string
		probability float64
	}{
		{"extremely atypical amount or pattern", 0.95},
		{"extremely atypical amount or pattern", 0.9000001},
		{"transaction outside normal behavior", 0.90}, // strict bound
		{"transaction outside normal behavior", 0.75},
		{"unusual or repetitive activity", 0.70},
		{"unusual or repetitive activity", 0.60},
		{"transaction at unusual time or channel", 0.50},
		{"transaction at unusual time or channel", 0.40},
		{"moderately high amount", 0.30},
		{"moderately high amount", 0.20},
		{"low risk", 0.15},
		{"low risk", 0.01},
		{"low risk", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReasonFor(tt.probability), "probability %v", tt.probability)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		wantReason  string
		probability float64
		threshold   float64
		wantVerdict bool
	}{
		{
			name:        "above threshold gets a reason",
			probability: 0.95,
			threshold:   0.5,
			wantVerdict: true,
			wantReason:  "extremely atypical amount or pattern",
		},
		{
			name:        "exactly at threshold is suspicious",
			probability: 0.5,
			threshold:   0.5,
			wantVerdict: true,
			wantReason:  "transaction at unusual time or channel",
		},
		{
			name:        "below threshold has no reason",
			probability: 0.49,
			threshold:   0.5,
			wantVerdict: false,
			wantReason:  "",
		},
		{
			// Bands read raw probability, not the threshold: detection
			// sensitivity and explanation granularity are decoupled.
			name:        "very low threshold can flag a low-risk record",
			probability: 0.05,
			threshold:   0.01,
			wantVerdict: true,
			wantReason:  "low risk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reason := Decide(tt.probability, tt.threshold)
			assert.Equal(t, tt.wantVerdict, verdict)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
