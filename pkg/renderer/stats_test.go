package renderer

import (
	"testing"
	"time"
)

func TestRenderStats_SamplesPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		stats    RenderStats
		expected float64
	}{
		{"two seconds", RenderStats{TotalSamples: 1000, Elapsed: 2 * time.Second}, 500},
		{"sub second", RenderStats{TotalSamples: 10, Elapsed: 100 * time.Millisecond}, 100},
		{"zero elapsed", RenderStats{TotalSamples: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.SamplesPerSecond(); got < tt.expected-1e-6 || got > tt.expected+1e-6 {
				t.Errorf("Expected %f samples/s, got %f", tt.expected, got)
			}
		})
	}
}
