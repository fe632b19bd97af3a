package renderer

import (
	"time"

	"github.com/google/uuid"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	ID               uuid.UUID     // Identifies the render in logs
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	SamplesPerPixel  int           // Samples taken for every pixel
	MaxDepth         int           // Bounce limit
	Workers          int           // Number of render goroutines
	Elapsed          time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the output in [0, 1]
}

// SamplesPerSecond returns the sampling throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}
