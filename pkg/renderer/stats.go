package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	Tiles           int           // Number of non-empty tiles rendered
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Camera rays per pixel
	TotalSamples    int           // Total number of camera rays traced
	Workers         int           // Maximum tiles allowed in flight
	PeakInFlight    int           // Maximum tiles actually in flight at once
	Duration        time.Duration // Wall time of the render
}

// SamplesPerSecond returns camera rays traced per second of wall time
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}
