package curve

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// ApplyToMagnitude multiplies a magnitude spectrum by a gain curve,
// element by element, returning a fresh slice. Both slices must have the
// same length.
func ApplyToMagnitude(magnitude, gains []float64) ([]float64, error) {
	if len(magnitude) != len(gains) {
		return nil, fmt.Errorf("magnitude and gain lengths differ: %d vs %d", len(magnitude), len(gains))
	}
	out := make([]float64, len(magnitude))
	vecmath.MulBlock(out, magnitude, gains)
	return out, nil
}

// ApplyUniform scales samples[start:end] by a single gain and returns the
// result as a fresh slice; samples outside the region are copied
// unchanged. Indices follow slice conventions: start inclusive, end
// exclusive, and must satisfy 0 <= start <= end <= len(samples).
func ApplyUniform(samples []float64, start, end int, gain float64) ([]float64, error) {
	if start < 0 || end < start || end > len(samples) {
		return nil, fmt.Errorf("region [%d, %d) out of range for %d samples", start, end, len(samples))
	}
	out := make([]float64, len(samples))
	copy(out, samples)
	vecmath.ScaleBlock(out[start:end], out[start:end], gain)
	return out, nil
}
