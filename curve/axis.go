package curve

import "math"

// LinearAxis returns the frequencies of a one-sided spectrum with
// binCount bins at the given sample rate: bin i sits at
// i*sampleRate/(2*(binCount-1)), spanning DC to Nyquist inclusive.
func LinearAxis(binCount int, sampleRate float64) []float64 {
	if binCount <= 0 {
		return nil
	}
	axis := make([]float64, binCount)
	if binCount == 1 {
		return axis
	}
	step := sampleRate / 2 / float64(binCount-1)
	for i := range axis {
		axis[i] = float64(i) * step
	}
	return axis
}

// LogAxis returns points frequencies spaced logarithmically from fMin to
// fMax inclusive. Useful for plotting a curve the way hearing perceives
// it. fMin and fMax must be positive.
func LogAxis(fMin, fMax float64, points int) []float64 {
	if points <= 0 || fMin <= 0 || fMax <= 0 {
		return nil
	}
	axis := make([]float64, points)
	if points == 1 {
		axis[0] = fMin
		return axis
	}
	ratio := math.Log(fMax/fMin) / float64(points-1)
	for i := range axis {
		axis[i] = fMin * math.Exp(float64(i)*ratio)
	}
	axis[points-1] = fMax
	return axis
}
