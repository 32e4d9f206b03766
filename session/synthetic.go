package session

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
)

// Synthetic creates a session over a generated test signal: the sum of
// equal-amplitude sine components at the given frequencies, normalized to
// a 0.95 peak so there is headroom for boosts. Useful for exercising the
// pipeline without loading a file.
func Synthetic(freqs []float64, duration, sampleRate float64, opts ...Option) (*Session, error) {
	if len(freqs) == 0 {
		return nil, ErrNoFrequencies
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	samples := int(math.Round(duration * sampleRate))
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %v at %v Hz yields no samples", ErrInvalidDuration, duration, sampleRate)
	}

	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	sum := make([]float64, samples)
	for _, f := range freqs {
		component, err := gen.Sine(f, 1, samples)
		if err != nil {
			return nil, fmt.Errorf("session: generate %v Hz component: %w", f, err)
		}
		for i, v := range component {
			sum[i] += v
		}
	}

	normalized, err := signal.Normalize(sum, 0.95)
	if err != nil {
		return nil, fmt.Errorf("session: normalize synthetic signal: %w", err)
	}
	return New(normalized, sampleRate, opts...)
}
