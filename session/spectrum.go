package session

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"
	"github.com/cwbudde/algo-eq/curve"
)

// Spectrum is the one-sided spectrum of the session input, DC through
// Nyquist of the zero-padded transform.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
	Phases      []float64
}

// analysis caches the forward transform of the zero-padded input along
// with the plan used to produce it, so Equalize can reuse both.
type analysis struct {
	plan    *algofft.Plan[complex128]
	fftSize int
	bins    []complex128
}

// Spectrum returns the input spectrum, computing and caching it on first
// use. The input is zero-padded to the next power of two before the
// transform.
func (s *Session) Spectrum() (Spectrum, error) {
	a, err := s.ensureAnalysis()
	if err != nil {
		return Spectrum{}, err
	}

	oneSided := a.bins[:a.fftSize/2+1]
	return Spectrum{
		Frequencies: curve.LinearAxis(len(oneSided), s.sampleRate),
		Magnitudes:  spectrum.Magnitude(oneSided),
		Phases:      spectrum.Phase(oneSided),
	}, nil
}

func (s *Session) ensureAnalysis() (*analysis, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.spec != nil {
		return s.spec, nil
	}

	fftSize := nextPowerOf2(len(s.input))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("session: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range s.input {
		padded[i] = complex(v, 0)
	}

	bins := make([]complex128, fftSize)
	if err := plan.Forward(bins, padded); err != nil {
		return nil, fmt.Errorf("session: forward FFT failed: %w", err)
	}

	s.spec = &analysis{plan: plan, fftSize: fftSize, bins: bins}
	return s.spec, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
