package session

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-eq/band"
	"github.com/cwbudde/algo-eq/curve"
)

// Equalize applies the band set to the original input and stores the
// result as the session output. Processing always starts from the input,
// never from the previous output, so calling Equalize twice with the
// same bands yields the same result.
//
// With no effective bands the output is a plain copy of the input; the
// transform round trip is skipped entirely so the identity holds
// bit-for-bit.
func (s *Session) Equalize(ctx context.Context, bands []band.Band) ([]float64, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !anyEffective(bands) {
		copy(s.output, s.input)
		s.emit(Event{Op: "equalize", Bands: len(bands), Peak: peak(s.output)})
		return s.Output(), nil
	}

	a, err := s.ensureAnalysis()
	if err != nil {
		return nil, err
	}

	if s.remote != nil {
		if out, ok := s.tryRemote(ctx, a, bands); ok {
			s.finish(out, len(bands))
			return s.Output(), nil
		}
	}

	out, err := s.equalizeLocal(a, bands)
	if err != nil {
		return nil, err
	}
	s.finish(out, len(bands))
	return s.Output(), nil
}

// equalizeLocal runs the frequency-domain pipeline in process. Gains are
// evaluated per full-spectrum bin; bins above Nyquist mirror their
// conjugate partner's frequency so the inverse transform stays real.
func (s *Session) equalizeLocal(a *analysis, bands []band.Band) ([]float64, error) {
	shaped := make([]complex128, a.fftSize)
	for k := range shaped {
		m := k
		if k > a.fftSize/2 {
			m = a.fftSize - k
		}
		f := float64(m) * s.sampleRate / float64(a.fftSize)
		shaped[k] = a.bins[k] * complex(curve.At(bands, f), 0)
	}

	timeDomain := make([]complex128, a.fftSize)
	if err := a.plan.Inverse(timeDomain, shaped); err != nil {
		return nil, fmt.Errorf("session: inverse FFT failed: %w", err)
	}

	out := make([]float64, len(s.input))
	for i := range out {
		out[i] = real(timeDomain[i])
	}
	return out, nil
}

// tryRemote delegates to the configured processor. Any failure is
// reported through the warning callback and answered with ok=false so
// the caller falls back to local processing.
func (s *Session) tryRemote(ctx context.Context, a *analysis, bands []band.Band) ([]float64, bool) {
	gains := curve.Synthesize(bands, curve.LinearAxis(a.fftSize/2+1, s.sampleRate))

	out, err := s.remote.Process(ctx, s.input, gains, s.sampleRate, bands)
	if err != nil {
		s.warnf("remote processing failed, falling back to local: %v", err)
		return nil, false
	}
	if len(out) != len(s.input) {
		s.warnf("remote returned %d samples, want %d, falling back to local", len(out), len(s.input))
		return nil, false
	}
	return out, true
}

// finish peak-limits the processed signal and publishes it as the
// session output. Limiting only engages above full scale, so unity-gain
// processing passes through untouched.
func (s *Session) finish(out []float64, bands int) {
	p := peak(out)
	if p > 1 {
		scale := 1 / p
		for i := range out {
			out[i] *= scale
		}
		s.warnf("output peak %.3f exceeds full scale, limited", p)
		p = 1
	}
	copy(s.output, out)
	s.emit(Event{Op: "equalize", Bands: bands, Peak: p})
}

func anyEffective(bands []band.Band) bool {
	for _, b := range bands {
		if b.Bandwidth >= band.MinBandwidth {
			return true
		}
	}
	return false
}
