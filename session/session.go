package session

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/band"
)

// Processor handles a prepared equalization job out of process. gains
// holds one multiplier per one-sided spectrum bin. Implementations must
// return a signal of the same length as samples.
type Processor interface {
	Process(ctx context.Context, samples, gains []float64, sampleRate float64, bands []band.Band) ([]float64, error)
}

// Option configures a Session.
type Option func(*Session)

// WithProcessor delegates Equalize to an external processor. Any
// processor failure falls back to local processing; the failure is
// reported through the warning callback, never as an error.
func WithProcessor(p Processor) Option {
	return func(s *Session) {
		s.remote = p
	}
}

// WithWarning registers a callback for non-fatal conditions such as
// remote fallback or peak limiting.
func WithWarning(fn func(string)) Option {
	return func(s *Session) {
		s.warn = fn
	}
}

// WithObserver registers a callback fired after every state-changing
// operation.
func WithObserver(fn func(Event)) Option {
	return func(s *Session) {
		s.observe = fn
	}
}

// OnUpdate registers the observer callback after construction,
// replacing any previously registered one. Pass nil to unregister.
func (s *Session) OnUpdate(fn func(Event)) {
	s.observe = fn
}

// Event describes a completed session operation.
type Event struct {
	Op    string  // "equalize" or "reset"
	Bands int     // bands applied, 0 for reset
	Peak  float64 // output peak after the operation
}

// Info summarizes a session's signal.
type Info struct {
	Samples    int
	SampleRate float64
	Duration   float64 // seconds
}

// Session owns one immutable input signal and the most recent processed
// output derived from it.
type Session struct {
	input      []float64
	output     []float64
	sampleRate float64

	spec *analysis // cached forward transform of the input

	remote  Processor
	warn    func(string)
	observe func(Event)
	closed  bool
}

// New creates a session over a copy of samples. The session keeps its
// own copies of input and output, so the caller may reuse the slice.
func New(samples []float64, sampleRate float64, opts ...Option) (*Session, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	s := &Session{
		input:      append([]float64(nil), samples...),
		output:     append([]float64(nil), samples...),
		sampleRate: sampleRate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Input returns a copy of the original signal.
func (s *Session) Input() []float64 {
	return append([]float64(nil), s.input...)
}

// Output returns a copy of the most recent processed signal. Before any
// Equalize call it equals the input.
func (s *Session) Output() []float64 {
	return append([]float64(nil), s.output...)
}

// Info returns signal metadata.
func (s *Session) Info() Info {
	return Info{
		Samples:    len(s.input),
		SampleRate: s.sampleRate,
		Duration:   float64(len(s.input)) / s.sampleRate,
	}
}

// Reset discards all processing; the output becomes the input again. The
// cached input spectrum survives, it only depends on the input.
func (s *Session) Reset() {
	copy(s.output, s.input)
	s.emit(Event{Op: "reset", Peak: peak(s.output)})
}

// Close releases the cached transform state. Input and Output remain
// readable; Spectrum and Equalize return ErrClosed afterwards. Closing
// twice is a no-op.
func (s *Session) Close() error {
	s.closed = true
	s.spec = nil
	return nil
}

func (s *Session) warnf(format string, args ...any) {
	if s.warn != nil {
		s.warn(fmt.Sprintf(format, args...))
	}
}

func (s *Session) emit(e Event) {
	if s.observe != nil {
		s.observe(e)
	}
}

func peak(data []float64) float64 {
	m := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > m {
			m = av
		}
	}
	return m
}
