package session

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-eq/band"
)

func sineSignal(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = 0.9 * math.Sin(step*float64(i))
	}
	return out
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, 44100); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("New(nil) error = %v, want ErrEmptySignal", err)
	}
	if _, err := New([]float64{1}, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("New(rate 0) error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestInputOutputAreCopies(t *testing.T) {
	data := []float64{0.1, 0.2, 0.3}
	s, err := New(data, 44100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data[0] = 99
	if got := s.Input()[0]; got != 0.1 {
		t.Fatalf("Input()[0] = %v, want 0.1 after caller mutation", got)
	}

	out := s.Output()
	out[0] = 99
	if got := s.Output()[0]; got != 0.1 {
		t.Fatalf("Output()[0] = %v, want 0.1 after copy mutation", got)
	}
}

func TestInfo(t *testing.T) {
	s, err := New(make([]float64, 22050), 44100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	info := s.Info()
	if info.Samples != 22050 || info.SampleRate != 44100 {
		t.Fatalf("Info() = %+v", info)
	}
	if math.Abs(info.Duration-0.5) > 1e-12 {
		t.Fatalf("Duration = %v, want 0.5", info.Duration)
	}
}

func TestSpectrumPeakAtSineFrequency(t *testing.T) {
	const (
		sampleRate = 1024.0
		n          = 1024
		freq       = 64.0
	)
	s, err := New(sineSignal(freq, sampleRate, n), sampleRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	spec, err := s.Spectrum()
	if err != nil {
		t.Fatalf("Spectrum() error = %v", err)
	}
	if len(spec.Frequencies) != n/2+1 {
		t.Fatalf("bins = %d, want %d", len(spec.Frequencies), n/2+1)
	}

	peakBin := 0
	for i, m := range spec.Magnitudes {
		if m > spec.Magnitudes[peakBin] {
			peakBin = i
		}
	}
	if got := spec.Frequencies[peakBin]; got != freq {
		t.Fatalf("peak at %v Hz, want %v", got, freq)
	}
}

func TestEqualizeEmptySetIsIdentity(t *testing.T) {
	in := sineSignal(100, 1024, 1000)
	s, err := New(in, 1024)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := s.Equalize(context.Background(), nil)
	if err != nil {
		t.Fatalf("Equalize() error = %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want input %v unchanged", i, out[i], in[i])
		}
	}
}

func TestEqualizeCutRemovesComponent(t *testing.T) {
	const (
		sampleRate = 1024.0
		n          = 1024
		freq       = 64.0
	)
	s, err := New(sineSignal(freq, sampleRate, n), sampleRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	bands := []band.Band{{CenterFreq: freq, Bandwidth: 32, Gain: 0}}
	out, err := s.Equalize(context.Background(), bands)
	if err != nil {
		t.Fatalf("Equalize() error = %v", err)
	}
	if p := maxAbs(out); p > 1e-9 {
		t.Fatalf("residual peak = %v, want ~0 after full cut", p)
	}
}

func TestEqualizeStartsFromInputEveryTime(t *testing.T) {
	s, err := New(sineSignal(64, 1024, 1024), 1024)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	bands := []band.Band{{CenterFreq: 64, Bandwidth: 32, Gain: 0.5}}
	first, err := s.Equalize(context.Background(), bands)
	if err != nil {
		t.Fatalf("first Equalize() error = %v", err)
	}
	second, err := s.Equalize(context.Background(), bands)
	if err != nil {
		t.Fatalf("second Equalize() error = %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("out[%d] drifted across runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEqualizePeakLimiting(t *testing.T) {
	var warnings []string
	s, err := New(sineSignal(64, 1024, 1024), 1024, WithWarning(func(msg string) {
		warnings = append(warnings, msg)
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	bands := []band.Band{{CenterFreq: 64, Bandwidth: 64, Gain: 2}}
	out, err := s.Equalize(context.Background(), bands)
	if err != nil {
		t.Fatalf("Equalize() error = %v", err)
	}
	if p := maxAbs(out); p > 1+1e-9 {
		t.Fatalf("peak = %v, want <= 1 after limiting", p)
	}
	if len(warnings) == 0 || !strings.Contains(warnings[0], "limited") {
		t.Fatalf("warnings = %v, want peak limit warning", warnings)
	}
}

func TestReset(t *testing.T) {
	in := sineSignal(64, 1024, 1024)
	s, err := New(in, 1024)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	bands := []band.Band{{CenterFreq: 64, Bandwidth: 32, Gain: 0}}
	if _, err := s.Equalize(context.Background(), bands); err != nil {
		t.Fatalf("Equalize() error = %v", err)
	}
	s.Reset()

	out := s.Output()
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want input %v after Reset", i, out[i], in[i])
		}
	}
}

func TestObserverEvents(t *testing.T) {
	var events []Event
	s, err := New(sineSignal(64, 1024, 512), 1024, WithObserver(func(e Event) {
		events = append(events, e)
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	bands := []band.Band{{CenterFreq: 64, Bandwidth: 32, Gain: 0.5}}
	if _, err := s.Equalize(context.Background(), bands); err != nil {
		t.Fatalf("Equalize() error = %v", err)
	}
	s.Reset()

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Op != "equalize" || events[0].Bands != 1 {
		t.Fatalf("first event = %+v", events[0])
	}
	if events[1].Op != "reset" {
		t.Fatalf("second event = %+v", events[1])
	}
}

func TestClosedSessionRejectsProcessing(t *testing.T) {
	s, err := New(sineSignal(64, 1024, 256), 1024)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if _, err := s.Equalize(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("Equalize() error = %v, want ErrClosed", err)
	}
	if _, err := s.Spectrum(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Spectrum() error = %v, want ErrClosed", err)
	}
	if got := len(s.Input()); got != 256 {
		t.Fatalf("Input() length = %d, want readable after Close", got)
	}
}

func maxAbs(data []float64) float64 {
	m := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > m {
			m = av
		}
	}
	return m
}
