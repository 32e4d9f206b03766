package curve

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/band"
)

func TestSynthesizeSingleBand(t *testing.T) {
	bands := []band.Band{{CenterFreq: 100, Bandwidth: 150, Gain: 1.5}}
	axis := []float64{25, 100, 175, 500}

	got := Synthesize(bands, axis)
	want := []float64{1, 1.5, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gain[%d] at %v Hz = %v, want %v", i, axis[i], got[i], want[i])
		}
	}
}

func TestSynthesizeEmptySetIsIdentity(t *testing.T) {
	axis := LinearAxis(64, 8000)
	got := Synthesize(nil, axis)
	for i, g := range got {
		if g != 1 {
			t.Fatalf("gain[%d] = %v, want 1 for empty band set", i, g)
		}
	}
}

func TestAtCenterIsExactGain(t *testing.T) {
	bands := []band.Band{{CenterFreq: 440, Bandwidth: 100, Gain: 1.75}}
	if got := At(bands, 440); got != 1.75 {
		t.Fatalf("At(center) = %v, want 1.75", got)
	}
}

func TestAtEdgeIsExactlyUnity(t *testing.T) {
	bands := []band.Band{{CenterFreq: 1000, Bandwidth: 400, Gain: 2}}
	for _, f := range []float64{800, 1200} {
		if got := At(bands, f); got != 1 {
			t.Fatalf("At(%v) = %v, want exactly 1 at band edge", f, got)
		}
	}
}

func TestAtOverlapMultiplies(t *testing.T) {
	bands := []band.Band{
		{CenterFreq: 1000, Bandwidth: 800, Gain: 1.5},
		{CenterFreq: 1000, Bandwidth: 600, Gain: 1.5},
	}
	if got, want := At(bands, 1000), 2.25; math.Abs(got-want) > 1e-12 {
		t.Fatalf("At(1000) = %v, want %v", got, want)
	}
}

func TestAtCommutative(t *testing.T) {
	a := band.Band{CenterFreq: 900, Bandwidth: 500, Gain: 1.3}
	b := band.Band{CenterFreq: 1100, Bandwidth: 500, Gain: 0.7}
	axis := LinearAxis(256, 4000)

	fwd := Synthesize([]band.Band{a, b}, axis)
	rev := Synthesize([]band.Band{b, a}, axis)
	for i := range fwd {
		if fwd[i] != rev[i] {
			t.Fatalf("gain[%d]: insertion order changed result: %v vs %v", i, fwd[i], rev[i])
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	bands := []band.Band{
		{CenterFreq: 100, Bandwidth: 160, Gain: 1.8},
		{CenterFreq: 1000, Bandwidth: 1600, Gain: 0.4},
	}
	axis := LinearAxis(512, 44100)

	first := Synthesize(bands, axis)
	second := Synthesize(bands, axis)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("gain[%d] differs across runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestAtTaperIsRaisedCosine(t *testing.T) {
	bands := []band.Band{{CenterFreq: 500, Bandwidth: 200, Gain: 2}}
	// Halfway to the edge: smooth = cos(pi/4).
	want := 1 + math.Cos(math.Pi/4)
	if got := At(bands, 550); math.Abs(got-want) > 1e-12 {
		t.Fatalf("At(550) = %v, want %v", got, want)
	}
}

func TestAtSkipsDegenerateBandwidth(t *testing.T) {
	bands := []band.Band{{CenterFreq: 1000, Bandwidth: 0.5, Gain: 2}}
	if got := At(bands, 1000); got != 1 {
		t.Fatalf("At(center) = %v, want 1 for sub-minimum bandwidth", got)
	}
}

func TestAtCutToZero(t *testing.T) {
	bands := []band.Band{{CenterFreq: 60, Bandwidth: 40, Gain: 0}}
	if got := At(bands, 60); got != 0 {
		t.Fatalf("At(center) = %v, want 0 for full cut", got)
	}
}

func TestBroadband(t *testing.T) {
	bands := []band.Band{
		{CenterFreq: 100, Bandwidth: 100, Gain: 1.5},
		{CenterFreq: 5000, Bandwidth: 100, Gain: 2},
		{CenterFreq: 300, Bandwidth: 0, Gain: 0.1},
	}
	if got := Broadband(bands); got != 3 {
		t.Fatalf("Broadband() = %v, want 3", got)
	}
	if got := Broadband(nil); got != 1 {
		t.Fatalf("Broadband(nil) = %v, want 1", got)
	}
}

func BenchmarkSynthesizeInto(b *testing.B) {
	bands := []band.Band{
		{CenterFreq: 100, Bandwidth: 160, Gain: 1.5},
		{CenterFreq: 1000, Bandwidth: 1600, Gain: 0.8},
		{CenterFreq: 8000, Bandwidth: 8000, Gain: 1.2},
	}
	axis := LinearAxis(4097, 44100)
	dst := make([]float64, len(axis))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		SynthesizeInto(dst, bands, axis)
	}
}
