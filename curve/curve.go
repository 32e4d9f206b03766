package curve

import (
	"math"

	"github.com/cwbudde/algo-eq/band"
)

// Synthesize computes one gain multiplier per axis frequency. An empty
// band list yields the identity curve (all 1.0). Axis entries may be in
// any order and any spacing; each output value depends only on the band
// list and the single corresponding input frequency.
func Synthesize(bands []band.Band, axis []float64) []float64 {
	if len(axis) == 0 {
		return nil
	}
	out := make([]float64, len(axis))
	SynthesizeInto(out, bands, axis)
	return out
}

// SynthesizeInto is the allocation-free variant of Synthesize. dst and
// axis must have the same length.
func SynthesizeInto(dst []float64, bands []band.Band, axis []float64) {
	for i, f := range axis {
		dst[i] = At(bands, f)
	}
}

// At computes the composed gain at a single frequency.
//
// Bands narrower than band.MinBandwidth are skipped entirely: a
// zero-width band would affect only a bin whose frequency matches the
// center exactly, and floating-point equality is too unreliable to carry
// that semantic. The skip also keeps halfWidth away from zero in the
// normalization below.
//
// The comparison against halfWidth is inclusive, so a frequency exactly
// on the band edge gets exactly 1.0 rather than 1 + (g-1)*cos(pi/2).
func At(bands []band.Band, f float64) float64 {
	g := 1.0
	for _, b := range bands {
		if b.Bandwidth < band.MinBandwidth {
			continue
		}
		halfWidth := b.Bandwidth / 2
		distance := math.Abs(f - b.CenterFreq)
		if distance >= halfWidth {
			continue
		}
		smooth := math.Cos(distance / halfWidth * math.Pi / 2)
		g *= 1 + (b.Gain-1)*smooth
	}
	return g
}

// Broadband collapses the multiplicative composition to a single scalar:
// the product of every effective band's full gain. It is the degenerate
// time-domain case used to preview a sample region at candidate gains,
// where no frequency axis is involved.
func Broadband(bands []band.Band) float64 {
	g := 1.0
	for _, b := range bands {
		if b.Bandwidth < band.MinBandwidth {
			continue
		}
		g *= b.Gain
	}
	return g
}
