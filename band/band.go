package band

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// Valid ranges for band fields. Frequencies are in Hz, gain is a linear
// amplitude multiplier (1 = unity, 0 = mute, 2 = double amplitude).
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
	MinBandwidth = 1.0
	MaxBandwidth = 20000.0
	MinGain      = 0.0
	MaxGain      = 2.0
)

// Defaults used when a Spec omits a field.
const (
	DefaultCenterFreq = 1000.0
	DefaultBandwidth  = 500.0
	DefaultGain       = 1.0
)

// Band is one adjustable frequency region. Bandwidth is the full width of
// the affected region, symmetric around CenterFreq; the lower edge may
// extend below 0 Hz and is clamped to 0 only for range computation.
type Band struct {
	ID         int     `json:"id"`
	CenterFreq float64 `json:"centerFrequency"`
	Bandwidth  float64 `json:"bandwidth"`
	Gain       float64 `json:"gain"`
	Label      string  `json:"label"`
}

// HalfWidth returns Bandwidth/2.
func (b Band) HalfWidth() float64 {
	return b.Bandwidth / 2
}

// LowEdge returns the lower frequency edge, clamped to 0.
func (b Band) LowEdge() float64 {
	return math.Max(0, b.CenterFreq-b.Bandwidth/2)
}

// HighEdge returns the upper frequency edge.
func (b Band) HighEdge() float64 {
	return b.CenterFreq + b.Bandwidth/2
}

// Contains reports whether frequency f lies within the band's region.
func (b Band) Contains(f float64) bool {
	return math.Abs(f-b.CenterFreq) <= b.Bandwidth/2
}

// Spec is partial band data for Add and Update. Nil fields keep the
// existing value (Update) or take the package default (Add).
type Spec struct {
	CenterFreq *float64
	Bandwidth  *float64
	Gain       *float64
	Label      *string
}

// Freq returns a Spec field pointer for literal values.
func Freq(v float64) *float64 { return &v }

// Width returns a Spec field pointer for literal values.
func Width(v float64) *float64 { return &v }

// Gain returns a Spec field pointer for literal values.
func Gain(v float64) *float64 { return &v }

// Label returns a Spec field pointer for literal values.
func Label(v string) *string { return &v }

func (s Spec) validate() error {
	if s.CenterFreq != nil && !isFinite(*s.CenterFreq) {
		return fmt.Errorf("%w: centerFrequency = %v", ErrInvalidField, *s.CenterFreq)
	}
	if s.Bandwidth != nil && !isFinite(*s.Bandwidth) {
		return fmt.Errorf("%w: bandwidth = %v", ErrInvalidField, *s.Bandwidth)
	}
	if s.Gain != nil && !isFinite(*s.Gain) {
		return fmt.Errorf("%w: gain = %v", ErrInvalidField, *s.Gain)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClampWarning describes a numeric field that was clamped into its valid
// range during an add or update.
type ClampWarning struct {
	BandID  int
	Field   string
	Value   float64
	Clamped float64
}

func (w ClampWarning) String() string {
	return fmt.Sprintf("band %d: %s %v clamped to %v", w.BandID, w.Field, w.Value, w.Clamped)
}

// clampField limits v to [lo, hi] and reports the clamp through warn.
func clampField(id int, field string, v, lo, hi float64, warn func(ClampWarning)) float64 {
	c := core.Clamp(v, lo, hi)
	if c != v && warn != nil {
		warn(ClampWarning{BandID: id, Field: field, Value: v, Clamped: c})
	}
	return c
}
