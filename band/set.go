package band

import "fmt"

// Option configures a Set.
type Option func(*Set)

// WithClampWarning registers a callback fired whenever an out-of-range
// numeric field is clamped into its valid range. Clamping is non-fatal;
// the callback exists so callers can log it.
func WithClampWarning(fn func(ClampWarning)) Option {
	return func(s *Set) {
		s.warn = fn
	}
}

// Set is an ordered collection of bands. Insertion order is display order
// only; gain composition is commutative. Ids are assigned at creation and
// never reused for the lifetime of the set.
type Set struct {
	bands  []Band
	nextID int
	warn   func(ClampWarning)
}

// NewSet creates an empty band set.
func NewSet(opts ...Option) *Set {
	s := &Set{nextID: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// DefaultSet creates a set pre-seeded with Bass, Mid, and Treble bands at
// unity gain.
func DefaultSet(opts ...Option) *Set {
	s := NewSet(opts...)
	seed := []struct {
		center, width float64
		label         string
	}{
		{100, 160, "Bass"},
		{1000, 1600, "Mid"},
		{8000, 8000, "Treble"},
	}
	for _, p := range seed {
		// Seed values are in range by construction; Add cannot fail here.
		_, _ = s.Add(Spec{CenterFreq: Freq(p.center), Bandwidth: Width(p.width), Label: Label(p.label)})
	}
	return s
}

// Add appends a new band built from spec, filling missing fields with
// defaults and assigning a fresh id. Non-finite numeric fields are
// rejected with ErrInvalidField; out-of-range finite values are clamped
// so that stored bands always satisfy the model invariants.
func (s *Set) Add(spec Spec) (Band, error) {
	if err := spec.validate(); err != nil {
		return Band{}, err
	}

	b := Band{
		ID:         s.nextID,
		CenterFreq: DefaultCenterFreq,
		Bandwidth:  DefaultBandwidth,
		Gain:       DefaultGain,
	}
	if spec.CenterFreq != nil {
		b.CenterFreq = clampField(b.ID, "centerFrequency", *spec.CenterFreq, MinFrequency, MaxFrequency, s.warn)
	}
	if spec.Bandwidth != nil {
		b.Bandwidth = clampField(b.ID, "bandwidth", *spec.Bandwidth, MinBandwidth, MaxBandwidth, s.warn)
	}
	if spec.Gain != nil {
		b.Gain = clampField(b.ID, "gain", *spec.Gain, MinGain, MaxGain, s.warn)
	}
	if spec.Label != nil && *spec.Label != "" {
		b.Label = *spec.Label
	} else {
		b.Label = fmt.Sprintf("Band %d", len(s.bands)+1)
	}

	s.nextID++
	s.bands = append(s.bands, b)
	return b, nil
}

// Update merges the provided fields into the band with the given id.
// Out-of-range values are clamped, not rejected; UI sliders cannot
// produce them by construction, so clamping keeps the contract simple
// for callers passing raw user input. Returns ErrNotFound for absent ids
// and ErrInvalidField for non-finite values.
func (s *Set) Update(id int, spec Spec) (Band, error) {
	if err := spec.validate(); err != nil {
		return Band{}, err
	}

	i := s.index(id)
	if i < 0 {
		return Band{}, fmt.Errorf("update band %d: %w", id, ErrNotFound)
	}

	b := s.bands[i]
	if spec.CenterFreq != nil {
		b.CenterFreq = clampField(id, "centerFrequency", *spec.CenterFreq, MinFrequency, MaxFrequency, s.warn)
	}
	if spec.Bandwidth != nil {
		b.Bandwidth = clampField(id, "bandwidth", *spec.Bandwidth, MinBandwidth, MaxBandwidth, s.warn)
	}
	if spec.Gain != nil {
		b.Gain = clampField(id, "gain", *spec.Gain, MinGain, MaxGain, s.warn)
	}
	if spec.Label != nil {
		b.Label = *spec.Label
	}
	s.bands[i] = b
	return b, nil
}

// Remove deletes the band with the given id and reports whether it was
// present. Removing an absent band is an idempotent no-op, never an
// error; the false return is the warning signal, for callers that want
// to log it.
func (s *Set) Remove(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.bands = append(s.bands[:i], s.bands[i+1:]...)
	return true
}

// Clear empties the set. Ids are not reset.
func (s *Set) Clear() {
	s.bands = s.bands[:0]
}

// Get returns the band with the given id.
func (s *Set) Get(id int) (Band, error) {
	i := s.index(id)
	if i < 0 {
		return Band{}, fmt.Errorf("get band %d: %w", id, ErrNotFound)
	}
	return s.bands[i], nil
}

// All returns the bands in insertion order as an independent copy.
func (s *Set) All() []Band {
	out := make([]Band, len(s.bands))
	copy(out, s.bands)
	return out
}

// Len returns the number of bands.
func (s *Set) Len() int {
	return len(s.bands)
}

// Affecting returns the bands whose region contains frequency f, in
// insertion order.
func (s *Set) Affecting(f float64) []Band {
	var out []Band
	for _, b := range s.bands {
		if b.Contains(f) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Set) index(id int) int {
	for i, b := range s.bands {
		if b.ID == id {
			return i
		}
	}
	return -1
}
