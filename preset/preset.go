// Package preset persists equalizer settings as JSON files so a band
// layout survives restarts and can be shared between tools.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cwbudde/algo-eq/band"
)

// Version is the settings schema version written to every file.
const Version = "1.0"

// Mode identifies the band layout family. Only the generic free-form
// layout exists today.
const ModeGeneric = "generic"

// Extension is the file suffix for preset files.
const Extension = ".json"

// ErrVersion is returned when a file declares an unknown schema version.
var ErrVersion = errors.New("preset: unsupported settings version")

// Slider is one persisted band. Ids are deliberately not stored; they
// are session-local and regenerated on load.
type Slider struct {
	CenterFreq float64 `json:"center_freq"`
	Width      float64 `json:"width"`
	Gain       float64 `json:"gain"`
	Label      string  `json:"label"`
}

// Settings is the JSON schema for equalizer preset files.
type Settings struct {
	Mode      string    `json:"mode"`
	Sliders   []Slider  `json:"sliders"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// FromSet captures a band set as settings, stamped with the current time.
func FromSet(s *band.Set) Settings {
	bands := s.All()
	sliders := make([]Slider, len(bands))
	for i, b := range bands {
		sliders[i] = Slider{
			CenterFreq: b.CenterFreq,
			Width:      b.Bandwidth,
			Gain:       b.Gain,
			Label:      b.Label,
		}
	}
	return Settings{
		Mode:      ModeGeneric,
		Sliders:   sliders,
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}
}

// Set rebuilds a band set from settings. Ids are assigned fresh;
// out-of-range stored values are clamped by the set like any other input.
func (s Settings) Set(opts ...band.Option) (*band.Set, error) {
	if s.Version != "" && s.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrVersion, s.Version)
	}

	set := band.NewSet(opts...)
	for i, sl := range s.Sliders {
		spec := band.Spec{
			CenterFreq: band.Freq(sl.CenterFreq),
			Bandwidth:  band.Width(sl.Width),
			Gain:       band.Gain(sl.Gain),
		}
		if sl.Label != "" {
			spec.Label = band.Label(sl.Label)
		}
		if _, err := set.Add(spec); err != nil {
			return nil, fmt.Errorf("preset: slider %d: %w", i, err)
		}
	}
	return set, nil
}

// Save writes settings to path as indented JSON, creating parent
// directories as needed.
func Save(path string, s Settings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("preset: encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("preset: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("preset: write settings: %w", err)
	}
	return nil
}

// Load reads settings from path.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("preset: read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("preset: decode settings: %w", err)
	}
	if s.Version != "" && s.Version != Version {
		return Settings{}, fmt.Errorf("%w: %q", ErrVersion, s.Version)
	}
	return s, nil
}

// List returns the preset names found in dir, sorted, without the file
// extension. A missing directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("preset: list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}
