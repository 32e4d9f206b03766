package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-eq/band"
)

func TestRoundTrip(t *testing.T) {
	set := band.NewSet()
	_, _ = set.Add(band.Spec{CenterFreq: band.Freq(100), Bandwidth: band.Width(160), Gain: band.Gain(1.5), Label: band.Label("Bass")})
	_, _ = set.Add(band.Spec{CenterFreq: band.Freq(8000), Bandwidth: band.Width(8000), Gain: band.Gain(0.5)})

	path := filepath.Join(t.TempDir(), "default.json")
	if err := Save(path, FromSet(set)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Mode != ModeGeneric || loaded.Version != Version {
		t.Fatalf("header = %q/%q, want %q/%q", loaded.Mode, loaded.Version, ModeGeneric, Version)
	}

	restored, err := loaded.Set()
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	orig := set.All()
	got := restored.All()
	if len(got) != len(orig) {
		t.Fatalf("bands = %d, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i].CenterFreq != orig[i].CenterFreq ||
			got[i].Bandwidth != orig[i].Bandwidth ||
			got[i].Gain != orig[i].Gain ||
			got[i].Label != orig[i].Label {
			t.Fatalf("band %d = %+v, want %+v", i, got[i], orig[i])
		}
	}
}

func TestSetRegeneratesIDs(t *testing.T) {
	s := Settings{
		Mode:    ModeGeneric,
		Version: Version,
		Sliders: []Slider{
			{CenterFreq: 100, Width: 100, Gain: 1},
			{CenterFreq: 200, Width: 100, Gain: 1},
		},
	}
	set, err := s.Set()
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	bands := set.All()
	if bands[0].ID != 1 || bands[1].ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", bands[0].ID, bands[1].ID)
	}
}

func TestSetClampsStoredValues(t *testing.T) {
	s := Settings{
		Version: Version,
		Sliders: []Slider{{CenterFreq: 100, Width: 100, Gain: 9}},
	}
	set, err := s.Set()
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := set.All()[0].Gain; got != band.MaxGain {
		t.Fatalf("Gain = %v, want clamped to %v", got, band.MaxGain)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"mode":"generic","version":"9.9","sliders":[]}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrVersion) {
		t.Fatalf("Load() error = %v, want ErrVersion", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load() error = nil, want read failure")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"rock.json", "jazz.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}

	names, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 || names[0] != "jazz" || names[1] != "rock" {
		t.Fatalf("List() = %v, want [jazz rock]", names)
	}
}

func TestListMissingDir(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if names != nil {
		t.Fatalf("List() = %v, want nil", names)
	}
}
