package eqio

import (
	"fmt"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// ReadOgg decodes an Ogg Vorbis file into mono samples in [-1, 1].
func ReadOgg(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, 0, fmt.Errorf("eqio: decode %s: %w", path, err)
	}

	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v)
	}
	return mixdown(samples, format.Channels), float64(format.SampleRate), nil
}
