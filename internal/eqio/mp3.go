package eqio

import (
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// ReadMP3 decodes an MP3 file into mono samples in [-1, 1]. The decoder
// always emits 16-bit stereo PCM; the two channels are averaged.
func ReadMP3(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("eqio: decode %s: %w", path, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("eqio: read %s: %w", path, err)
	}

	// 16-bit little-endian, interleaved stereo.
	n := len(raw) / 2
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float64(v) / 32768
	}
	return mixdown(samples, 2), float64(dec.SampleRate()), nil
}
