// Package eqio loads and stores audio signals as normalized mono
// float64 samples. Multi-channel sources are mixed down by averaging;
// the processing pipeline is single channel.
package eqio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("eqio: unsupported audio format")

// ReadFile decodes an audio file into mono samples in [-1, 1], picking
// the decoder by file extension. Supported: .wav, .mp3, .ogg, .oga.
func ReadFile(path string) ([]float64, float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return ReadWAV(path)
	case ".mp3":
		return ReadMP3(path)
	case ".ogg", ".oga":
		return ReadOgg(path)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// mixdown averages interleaved channels into mono. Trailing partial
// frames are dropped.
func mixdown(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		out[i] = sum / float64(channels)
	}
	return out
}
