// Package remote delegates equalization jobs to an external processing
// service over HTTP. The client satisfies the session processor
// contract; callers treat every failure here as a signal to process
// locally instead.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cwbudde/algo-eq/band"
)

// ErrUnavailable wraps every failure mode of the remote service:
// unreachable host, non-2xx status, malformed response, or a result of
// the wrong length. Callers check for it with errors.Is and fall back.
var ErrUnavailable = errors.New("remote: processing service unavailable")

const defaultTimeout = 10 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Ignored when a custom HTTP
// client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// Client posts equalization jobs to a processing endpoint.
type Client struct {
	url string
	hc  *http.Client
}

// NewClient creates a client for the given endpoint URL.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url: url,
		hc:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type request struct {
	AudioData  []float64   `json:"audioData"`
	GainArray  []float64   `json:"gainArray"`
	SampleRate float64     `json:"sampleRate"`
	Bands      []band.Band `json:"bands"`
	Mode       string      `json:"mode"`
}

type response struct {
	ProcessedAudio []float64 `json:"processedAudio"`
}

// Process posts the job and returns the processed signal. The result is
// guaranteed to have the same length as samples; anything else is
// reported as ErrUnavailable.
func (c *Client) Process(ctx context.Context, samples, gains []float64, sampleRate float64, bands []band.Band) ([]float64, error) {
	body, err := json.Marshal(request{
		AudioData:  samples,
		GainArray:  gains,
		SampleRate: sampleRate,
		Bands:      bands,
		Mode:       "generic",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(r.ProcessedAudio) != len(samples) {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrUnavailable, len(r.ProcessedAudio), len(samples))
	}
	return r.ProcessedAudio, nil
}
