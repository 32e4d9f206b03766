package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-eq/band"
	"github.com/cwbudde/algo-eq/internal/eqio"
	"github.com/cwbudde/algo-eq/preset"
	"github.com/cwbudde/algo-eq/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: %v", err)
		return false
	}
	return true
}

func (s *Server) sessionOpts() []session.Option {
	opts := []session.Option{
		session.WithWarning(func(msg string) { s.logf("%s", msg) }),
	}
	if s.remote != nil {
		opts = append(opts, session.WithProcessor(s.remote))
	}
	return opts
}

type sessionResponse struct {
	SessionID  string  `json:"sessionId"`
	Samples    int     `json:"samples"`
	SampleRate float64 `json:"sampleRate"`
	Duration   float64 `json:"duration"`
}

func sessionInfo(id string, sess *session.Session) sessionResponse {
	info := sess.Info()
	return sessionResponse{
		SessionID:  id,
		Samples:    info.Samples,
		SampleRate: info.SampleRate,
		Duration:   info.Duration,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.count(),
	})
}

// handleUpload accepts a multipart form with one "file" field and
// creates a session from its decoded content. The decoder is chosen by
// the uploaded filename's extension.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field: %v", err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	tmp, err := os.CreateTemp("", "eq-upload-*"+ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stage upload: %v", err)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "stage upload: %v", err)
		return
	}
	tmp.Close()

	samples, rate, err := eqio.ReadFile(tmp.Name())
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, eqio.ErrUnsupportedFormat) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "decode %s: %v", header.Filename, err)
		return
	}

	sess, err := session.New(samples, rate, s.sessionOpts()...)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	id := s.add(sess)
	s.logf("session %s: uploaded %s", id, header.Filename)
	writeJSON(w, http.StatusOK, sessionInfo(id, sess))
}

func (s *Server) handleSynthetic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Frequencies []float64 `json:"frequencies"`
		Duration    float64   `json:"duration"`
		SampleRate  float64   `json:"sampleRate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Duration == 0 {
		req.Duration = 2
	}
	if req.SampleRate == 0 {
		req.SampleRate = 44100
	}

	sess, err := session.Synthetic(req.Frequencies, req.Duration, req.SampleRate, s.sessionOpts()...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	id := s.add(sess)
	s.logf("session %s: synthetic %v Hz", id, req.Frequencies)
	writeJSON(w, http.StatusOK, sessionInfo(id, sess))
}

func (s *Server) handleSpectrum(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ls, err := s.get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}

	ls.mu.Lock()
	spec, err := ls.sess.Spectrum()
	ls.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"frequencies": spec.Frequencies,
		"magnitudes":  spec.Magnitudes,
		"phases":      spec.Phases,
	})
}

// handleProcess applies the posted band layout to the session input.
// Bands pass through a fresh set so the usual validation and clamping
// rules apply; clamp notes are returned alongside the samples.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string      `json:"sessionId"`
		Bands     []band.Band `json:"bands"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ls, err := s.get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}

	var warnings []string
	set := band.NewSet(band.WithClampWarning(func(cw band.ClampWarning) {
		warnings = append(warnings, cw.String())
	}))
	for _, b := range req.Bands {
		if _, err := set.Add(band.Spec{
			CenterFreq: band.Freq(b.CenterFreq),
			Bandwidth:  band.Width(b.Bandwidth),
			Gain:       band.Gain(b.Gain),
			Label:      band.Label(b.Label),
		}); err != nil {
			writeError(w, http.StatusBadRequest, "%v", err)
			return
		}
	}

	ls.mu.Lock()
	out, err := ls.sess.Equalize(r.Context(), set.All())
	ls.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	s.logf("session %s: processed with %d bands", req.SessionID, set.Len())
	writeJSON(w, http.StatusOK, map[string]any{
		"samples":  out,
		"warnings": warnings,
	})
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	s.handleSignal(w, r, (*session.Session).Input)
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	s.handleSignal(w, r, (*session.Session).Output)
}

func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request, get func(*session.Session) []float64) {
	ls, err := s.get(r.URL.Query().Get("sessionId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}

	maxPoints := 0
	if v := r.URL.Query().Get("maxPoints"); v != "" {
		maxPoints, err = strconv.Atoi(v)
		if err != nil || maxPoints <= 0 {
			writeError(w, http.StatusBadRequest, "maxPoints must be a positive integer: %q", v)
			return
		}
	}

	ls.mu.Lock()
	samples := get(ls.sess)
	info := ls.sess.Info()
	ls.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"samples":      decimate(samples, maxPoints),
		"sampleRate":   info.SampleRate,
		"totalSamples": len(samples),
	})
}

// decimate keeps every (len/max)-th sample so long signals come back
// display-sized. max <= 0 disables decimation.
func decimate(samples []float64, max int) []float64 {
	if max <= 0 || len(samples) <= max {
		return samples
	}
	step := len(samples) / max
	out := make([]float64, 0, (len(samples)+step-1)/step)
	for i := 0; i < len(samples); i += step {
		out = append(out, samples[i])
	}
	return out
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ls, err := s.get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}
	ls.mu.Lock()
	ls.sess.Reset()
	ls.mu.Unlock()
	s.logf("session %s: reset", req.SessionID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string      `json:"name"`
		Bands []band.Band `json:"bands"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	name, err := presetName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	set := band.NewSet()
	for _, b := range req.Bands {
		if _, err := set.Add(band.Spec{
			CenterFreq: band.Freq(b.CenterFreq),
			Bandwidth:  band.Width(b.Bandwidth),
			Gain:       band.Gain(b.Gain),
			Label:      band.Label(b.Label),
		}); err != nil {
			writeError(w, http.StatusBadRequest, "%v", err)
			return
		}
	}

	path := filepath.Join(s.presetDir, name+preset.Extension)
	if err := preset.Save(path, preset.FromSet(set)); err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	s.logf("saved preset %s with %d bands", name, set.Len())
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleConfigLoad(w http.ResponseWriter, r *http.Request) {
	name, err := presetName(r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	settings, err := preset.Load(filepath.Join(s.presetDir, name+preset.Extension))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, preset.ErrVersion) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "%v", err)
		return
	}
	set, err := settings.Set()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      name,
		"timestamp": settings.Timestamp,
		"bands":     set.All(),
	})
}

func (s *Server) handleConfigList(w http.ResponseWriter, r *http.Request) {
	names, err := preset.List(s.presetDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"presets": names})
}

// presetName rejects names that could escape the preset directory.
func presetName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("preset name required")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid preset name %q", name)
	}
	return name, nil
}
