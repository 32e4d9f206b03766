// Package server exposes the equalizer engine as a JSON HTTP API. Each
// uploaded or generated signal becomes a session addressed by an opaque
// id; processing requests reference the session and carry the band
// layout to apply.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"

	"github.com/cwbudde/algo-eq/session"
)

// Option configures a Server.
type Option func(*Server)

// WithPresetDir sets the directory used for saved band layouts.
func WithPresetDir(dir string) Option {
	return func(s *Server) {
		s.presetDir = dir
	}
}

// WithProcessor delegates session processing to an external service.
func WithProcessor(p session.Processor) Option {
	return func(s *Server) {
		s.remote = p
	}
}

// WithLogger sets the log sink. Defaults to discarding.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Server) {
		s.logf = logf
	}
}

// WithMaxUploadBytes limits accepted upload sizes. Defaults to 64 MiB.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// liveSession pairs a session with the lock that serializes access to
// it. Sessions are not safe for concurrent use and the HTTP mux
// dispatches handlers concurrently, so every handler holds mu for the
// duration of any session call.
type liveSession struct {
	mu   sync.Mutex
	sess *session.Session
}

// Server holds the active sessions and the preset store.
type Server struct {
	mu       sync.Mutex
	sessions map[string]*liveSession

	presetDir string
	remote    session.Processor
	maxUpload int64
	logf      func(format string, args ...any)
}

// New creates a server with no sessions.
func New(opts ...Option) *Server {
	s := &Server{
		sessions:  make(map[string]*liveSession),
		presetDir: "presets",
		maxUpload: 64 << 20,
		logf:      func(string, ...any) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/synthetic", s.handleSynthetic)
	mux.HandleFunc("POST /api/fft/compute", s.handleSpectrum)
	mux.HandleFunc("POST /api/process", s.handleProcess)
	mux.HandleFunc("GET /api/signal/input", s.handleInput)
	mux.HandleFunc("GET /api/signal/output", s.handleOutput)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/config/save", s.handleConfigSave)
	mux.HandleFunc("GET /api/config/load", s.handleConfigLoad)
	mux.HandleFunc("GET /api/config/list", s.handleConfigList)
	return mux
}

func (s *Server) add(sess *session.Session) string {
	id := newID()
	s.mu.Lock()
	s.sessions[id] = &liveSession{sess: sess}
	s.mu.Unlock()
	return id
}

func (s *Server) get(id string) (*liveSession, error) {
	s.mu.Lock()
	ls, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	return ls, nil
}

func (s *Server) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newID() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
