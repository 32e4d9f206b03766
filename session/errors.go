package session

import "errors"

// Errors returned by session operations.
var (
	ErrEmptySignal       = errors.New("session: signal must not be empty")
	ErrInvalidSampleRate = errors.New("session: sample rate must be positive")
	ErrNoFrequencies     = errors.New("session: at least one component frequency required")
	ErrInvalidDuration   = errors.New("session: duration must be positive")
	ErrClosed            = errors.New("session: closed")
)
