package band

import "errors"

var (
	// ErrNotFound reports an operation referencing an absent band id.
	ErrNotFound = errors.New("band id not found")
	// ErrInvalidField reports a non-finite numeric field on creation.
	ErrInvalidField = errors.New("band field must be finite")
)
