package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownHabit   = errors.New("unknown habit")
	ErrEmptyReply     = errors.New("empty reply")
	ErrNotImplemented = errors.New("not implemented")
)
