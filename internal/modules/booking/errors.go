package booking

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
