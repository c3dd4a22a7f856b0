package lazy

import "errors"

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrNegativePosition  = errors.New("negative position")
	ErrInvalidWhence     = errors.New("invalid whence")
)
