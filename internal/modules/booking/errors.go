package booking

import "errors"

var (
	ErrDateRange         = errors.New("invalid date range")
	ErrItemUnavailable   = errors.New("item unavailable")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConcurrency       = errors.New("concurrent operation on item, retry")
)
