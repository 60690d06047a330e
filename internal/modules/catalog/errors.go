package catalog

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("item not found")
	ErrItemHasRents = errors.New("item has live bookings")
)
