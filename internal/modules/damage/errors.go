package damage

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrBookingNotLive  = errors.New("booking has not reached active state")
	ErrAlreadyReported = errors.New("damage report already exists for booking")
)
