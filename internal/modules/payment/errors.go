package payment

import "errors"

var (
	ErrNotFound       = errors.New("payment or booking not found")
	ErrForbidden      = errors.New("forbidden")
	ErrNotPayable     = errors.New("booking is not awaiting payment")
	ErrAlreadySettled = errors.New("payment already settled")

	// ErrSettlementConflict means the payment row was finalized but the
	// booking had already left the payable state, so no transition ran.
	// The recorded outcome stands; the caller must reconcile, not retry.
	ErrSettlementConflict = errors.New("payment settled but booking transition refused")
)
