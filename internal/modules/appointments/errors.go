package appointments

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrNotFound        = errors.New("appointment not found")
	ErrValidation      = errors.New("appointment time must be in the future")
	ErrConflict        = errors.New("time slot already booked")
	ErrForbidden       = errors.New("appointment does not belong to you")
	ErrNotCancellable  = errors.New("appointment can no longer be cancelled")
	ErrTxTimeout       = errors.New("temporarily unavailable, please retry")
)
