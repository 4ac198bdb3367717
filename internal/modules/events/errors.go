package events

import "errors"

var (
	ErrNotFound   = errors.New("event not found")
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
)
