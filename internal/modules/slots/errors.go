package slots

import "errors"

// ErrNotFound and ErrNotAvailable deliberately read the same to a
// caller: a missing slot and a taken slot both come back as "not
// available" so occupancy is not leaked through error text.
var (
	ErrNotFound       = errors.New("slot not available")
	ErrNotAvailable   = errors.New("slot not available")
	ErrAlreadyInEvent = errors.New("you already have a slot for this event")
	ErrNotYours       = errors.New("slot does not belong to you")
	ErrShowcase       = errors.New("showcase slots are assigned by the host")
	ErrTxTimeout      = errors.New("temporarily unavailable, please retry")
)
