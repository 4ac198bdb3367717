package lineup

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrNotShowcase         = errors.New("this operation only works for showcase events")
	ErrForbidden           = errors.New("only admins or the event host may set the lineup")
	ErrDuplicatePerformers = errors.New("duplicate performer IDs")
	ErrUnknownPerformers   = errors.New("one or more performer IDs do not exist")
	ErrTxTimeout           = errors.New("temporarily unavailable, please retry")
)

// SlotCountError reports the first slot index the submitted lineup
// would need that the event does not have.
type SlotCountError struct {
	Index int
}

func (e *SlotCountError) Error() string {
	return fmt.Sprintf("slot %d does not exist for this event", e.Index)
}
