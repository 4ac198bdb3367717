package slots

import (
	"context"

	"openstage/internal/domain"
)

// SlotRepository performs the locked check-and-set transitions on slot
// rows. Every method is one atomic transaction.
type SlotRepository interface {
	Claim(ctx context.Context, slotID, performerID int64) (*domain.Slot, error)
	Unclaim(ctx context.Context, slotID, performerID int64) (*domain.Slot, error)
	ListAvailableByEvent(ctx context.Context, eventID int64) ([]domain.Slot, error)
}

// AvailabilityCache holds the open-slot list per event.
type AvailabilityCache interface {
	GetAvailable(ctx context.Context, eventID int64) ([]domain.Slot, bool)
	SetAvailable(ctx context.Context, eventID int64, slots []domain.Slot)
	Invalidate(ctx context.Context, eventID int64)
}

// SlotNotifier is invoked strictly after a successful commit.
type SlotNotifier interface {
	SlotClaimed(ctx context.Context, slot *domain.Slot)
	SlotReleased(ctx context.Context, slot *domain.Slot)
}
