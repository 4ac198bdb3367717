package lineup

import (
	"context"

	"openstage/internal/domain"
)

type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// SlotRepository exposes the bulk-replace transaction plus the reads
// the lineup checks need.
type SlotRepository interface {
	ReplaceLineup(ctx context.Context, eventID int64, performerIDs []int64) ([]domain.Slot, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Slot, error)
	CountByEvent(ctx context.Context, eventID int64) (int64, error)
}

type UserRepository interface {
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}

type AvailabilityCache interface {
	Invalidate(ctx context.Context, eventID int64)
}

// LineupNotifier is invoked strictly after a successful commit.
type LineupNotifier interface {
	LineupSet(ctx context.Context, eventID int64, slots []domain.Slot)
}
