package slots

import (
	"context"
	"errors"

	"openstage/internal/domain"
	"openstage/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	slots  SlotRepository
	cache  AvailabilityCache
	notifs SlotNotifier
}

func NewService(slots SlotRepository, cache AvailabilityCache, notifs SlotNotifier) *Service {
	return &Service{slots: slots, cache: cache, notifs: notifs}
}

// Claim assigns the slot to the acting performer. The repository runs
// the whole check-and-set under lock; this layer only translates the
// outcome and fans out post-commit side effects.
func (s *Service) Claim(ctx context.Context, slotID, performerID int64) (*domain.Slot, error) {
	slot, err := s.slots.Claim(ctx, slotID, performerID)
	if err != nil {
		return nil, mapSlotErr(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, slot.EventID)
	}
	if s.notifs != nil {
		s.notifs.SlotClaimed(ctx, slot)
	}
	return slot, nil
}

func (s *Service) Unclaim(ctx context.Context, slotID, performerID int64) (*domain.Slot, error) {
	slot, err := s.slots.Unclaim(ctx, slotID, performerID)
	if err != nil {
		return nil, mapSlotErr(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, slot.EventID)
	}
	if s.notifs != nil {
		s.notifs.SlotReleased(ctx, slot)
	}
	return slot, nil
}

// GetAvailable returns the event's open slots in lineup order. Unknown
// events yield an empty list, not an error; the endpoint is public and
// must not reveal which event ids exist.
func (s *Service) GetAvailable(ctx context.Context, eventID int64) ([]domain.Slot, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetAvailable(ctx, eventID); ok {
			return cached, nil
		}
	}

	out, err := s.slots.ListAvailableByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetAvailable(ctx, eventID, out)
	}
	return out, nil
}

func mapSlotErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrSlotTaken):
		return ErrNotAvailable
	case errors.Is(err, repository.ErrAlreadyInEvent):
		return ErrAlreadyInEvent
	case errors.Is(err, repository.ErrShowcaseSlot):
		return ErrShowcase
	case errors.Is(err, repository.ErrNotOwner):
		return ErrNotYours
	case errors.Is(err, repository.ErrLockTimeout):
		return ErrTxTimeout
	}
	return err
}
