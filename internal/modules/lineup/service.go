package lineup

import (
	"context"
	"errors"

	"openstage/internal/domain"
	"openstage/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	events EventRepository
	slots  SlotRepository
	users  UserRepository
	cache  AvailabilityCache
	notifs LineupNotifier
}

func NewService(events EventRepository, slots SlotRepository, users UserRepository, cache AvailabilityCache, notifs LineupNotifier) *Service {
	return &Service{events: events, slots: slots, users: users, cache: cache, notifs: notifs}
}

// SetLineup replaces the whole slot assignment of a showcase event with
// the ordered performer list. Preconditions are checked in a fixed
// order, short-circuiting on the first failure; the replace itself is
// one transaction that locks every slot row before writing any, so two
// concurrent calls always end with exactly one of the submitted lineups.
func (s *Service) SetLineup(ctx context.Context, eventID int64, actor domain.Principal, performerIDs []int64) ([]domain.Slot, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !ev.IsShowcase {
		return nil, ErrNotShowcase
	}
	if !actor.CanManageEvent(ev) {
		return nil, ErrForbidden
	}

	seen := make(map[int64]struct{}, len(performerIDs))
	for _, id := range performerIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicatePerformers
		}
		seen[id] = struct{}{}
	}

	if len(performerIDs) > 0 {
		cnt, err := s.users.CountByIDs(ctx, performerIDs)
		if err != nil {
			return nil, err
		}
		if cnt != int64(len(performerIDs)) {
			return nil, ErrUnknownPerformers
		}
	}

	slotCount, err := s.slots.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if int64(len(performerIDs)) > slotCount {
		// slot indices are 0-based, so index slotCount is the first one
		// the event does not have
		return nil, &SlotCountError{Index: int(slotCount)}
	}

	out, err := s.slots.ReplaceLineup(ctx, eventID, performerIDs)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLineupTooLong):
			return nil, &SlotCountError{Index: int(slotCount)}
		case errors.Is(err, repository.ErrLockTimeout):
			return nil, ErrTxTimeout
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, eventID)
	}
	if s.notifs != nil {
		s.notifs.LineupSet(ctx, eventID, out)
	}
	return out, nil
}

// GetLineup returns every slot of the event in lineup order.
func (s *Service) GetLineup(ctx context.Context, eventID int64) ([]domain.Slot, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.slots.ListByEvent(ctx, eventID)
}
