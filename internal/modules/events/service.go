package events

import (
	"context"
	"errors"
	"time"

	"openstage/internal/domain"

	"gorm.io/gorm"
)

const maxSlotsPerEvent = 100

type Service struct {
	events   EventRepository
	services ServiceRepository
}

func NewService(events EventRepository, services ServiceRepository) *Service {
	return &Service{events: events, services: services}
}

// CreateEvent creates an event together with its fixed, ordered slot
// set. Slots only ever come into existence here; the reservation core
// just claims and clears them.
func (s *Service) CreateEvent(ctx context.Context, actor domain.Principal, req CreateEventRequest) (*domain.Event, error) {
	if actor.Role != domain.RoleHost && actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if req.SlotCount < 1 || req.SlotCount > maxSlotsPerEvent {
		return nil, ErrValidation
	}
	if !req.StartsAt.After(time.Now()) {
		return nil, ErrValidation
	}

	e := &domain.Event{
		HostID:     actor.UserID,
		Title:      req.Title,
		IsShowcase: req.IsShowcase,
		StartsAt:   req.StartsAt,
	}
	if err := s.events.CreateWithSlots(ctx, e, req.SlotCount); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

func (s *Service) CreateService(ctx context.Context, actor domain.Principal, req CreateServiceRequest) (*domain.StudioService, error) {
	if actor.Role != domain.RoleHost && actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if req.DurationMinutes < 1 {
		return nil, ErrValidation
	}

	svc := &domain.StudioService{
		OwnerID:         actor.UserID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.StudioService, error) {
	return s.services.List(ctx)
}
