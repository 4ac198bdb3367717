package events

import (
	"context"

	"openstage/internal/domain"
)

type EventRepository interface {
	CreateWithSlots(ctx context.Context, e *domain.Event, slotCount int) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.StudioService) error
	GetByID(ctx context.Context, id int64) (*domain.StudioService, error)
	List(ctx context.Context) ([]domain.StudioService, error)
}
