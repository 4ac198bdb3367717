package repository

import (
	"context"
	"time"

	"openstage/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	HostID     int64     `gorm:"column:host_id;index"`
	Title      string    `gorm:"column:title"`
	IsShowcase bool      `gorm:"column:is_showcase"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (eventModel) TableName() string { return "events" }

func toDomainEvent(m eventModel) *domain.Event {
	return &domain.Event{
		ID:         m.ID,
		HostID:     m.HostID,
		Title:      m.Title,
		IsShowcase: m.IsShowcase,
		StartsAt:   m.StartsAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// CreateWithSlots inserts the event and its fixed, ordered slot set in
// one transaction. Slots are never created anywhere else.
func (r *EventRepository) CreateWithSlots(ctx context.Context, e *domain.Event, slotCount int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := eventModel{
			HostID:     e.HostID,
			Title:      e.Title,
			IsShowcase: e.IsShowcase,
			StartsAt:   e.StartsAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		slots := make([]slotModel, 0, slotCount)
		for i := 0; i < slotCount; i++ {
			slots = append(slots, slotModel{EventID: m.ID, SlotIndex: i})
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}

		*e = *toDomainEvent(m)
		return nil
	})
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m eventModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainEvent(m), nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var ms []eventModel
	if err := r.db.WithContext(ctx).Order("starts_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainEvent(m))
	}
	return out, nil
}
