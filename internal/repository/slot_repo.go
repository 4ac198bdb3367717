package repository

import (
	"context"
	"time"

	"openstage/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRepository owns every mutation of slot rows. Each mutating method
// runs as a single transaction and takes its locks in one fixed order:
// the parent event row first, then slot rows. Locking the event row
// serializes all claim, unclaim and lineup writes for that event, which
// is what makes the "one slot per performer" existence check safe
// against a concurrent claim on a sibling slot.
type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type slotModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	EventID     int64     `gorm:"column:event_id;index:idx_event_slot,unique"`
	SlotIndex   int       `gorm:"column:slot_index;index:idx_event_slot,unique"`
	PerformerID *int64    `gorm:"column:performer_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (slotModel) TableName() string { return "slots" }

func toDomainSlot(m slotModel) *domain.Slot {
	return &domain.Slot{
		ID:          m.ID,
		EventID:     m.EventID,
		SlotIndex:   m.SlotIndex,
		PerformerID: m.PerformerID,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Claim assigns the slot to the performer if, under lock, the slot is
// still open and the performer holds no other slot in the event.
func (r *SlotRepository) Claim(ctx context.Context, slotID, performerID int64) (*domain.Slot, error) {
	var out *domain.Slot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Unlocked read just to learn the event id for lock ordering.
		var peek slotModel
		if err := tx.Select("id", "event_id").First(&peek, slotID).Error; err != nil {
			return err
		}

		var ev eventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ev, peek.EventID).Error; err != nil {
			return err
		}
		if ev.IsShowcase {
			return ErrShowcaseSlot
		}

		// Re-read the slot fresh now that the event lock is held.
		var m slotModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, slotID).Error; err != nil {
			return err
		}
		if m.PerformerID != nil {
			return ErrSlotTaken
		}

		var held int64
		if err := tx.Model(&slotModel{}).
			Where("event_id = ? AND performer_id = ?", m.EventID, performerID).
			Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return ErrAlreadyInEvent
		}

		if err := tx.Model(&slotModel{}).Where("id = ?", m.ID).
			Update("performer_id", performerID).Error; err != nil {
			return err
		}

		if err := tx.First(&m, slotID).Error; err != nil {
			return err
		}
		out = toDomainSlot(m)
		return nil
	})
	if err != nil {
		return nil, translateErr(err, ErrSlotTaken)
	}
	return out, nil
}

// Unclaim clears the slot if, under lock, it is currently held by the
// performer. An open slot fails the same ownership check.
func (r *SlotRepository) Unclaim(ctx context.Context, slotID, performerID int64) (*domain.Slot, error) {
	var out *domain.Slot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var peek slotModel
		if err := tx.Select("id", "event_id").First(&peek, slotID).Error; err != nil {
			return err
		}

		var ev eventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ev, peek.EventID).Error; err != nil {
			return err
		}

		var m slotModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, slotID).Error; err != nil {
			return err
		}
		if m.PerformerID == nil || *m.PerformerID != performerID {
			return ErrNotOwner
		}

		if err := tx.Model(&slotModel{}).Where("id = ?", m.ID).
			Update("performer_id", nil).Error; err != nil {
			return err
		}

		if err := tx.First(&m, slotID).Error; err != nil {
			return err
		}
		out = toDomainSlot(m)
		return nil
	})
	if err != nil {
		return nil, translateErr(err, nil)
	}
	return out, nil
}

// ReplaceLineup overwrites the whole slot assignment of the event with
// the ordered performer list: performerIDs[i] lands on the slot with the
// i-th slot_index, every remaining slot is cleared. All slot rows are
// locked up front, so a concurrent replace blocks until this one commits
// and then rewrites wholesale; the final state is always exactly one of
// the submitted lineups.
func (r *SlotRepository) ReplaceLineup(ctx context.Context, eventID int64, performerIDs []int64) ([]domain.Slot, error) {
	var out []domain.Slot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev eventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ev, eventID).Error; err != nil {
			return err
		}

		var ms []slotModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", eventID).
			Order("slot_index ASC").
			Find(&ms).Error; err != nil {
			return err
		}
		if len(performerIDs) > len(ms) {
			return ErrLineupTooLong
		}

		for i := range ms {
			var pid *int64
			if i < len(performerIDs) {
				v := performerIDs[i]
				pid = &v
			}
			if err := tx.Model(&slotModel{}).Where("id = ?", ms[i].ID).
				Update("performer_id", pid).Error; err != nil {
				return err
			}
		}

		var fresh []slotModel
		if err := tx.Where("event_id = ?", eventID).
			Order("slot_index ASC").
			Find(&fresh).Error; err != nil {
			return err
		}
		out = make([]domain.Slot, 0, len(fresh))
		for _, m := range fresh {
			out = append(out, *toDomainSlot(m))
		}
		return nil
	})
	if err != nil {
		return nil, translateErr(err, nil)
	}
	return out, nil
}

// ListAvailableByEvent returns the open slots of the event in lineup
// order. An unknown event id simply yields an empty list.
func (r *SlotRepository) ListAvailableByEvent(ctx context.Context, eventID int64) ([]domain.Slot, error) {
	var ms []slotModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND performer_id IS NULL", eventID).
		Order("slot_index ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Slot, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainSlot(m))
	}
	return out, nil
}

func (r *SlotRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Slot, error) {
	var ms []slotModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("slot_index ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Slot, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainSlot(m))
	}
	return out, nil
}

func (r *SlotRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&slotModel{}).Where("event_id = ?", eventID).Count(&cnt)
	return cnt, tx.Error
}
