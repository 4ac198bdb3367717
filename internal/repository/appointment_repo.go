package repository

import (
	"context"
	"time"

	"openstage/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppointmentRepository owns appointment creation and cancellation.
// Booking locks the parent service row before anything else, which
// serializes all bookings on one service and closes the window where
// two transactions could each see "no overlap" and both insert.
// Bookings for non-overlapping times still both succeed; they just
// commit one after the other.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	ServiceID       int64     `gorm:"column:service_id;index"`
	PerformerID     int64     `gorm:"column:performer_id;index"`
	AppointmentTime time.Time `gorm:"column:appointment_time"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	return &domain.Appointment{
		ID:              m.ID,
		ServiceID:       m.ServiceID,
		PerformerID:     m.PerformerID,
		AppointmentTime: m.AppointmentTime,
		Status:          domain.AppointmentStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BookWithNoOverlap inserts the appointment if, under the service lock,
// its half-open interval does not overlap any non-cancelled appointment
// on the same service. The appointment's status is set to pending and
// its time is never rewritten here or anywhere else in this package.
func (r *AppointmentRepository) BookWithNoOverlap(ctx context.Context, a *domain.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc serviceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&svc, a.ServiceID).Error; err != nil {
			return err
		}
		d := time.Duration(svc.DurationMinutes) * time.Minute

		var existing []appointmentModel
		if err := tx.Where("service_id = ? AND status <> ?", a.ServiceID, string(domain.AppointmentCancelled)).
			Find(&existing).Error; err != nil {
			return err
		}
		for _, e := range existing {
			if domain.Overlaps(e.AppointmentTime, a.AppointmentTime, d) {
				return ErrOverlap
			}
		}

		m := appointmentModel{
			ServiceID:       a.ServiceID,
			PerformerID:     a.PerformerID,
			AppointmentTime: a.AppointmentTime,
			Status:          string(domain.AppointmentPending),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*a = *toDomainAppointment(m)
		return nil
	})
	return translateErr(err, ErrOverlap)
}

// Cancel marks the performer's own appointment cancelled, freeing its
// interval for future bookings. Cancelling twice is a no-op; a completed
// appointment cannot be cancelled.
func (r *AppointmentRepository) Cancel(ctx context.Context, appointmentID, performerID int64) (*domain.Appointment, error) {
	var out *domain.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m appointmentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, appointmentID).Error; err != nil {
			return err
		}
		if m.PerformerID != performerID {
			return ErrNotOwner
		}
		switch domain.AppointmentStatus(m.Status) {
		case domain.AppointmentCancelled:
			out = toDomainAppointment(m)
			return nil
		case domain.AppointmentCompleted:
			return ErrCancelFinal
		}

		if err := tx.Model(&appointmentModel{}).Where("id = ?", m.ID).
			Update("status", string(domain.AppointmentCancelled)).Error; err != nil {
			return err
		}
		if err := tx.First(&m, appointmentID).Error; err != nil {
			return err
		}
		out = toDomainAppointment(m)
		return nil
	})
	if err != nil {
		return nil, translateErr(err, nil)
	}
	return out, nil
}

func (r *AppointmentRepository) ListByPerformer(ctx context.Context, performerID int64) ([]domain.Appointment, error) {
	var ms []appointmentModel
	if err := r.db.WithContext(ctx).
		Where("performer_id = ?", performerID).
		Order("appointment_time ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Appointment, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}
