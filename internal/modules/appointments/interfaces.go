package appointments

import (
	"context"

	"openstage/internal/domain"
)

// AppointmentRepository owns the atomic booking and cancellation
// transactions.
type AppointmentRepository interface {
	BookWithNoOverlap(ctx context.Context, a *domain.Appointment) error
	Cancel(ctx context.Context, appointmentID, performerID int64) (*domain.Appointment, error)
	ListByPerformer(ctx context.Context, performerID int64) ([]domain.Appointment, error)
}

// AppointmentNotifier is invoked strictly after a successful commit.
type AppointmentNotifier interface {
	AppointmentBooked(ctx context.Context, a *domain.Appointment)
	AppointmentCancelled(ctx context.Context, a *domain.Appointment)
}
