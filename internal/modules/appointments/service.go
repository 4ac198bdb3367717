package appointments

import (
	"context"
	"errors"
	"time"

	"openstage/internal/domain"
	"openstage/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	appointments AppointmentRepository
	notifs       AppointmentNotifier
}

func NewService(appointments AppointmentRepository, notifs AppointmentNotifier) *Service {
	return &Service{appointments: appointments, notifs: notifs}
}

// Book creates a pending appointment on the service if the requested
// block is free. The overlap check and the insert happen in one locked
// transaction inside the repository; a lost race surfaces as ErrConflict.
func (s *Service) Book(ctx context.Context, serviceID, performerID int64, desiredTime time.Time) (*domain.Appointment, error) {
	if !desiredTime.After(time.Now()) {
		return nil, ErrValidation
	}

	a := &domain.Appointment{
		ServiceID:       serviceID,
		PerformerID:     performerID,
		AppointmentTime: desiredTime,
	}
	if err := s.appointments.BookWithNoOverlap(ctx, a); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, repository.ErrOverlap):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrLockTimeout):
			return nil, ErrTxTimeout
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.AppointmentBooked(ctx, a)
	}
	return a, nil
}

// Cancel marks the performer's own appointment cancelled, freeing the
// interval for rebooking.
func (s *Service) Cancel(ctx context.Context, appointmentID, performerID int64) (*domain.Appointment, error) {
	a, err := s.appointments.Cancel(ctx, appointmentID, performerID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNotOwner):
			return nil, ErrForbidden
		case errors.Is(err, repository.ErrCancelFinal):
			return nil, ErrNotCancellable
		case errors.Is(err, repository.ErrLockTimeout):
			return nil, ErrTxTimeout
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.AppointmentCancelled(ctx, a)
	}
	return a, nil
}

func (s *Service) ListMine(ctx context.Context, performerID int64) ([]domain.Appointment, error) {
	return s.appointments.ListByPerformer(ctx, performerID)
}
