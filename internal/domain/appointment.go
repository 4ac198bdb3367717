package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment books one duration-length block on a studio service.
// AppointmentTime is immutable after creation; cancelling is the only
// way to free the interval.
type Appointment struct {
	ID              int64             `json:"id"`
	ServiceID       int64             `json:"service_id"`
	PerformerID     int64             `json:"performer_id"`
	AppointmentTime time.Time         `json:"appointment_time"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Overlaps reports whether the half-open intervals [a, a+d) and [b, b+d)
// share any instant. Back-to-back blocks do not overlap.
func Overlaps(a, b time.Time, d time.Duration) bool {
	return a.Before(b.Add(d)) && b.Before(a.Add(d))
}
