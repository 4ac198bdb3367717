package appointments

import "time"

type BookAppointmentRequest struct {
	ServiceID       int64     `json:"service_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}
