package events

import "time"

type CreateEventRequest struct {
	Title      string    `json:"title" binding:"required"`
	IsShowcase bool      `json:"is_showcase"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	SlotCount  int       `json:"slot_count" binding:"required"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
}
