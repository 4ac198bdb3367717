package domain

import "time"

// StudioService is a bookable resource offered by a host: a rehearsal
// room, a recording booth, a lesson. Every appointment on it occupies a
// fixed-length block of DurationMinutes.
type StudioService struct {
	ID              int64     `json:"id"`
	OwnerID         int64     `json:"owner_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *StudioService) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
