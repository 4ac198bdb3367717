package domain

import "time"

type Event struct {
	ID         int64     `json:"id"`
	HostID     int64     `json:"host_id"`
	Title      string    `json:"title"`
	IsShowcase bool      `json:"is_showcase"`
	StartsAt   time.Time `json:"starts_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Slot is an exclusive, indexed seat within an event. A nil PerformerID
// means the slot is open. Slots are created together with their event and
// are only ever mutated by the slot-claim and lineup services.
type Slot struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"event_id"`
	SlotIndex   int       `json:"slot_index"`
	PerformerID *int64    `json:"performer_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Slot) Available() bool { return s.PerformerID == nil }
