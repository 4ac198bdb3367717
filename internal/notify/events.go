// Package notify publishes reservation changes to downstream consumers
// strictly after the owning transaction has committed. Publish failures
// are logged and swallowed; they never fail the request that triggered
// them.
package notify

// SlotEvent describes a change to an event's slot assignment.
type SlotEvent struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	EventID     int64   `json:"event_id"`
	SlotID      int64   `json:"slot_id,omitempty"`
	SlotIndex   int     `json:"slot_index,omitempty"`
	PerformerID int64   `json:"performer_id,omitempty"`
	Lineup      []int64 `json:"lineup,omitempty"`
	OccurredAt  string  `json:"occurred_at"`
}

// AppointmentEvent describes a booking or cancellation on a studio
// service.
type AppointmentEvent struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	AppointmentID   int64  `json:"appointment_id"`
	ServiceID       int64  `json:"service_id"`
	PerformerID     int64  `json:"performer_id"`
	AppointmentTime string `json:"appointment_time"`
	OccurredAt      string `json:"occurred_at"`
}

const (
	KindSlotClaimed          = "slot.claimed"
	KindSlotReleased         = "slot.released"
	KindLineupSet            = "lineup.set"
	KindAppointmentBooked    = "appointment.booked"
	KindAppointmentCancelled = "appointment.cancelled"
)
