package notify

import (
	"context"
	"time"

	"openstage/internal/domain"

	"github.com/google/uuid"
)

// Broadcaster pushes a message to live subscribers of one event.
type Broadcaster interface {
	BroadcastToEvent(eventID int64, msg any)
}

// Dispatcher fans a reservation change out to the message queue and the
// websocket feed. Both sinks are optional; a nil Dispatcher is a no-op,
// so services can call it unconditionally after commit.
type Dispatcher struct {
	pub *Publisher
	hub Broadcaster
}

func NewDispatcher(pub *Publisher, hub Broadcaster) *Dispatcher {
	return &Dispatcher{pub: pub, hub: hub}
}

func (d *Dispatcher) slotEvent(ctx context.Context, ev SlotEvent) {
	if d == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	_ = d.pub.Publish(ctx, ev)
	if d.hub != nil {
		d.hub.BroadcastToEvent(ev.EventID, ev)
	}
}

func (d *Dispatcher) SlotClaimed(ctx context.Context, slot *domain.Slot) {
	var pid int64
	if slot.PerformerID != nil {
		pid = *slot.PerformerID
	}
	d.slotEvent(ctx, SlotEvent{
		Kind:        KindSlotClaimed,
		EventID:     slot.EventID,
		SlotID:      slot.ID,
		SlotIndex:   slot.SlotIndex,
		PerformerID: pid,
	})
}

func (d *Dispatcher) SlotReleased(ctx context.Context, slot *domain.Slot) {
	d.slotEvent(ctx, SlotEvent{
		Kind:      KindSlotReleased,
		EventID:   slot.EventID,
		SlotID:    slot.ID,
		SlotIndex: slot.SlotIndex,
	})
}

func (d *Dispatcher) LineupSet(ctx context.Context, eventID int64, slots []domain.Slot) {
	lineup := make([]int64, 0, len(slots))
	for _, s := range slots {
		if s.PerformerID != nil {
			lineup = append(lineup, *s.PerformerID)
		}
	}
	d.slotEvent(ctx, SlotEvent{
		Kind:    KindLineupSet,
		EventID: eventID,
		Lineup:  lineup,
	})
}

func (d *Dispatcher) appointmentEvent(ctx context.Context, kind string, a *domain.Appointment) {
	if d == nil {
		return
	}
	ev := AppointmentEvent{
		ID:              uuid.NewString(),
		Kind:            kind,
		AppointmentID:   a.ID,
		ServiceID:       a.ServiceID,
		PerformerID:     a.PerformerID,
		AppointmentTime: a.AppointmentTime.UTC().Format(time.RFC3339),
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	_ = d.pub.Publish(ctx, ev)
}

func (d *Dispatcher) AppointmentBooked(ctx context.Context, a *domain.Appointment) {
	d.appointmentEvent(ctx, KindAppointmentBooked, a)
}

func (d *Dispatcher) AppointmentCancelled(ctx context.Context, a *domain.Appointment) {
	d.appointmentEvent(ctx, KindAppointmentCancelled, a)
}
