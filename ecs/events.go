package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventActorLanded   = "actor_landed"
	EventActorAirborne = "actor_airborne"
	EventActorHurt     = "actor_hurt"
	EventGimmickBroken = "gimmick_broken"
	EventRingsSpilled  = "rings_spilled"
	EventActorDied     = "actor_died"
	EventActorRespawn  = "actor_respawn"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
