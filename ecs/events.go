package ecs

// Event is a generic ECS event payload. Events live for one scheduler tick.
type Event struct {
	Type string
	Data any
}

const EventAnimationFrame = "animation_frame"

// AnimationFrameEvent is pushed when an animation enters a frame that has a
// named event attached.
type AnimationFrameEvent struct {
	Entity    Entity
	Animation string
	Frame     int
	Name      string
}

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

// Peek returns this tick's events without consuming them, so several
// systems can observe the same event.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
