package ecs

import "github.com/milk9111/arcpong/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventGoal      = "goal"
	EventPaddleHit = "paddle_hit"
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

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

// GoalEvent is published when the ball leaves the arena.
type GoalEvent struct {
	Scorer component.Side
	Left   int
	Right  int
}

// PaddleHitEvent is published when the ball starts touching a paddle.
type PaddleHitEvent struct {
	Ball   Entity
	Paddle Entity
	Side   component.Side
}
