// Package telemetry provides population tracking, bookmarking, and CSV output.
package telemetry

import "github.com/pthm-cable/aquarium/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventAdded EventType = iota
	EventMoved
	EventFed
	EventStarved
	EventDied
	EventCollision
	EventRelocated
	EventRelocationFailed
)

var eventNames = [...]string{
	EventAdded:            "added",
	EventMoved:            "moved",
	EventFed:              "fed",
	EventStarved:          "starved",
	EventDied:             "died",
	EventCollision:        "collision",
	EventRelocated:        "relocated",
	EventRelocationFailed: "relocation_failed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	AnimalID uint32
	Species  components.Species

	// Position after the event
	X, Y int

	// Optional fields depending on event type
	OtherID uint32 // the other crab of a collision
	Amount  int    // food fed, or relocation attempts
}

// NewAddedEvent creates an event for a newly placed animal.
func NewAddedEvent(tick int32, id uint32, s components.Species, pos components.Position) Event {
	return Event{Type: EventAdded, Tick: tick, AnimalID: id, Species: s, X: pos.X, Y: pos.Y}
}

// NewMovedEvent creates an event for a successful unit step.
func NewMovedEvent(tick int32, id uint32, s components.Species, pos components.Position) Event {
	return Event{Type: EventMoved, Tick: tick, AnimalID: id, Species: s, X: pos.X, Y: pos.Y}
}

// NewFedEvent creates a feeding event.
func NewFedEvent(tick int32, id uint32, s components.Species, amount int) Event {
	return Event{Type: EventFed, Tick: tick, AnimalID: id, Species: s, Amount: amount}
}

// NewDeathEvent creates a starvation or old-age event depending on cause.
func NewDeathEvent(tick int32, id uint32, s components.Species, pos components.Position, cause components.DeathCause) Event {
	typ := EventDied
	if cause == components.CauseStarvation {
		typ = EventStarved
	}
	return Event{Type: typ, Tick: tick, AnimalID: id, Species: s, X: pos.X, Y: pos.Y}
}

// NewCollisionEvent creates an event for two overlapping crabs.
func NewCollisionEvent(tick int32, id, otherID uint32, s components.Species) Event {
	return Event{Type: EventCollision, Tick: tick, AnimalID: id, OtherID: otherID, Species: s}
}

// NewRelocationEvent creates a relocation event. A failed relocation keeps the
// old position.
func NewRelocationEvent(tick int32, id uint32, s components.Species, x, y, attempts int, ok bool) Event {
	typ := EventRelocated
	if !ok {
		typ = EventRelocationFailed
	}
	return Event{Type: typ, Tick: tick, AnimalID: id, Species: s, X: x, Y: y, Amount: attempts}
}
