package table

import "github.com/wippyai/anybox/typeid"

// Handle is an opaque reference to a value in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a table lifecycle notification.
type EventType uint8

const (
	EventInserted EventType = iota
	EventRemoved
	EventTaken
)

var eventNames = [...]string{
	EventInserted: "inserted",
	EventRemoved:  "removed",
	EventTaken:    "taken",
}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Event represents a table lifecycle event.
type Event struct {
	Handle Handle
	TypeID typeid.ID
	Type   EventType
}

// Observer receives notifications about table lifecycle events.
type Observer interface {
	OnTableEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnTableEvent calls f(e).
func (f ObserverFunc) OnTableEvent(e Event) { f(e) }
