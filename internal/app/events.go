package app

import (
	"github.com/dshills/canvasterm/internal/config"
	"github.com/dshills/canvasterm/internal/renderer/backend"
)

// EventType identifies what an Event carries.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventReload
	EventNotice
	EventQuit
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventReload:
		return "reload"
	case EventNotice:
		return "notice"
	case EventQuit:
		return "quit"
	default:
		return "none"
	}
}

// Event is one input to the loop. Hosts send events from any goroutine;
// the loop handles them in order.
type Event struct {
	Type EventType

	// Key is the DOM key name for EventKey, e.g. "ArrowDown" or "q".
	Key string
	Mod backend.ModMask

	// Settings is the new configuration for EventReload.
	Settings config.Settings

	// Err is shown on the status line for EventNotice.
	Err error
}

// KeyEvent creates a key event.
func KeyEvent(key string, mod backend.ModMask) Event {
	return Event{Type: EventKey, Key: key, Mod: mod}
}

// ResizeEvent creates a resize event. The new size is read from the
// backend when redrawing.
func ResizeEvent() Event {
	return Event{Type: EventResize}
}

// FromBackend converts a backend event. Events the loop does not use come
// back as EventNone.
func FromBackend(ev backend.Event) Event {
	switch ev.Type {
	case backend.EventKey:
		return KeyEvent(ev.Key, ev.Mod)
	case backend.EventResize:
		return ResizeEvent()
	default:
		return Event{}
	}
}
