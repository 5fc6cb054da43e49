package ui

import "time"

// EventType represents the type of an input event delivered to windows.
type EventType int

const (
	// EventKeyDown is triggered when a key is pressed
	EventKeyDown EventType = iota
	// EventKeyUp is triggered when a key is released
	EventKeyUp
	// EventText carries a typed character (for form fields)
	EventText
	// EventPointerDown is triggered on mouse/touch press
	EventPointerDown
	// EventPointerMove is triggered on mouse/touch movement
	EventPointerMove
	// EventConfirm is the semantic "accept/select" action
	EventConfirm
	// EventCancel is the semantic "back/escape" action
	EventCancel
	// EventUser is a custom user-defined event
	EventUser
)

// String returns the string representation of an EventType
func (e EventType) String() string {
	switch e {
	case EventKeyDown:
		return "KEY_DOWN"
	case EventKeyUp:
		return "KEY_UP"
	case EventText:
		return "TEXT"
	case EventPointerDown:
		return "POINTER_DOWN"
	case EventPointerMove:
		return "POINTER_MOVE"
	case EventConfirm:
		return "CONFIRM"
	case EventCancel:
		return "CANCEL"
	case EventUser:
		return "USER"
	default:
		return "Unknown"
	}
}

// Key identifies an abstract key for EventKeyDown/EventKeyUp events.
// The upstream input layer translates device keys into this set; the core
// never looks at device scancodes.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
)

// String returns the string representation of a Key
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyTab:
		return "Tab"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyBackspace:
		return "Backspace"
	default:
		return "Unknown"
	}
}

// Event represents a single input event routed through the window system.
// Events are value-carriers only; the core never interprets Params contents.
type Event struct {
	// Type is the event discriminant
	Type EventType

	// Key is set for EventKeyDown/EventKeyUp
	Key Key

	// Rune is set for EventText
	Rune rune

	// X, Y are set for pointer events (virtual desktop coordinates)
	X, Y int

	// Timestamp is when the event was created/queued
	Timestamp time.Time

	// Params contains event-specific parameters for EventUser events
	Params map[string]any
}

// NewEvent creates a new event with the given type.
// The timestamp is automatically set to the current time.
func NewEvent(eventType EventType) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now(),
	}
}

// NewKeyEvent creates a key-down event for the given key.
func NewKeyEvent(key Key) *Event {
	ev := NewEvent(EventKeyDown)
	ev.Key = key
	return ev
}

// NewTextEvent creates a text event carrying a typed character.
func NewTextEvent(r rune) *Event {
	ev := NewEvent(EventText)
	ev.Rune = r
	return ev
}

// NewPointerEvent creates a pointer-down event at the given position.
func NewPointerEvent(x, y int) *Event {
	ev := NewEvent(EventPointerDown)
	ev.X = x
	ev.Y = y
	return ev
}

// GetParam retrieves a parameter value by name.
// Returns the value and true if found, or nil and false if not found.
func (e *Event) GetParam(name string) (any, bool) {
	if e.Params == nil {
		return nil, false
	}
	val, ok := e.Params[name]
	return val, ok
}

// SetParam sets a parameter value.
func (e *Event) SetParam(name string, value any) {
	if e.Params == nil {
		e.Params = make(map[string]any)
	}
	e.Params[name] = value
}
