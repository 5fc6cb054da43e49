// Package ui provides the window-management core of the meikyu desktop
// framework: window lifecycle, stacking order, input focus, event routing and
// navigation history. Window contents (shop panels, character sheets, ...)
// live in game code and talk back through the MessageSink.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// WindowState ウィンドウのライフサイクル状態を表す
type WindowState int

const (
	// StateCreated is the initial state after registration, before showing
	StateCreated WindowState = iota
	// StateShown means the window is on the stack and eligible for focus
	StateShown
	// StateHidden means the window is registered but off the stack
	StateHidden
	// StateDestroyed is terminal; no transition leaves it
	StateDestroyed
)

// String returns the string representation of a WindowState
func (s WindowState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateShown:
		return "Shown"
	case StateHidden:
		return "Hidden"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// WindowKind identifies the closed set of window variants.
type WindowKind int

const (
	KindMenu WindowKind = iota
	KindDialog
	KindForm
	KindList
	KindSettings
	KindFacility
)

// String returns the string representation of a WindowKind
func (k WindowKind) String() string {
	switch k {
	case KindMenu:
		return "menu"
	case KindDialog:
		return "dialog"
	case KindForm:
		return "form"
	case KindList:
		return "list"
	case KindSettings:
		return "settings"
	case KindFacility:
		return "facility"
	default:
		return "unknown"
	}
}

// MessageSink receives domain notifications from window implementations
// (menu selections, dialog results, ...). The core never interprets payloads.
// This is used to decouple the ui package from game logic.
type MessageSink interface {
	SendMessage(topic string, payload map[string]any)
}

// Window is a single navigable UI surface with its own lifecycle and focus
// eligibility. The variant set is closed: setState is unexported, so only
// this package can implement Window, and only the WindowManager drives
// lifecycle transitions from outside the package.
type Window interface {
	ID() string
	Kind() WindowKind
	Title() string
	State() WindowState
	// ParentID is a non-owning back-reference into the manager registry,
	// used for hierarchy and back-navigation only. Empty means no parent.
	ParentID() string
	Modal() bool

	// Create is called once by the manager right after registration.
	Create() error
	// OnShow is called after the transition to Shown.
	OnShow()
	// OnHide is called after the transition to Hidden.
	OnHide()
	// OnDestroy is called before the window is dropped from the registry.
	OnDestroy()

	// HandleEvent processes one routed event and reports whether it was
	// consumed. Unconsumed events do not fall through to covered windows.
	HandleEvent(ev *Event) bool
	// HandleEscape processes the semantic cancel/back action. Returning
	// false lets the manager attempt back-navigation instead.
	HandleEscape() bool

	// Update advances per-frame window logic. dt is in seconds.
	Update(dt float64)
	// Draw renders the window onto the screen. Widget visuals belong to
	// game code; the base implementation draws nothing.
	Draw(screen *ebiten.Image)

	setState(state WindowState)
}

// WinOption はウィンドウのオプションを設定する関数型
type WinOption func(*BaseWindow)

// WithTitle はウィンドウのキャプションを設定する
func WithTitle(title string) WinOption {
	return func(w *BaseWindow) {
		w.title = title
	}
}

// WithParent sets the parent window id (non-owning back-reference).
func WithParent(parentID string) WinOption {
	return func(w *BaseWindow) {
		w.parentID = parentID
	}
}

// WithModal marks the window as modal: while shown it demands exclusive
// focus. Fixed at creation time.
func WithModal() WinOption {
	return func(w *BaseWindow) {
		w.modal = true
	}
}

// withSink attaches the session MessageSink. Applied by the manager at
// creation time; not part of the public option surface.
func withSink(sink MessageSink) WinOption {
	return func(w *BaseWindow) {
		w.sink = sink
	}
}

// BaseWindow carries the state shared by every window variant.
// Concrete variants embed it and override the handlers they care about.
type BaseWindow struct {
	id       string
	kind     WindowKind
	title    string
	state    WindowState
	parentID string
	modal    bool
	sink     MessageSink
}

func newBaseWindow(kind WindowKind, id string, opts ...WinOption) BaseWindow {
	w := BaseWindow{
		id:    id,
		kind:  kind,
		state: StateCreated,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

func (w *BaseWindow) ID() string         { return w.id }
func (w *BaseWindow) Kind() WindowKind   { return w.kind }
func (w *BaseWindow) Title() string      { return w.title }
func (w *BaseWindow) State() WindowState { return w.state }
func (w *BaseWindow) ParentID() string   { return w.parentID }
func (w *BaseWindow) Modal() bool        { return w.modal }

func (w *BaseWindow) setState(state WindowState) {
	// Destroyed is terminal.
	if w.state == StateDestroyed {
		return
	}
	w.state = state
}

// Create is a no-op by default.
func (w *BaseWindow) Create() error { return nil }

// OnShow is a no-op by default.
func (w *BaseWindow) OnShow() {}

// OnHide is a no-op by default.
func (w *BaseWindow) OnHide() {}

// OnDestroy is a no-op by default.
func (w *BaseWindow) OnDestroy() {}

// HandleEvent consumes nothing by default.
func (w *BaseWindow) HandleEvent(ev *Event) bool { return false }

// HandleEscape consumes nothing by default, which lets the manager run its
// back-navigation on cancel.
func (w *BaseWindow) HandleEscape() bool { return false }

// Update is a no-op by default.
func (w *BaseWindow) Update(dt float64) {}

// Draw renders nothing by default; widget visuals are game-side.
func (w *BaseWindow) Draw(screen *ebiten.Image) {}

// SendMessage forwards a domain notification to the session's MessageSink.
// Safe to call with no sink attached.
func (w *BaseWindow) SendMessage(topic string, payload map[string]any) {
	if w.sink != nil {
		w.sink.SendMessage(topic, payload)
	}
}
