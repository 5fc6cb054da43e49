package ui

import (
	"log/slog"
	"sync"
)

// GlobalEventHandler is a pre-dispatch handler checked before any window.
// Surrounding game code registers these for session-level concerns (quit
// shortcuts, screenshot keys). Returning true consumes the event.
type GlobalEventHandler func(ev *Event) bool

// EventRouter decides which window receives an input event, honoring modal
// exclusivity.
//
// Dispatch order per event:
//  1. Global handlers, in registration order, first consumer wins. These run
//     even while focus is locked so session-level handlers keep working under
//     a modal dialog.
//  2. Cancel events go to HandleEscape on the focused (else topmost) window.
//  3. When focus is locked, the locked window receives the event exclusively.
//  4. Otherwise the topmost stack window receives it. Covered windows are
//     inert: an unconsumed event does not fall through.
//
// Dispatch is single-threaded; the stack/focus snapshot is read once per
// event, so window operations triggered by a handler take effect on the next
// routing decision.
type EventRouter struct {
	globalHandlers []GlobalEventHandler
	debugMode      bool
	log            *slog.Logger
	mu             sync.RWMutex
}

// NewEventRouter は新しい EventRouter を作成する
func NewEventRouter(log *slog.Logger) *EventRouter {
	if log == nil {
		log = slog.Default()
	}
	return &EventRouter{log: log}
}

// RegisterGlobalHandler adds a pre-dispatch handler. Handlers are consulted
// in registration order; the first to consume an event wins.
func (r *EventRouter) RegisterGlobalHandler(handler GlobalEventHandler) {
	if handler == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.globalHandlers = append(r.globalHandlers, handler)
}

// SetDebugMode toggles per-dispatch decision logging. Observability only; no
// behavioral change.
func (r *EventRouter) SetDebugMode(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debugMode = enabled
}

// IsDebugMode はデバッグモードが有効かどうかを返す
func (r *EventRouter) IsDebugMode() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.debugMode
}

// Route dispatches one event given the current stack/focus state and reports
// whether any handler consumed it.
func (r *EventRouter) Route(ev *Event, stack *WindowStack, focus *FocusManager) bool {
	if ev == nil {
		return false
	}

	r.mu.RLock()
	handlers := r.globalHandlers
	debug := r.debugMode
	r.mu.RUnlock()

	for i, handler := range handlers {
		if handler(ev) {
			if debug {
				r.log.Debug("event consumed by global handler", "type", ev.Type.String(), "handler", i)
			}
			return true
		}
	}

	if ev.Type == EventCancel {
		return r.routeEscape(stack, focus, debug)
	}

	if locked := focus.LockedWindow(); locked != nil {
		consumed := locked.HandleEvent(ev)
		if debug {
			r.log.Debug("event routed to locked window", "type", ev.Type.String(), "window", locked.ID(), "consumed", consumed)
		}
		return consumed
	}

	top := stack.Peek()
	if top == nil {
		if debug {
			r.log.Debug("event dropped, empty stack", "type", ev.Type.String())
		}
		return false
	}
	consumed := top.HandleEvent(ev)
	if debug {
		r.log.Debug("event routed to top window", "type", ev.Type.String(), "window", top.ID(), "consumed", consumed)
	}
	return consumed
}

// routeEscape funnels the cancel action into HandleEscape so every window
// variant shares the same close/back semantics.
func (r *EventRouter) routeEscape(stack *WindowStack, focus *FocusManager, debug bool) bool {
	target := focus.FocusedWindow()
	if target == nil {
		target = stack.Peek()
	}
	if target == nil {
		return false
	}
	consumed := target.HandleEscape()
	if debug {
		r.log.Debug("escape routed", "window", target.ID(), "consumed", consumed)
	}
	return consumed
}
