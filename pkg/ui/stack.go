package ui

import (
	"fmt"
	"sync"
)

// デフォルトのクローズ履歴サイズ
const defaultStackHistorySize = 32

// WindowStack maintains the ordered LIFO chain of open windows plus a bounded
// history of closed window ids. The bottom entry is the first-pushed (root)
// window; the top entry is the active one.
//
// The stack is a package-internal tool of the WindowManager: it may mark
// windows Hidden/Destroyed as part of its operations, but it never fires
// lifecycle callbacks — that is the manager's job.
type WindowStack struct {
	windows []Window
	history []string // ids of closed windows, oldest first
	maxSize int
	mu      sync.RWMutex
}

// NewWindowStack は新しい WindowStack を作成する
func NewWindowStack() *WindowStack {
	return &WindowStack{
		windows: make([]Window, 0),
		history: make([]string, 0, defaultStackHistorySize),
		maxSize: defaultStackHistorySize,
	}
}

// Push appends a window to the top of the stack. Pushing a window that is
// already present is a deliberate no-op, not an error: the stack never holds
// the same window twice.
func (s *WindowStack) Push(w Window) {
	if w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.windows {
		if existing == w {
			return
		}
	}
	s.windows = append(s.windows, w)
}

// Raise moves an already-stacked window to the top without recording history.
// Returns false if the window is not on the stack.
func (s *WindowStack) Raise(w Window) bool {
	if w == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.windows {
		if existing == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			s.windows = append(s.windows, w)
			return true
		}
	}
	return false
}

// Pop removes and returns the top window, recording it in the close history.
// Returns nil on an empty stack.
func (s *WindowStack) Pop() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popLocked()
}

func (s *WindowStack) popLocked() Window {
	if len(s.windows) == 0 {
		return nil
	}
	top := s.windows[len(s.windows)-1]
	s.windows = s.windows[:len(s.windows)-1]
	s.recordClosedLocked(top.ID())
	return top
}

func (s *WindowStack) recordClosedLocked(id string) {
	s.history = append(s.history, id)
	if len(s.history) > s.maxSize {
		s.history = s.history[1:]
	}
}

// Peek returns the topmost window without mutation, or nil on an empty stack.
func (s *WindowStack) Peek() Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Remove removes a window from anywhere in the stack and marks it Hidden.
// Used when a non-top window is closed programmatically. Returns false if the
// window is not on the stack.
func (s *WindowStack) Remove(w Window) bool {
	if w == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.windows {
		if existing == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			w.setState(StateHidden)
			return true
		}
	}
	return false
}

// FindWindow returns the stacked window with the given id, or nil.
func (s *WindowStack) FindWindow(id string) Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.windows {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

// GoBack pops the top window and marks it Destroyed. The root window is never
// popped by back-navigation: on a stack of one (or zero) windows GoBack
// returns false and mutates nothing.
func (s *WindowStack) GoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.windows) <= 1 {
		return false
	}
	top := s.popLocked()
	top.setState(StateDestroyed)
	return true
}

// GoBackToRoot pops every window except the bottom (first-pushed) one,
// marking the popped windows Destroyed. Returns false if nothing was popped.
func (s *WindowStack) GoBackToRoot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.windows) <= 1 {
		return false
	}
	for len(s.windows) > 1 {
		top := s.popLocked()
		top.setState(StateDestroyed)
	}
	return true
}

// GoBackToWindow pops windows until the named window is on top. If the id is
// not present the stack is left unchanged and false is returned.
func (s *WindowStack) GoBackToWindow(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, w := range s.windows {
		if w.ID() == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for s.windows[len(s.windows)-1].ID() != id {
		top := s.popLocked()
		top.setState(StateDestroyed)
	}
	return true
}

// Clear empties the stack, marking every window Hidden. The close history is
// kept; Reset semantics belong to the manager's Cleanup.
func (s *WindowStack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.windows {
		w.setState(StateHidden)
	}
	s.windows = s.windows[:0]
}

// Len returns the number of stacked windows.
func (s *WindowStack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows)
}

// History returns a copy of the close history, oldest first.
func (s *WindowStack) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// ValidateStack reports duplicate ids among stack members. This is a
// diagnostic for tests and debug tooling, not an invariant enforcer.
func (s *WindowStack) ValidateStack() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issues := []string{}
	seen := make(map[string]int)
	for _, w := range s.windows {
		seen[w.ID()]++
	}
	for id, count := range seen {
		if count > 1 {
			issues = append(issues, fmt.Sprintf("duplicate window id on stack: %s (%d entries)", id, count))
		}
	}
	return issues
}

// StackTrace returns a human-readable bottom-to-top listing of the stack,
// marking the top window and modal entries. Used for debugging and tests.
func (s *WindowStack) StackTrace() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, 0, len(s.windows))
	for i, w := range s.windows {
		line := fmt.Sprintf("[%d] %s (%s, %s)", i, w.ID(), w.Kind(), w.State())
		if w.Modal() {
			line += " [modal]"
		}
		if i == len(s.windows)-1 {
			line += " <- top"
		}
		lines = append(lines, line)
	}
	return lines
}

// snapshot returns a bottom-to-top copy of the stacked windows for iteration
// outside the lock (update/draw passes).
func (s *WindowStack) snapshot() []Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}
