package ui

import (
	"fmt"
	"sync"
	"time"
)

// デフォルトのフォーカス履歴サイズ
const defaultFocusHistorySize = 64

// FocusChange records one successful focus transition.
type FocusChange struct {
	Old       Window // previous owner, nil for none
	New       Window // new owner, nil for none
	OldID     string
	NewID     string
	Timestamp time.Time
}

// FocusListener receives every successful FocusChange. Listeners are invoked
// synchronously, in registration order.
type FocusListener func(change FocusChange)

// FocusManager is the single source of truth for which window currently
// receives input, plus the modal focus lock.
//
// Focus operations never raise for normal rejections (hidden targets,
// locked-out targets); they return booleans the caller is expected to check.
type FocusManager struct {
	focused   Window
	locked    bool
	lockOwner Window
	history   []FocusChange
	maxSize   int
	listeners []FocusListener
	mu        sync.RWMutex
}

// NewFocusManager は新しい FocusManager を作成する
func NewFocusManager() *FocusManager {
	return &FocusManager{
		history: make([]FocusChange, 0, defaultFocusHistorySize),
		maxSize: defaultFocusHistorySize,
	}
}

// SetFocus moves focus to the given window. It fails (returns false) when the
// target is not Shown, or when focus is locked to a different window. On
// success a FocusChange is recorded and all listeners are notified.
func (f *FocusManager) SetFocus(w Window) bool {
	if w == nil {
		return false
	}

	f.mu.Lock()
	if w.State() != StateShown {
		f.mu.Unlock()
		return false
	}
	if f.locked && f.lockOwner != w {
		f.mu.Unlock()
		return false
	}
	if f.focused == w {
		f.mu.Unlock()
		return true
	}

	change := f.recordChangeLocked(f.focused, w)
	f.focused = w
	listeners := make([]FocusListener, len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	// Listeners run outside the lock so they may query focus state.
	for _, l := range listeners {
		l(change)
	}
	return true
}

func (f *FocusManager) recordChangeLocked(prev, next Window) FocusChange {
	change := FocusChange{
		Old:       prev,
		New:       next,
		Timestamp: time.Now(),
	}
	if prev != nil {
		change.OldID = prev.ID()
	}
	if next != nil {
		change.NewID = next.ID()
	}
	f.history = append(f.history, change)
	if len(f.history) > f.maxSize {
		f.history = f.history[1:]
	}
	return change
}

// ClearFocus unconditionally sets focus to none. It bypasses the lock on
// purpose: teardown paths must always be able to drop focus.
func (f *FocusManager) ClearFocus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = nil
}

// LockFocus locks focus to the given window, or to the currently focused
// window when w is nil. While locked, SetFocus rejects any other target.
func (f *FocusManager) LockFocus(w Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w == nil {
		w = f.focused
	}
	if w == nil {
		return
	}
	f.locked = true
	f.lockOwner = w
}

// UnlockFocus releases the focus lock.
func (f *FocusManager) UnlockFocus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = false
	f.lockOwner = nil
}

// IsFocusLocked はフォーカスがロックされているかどうかを返す
func (f *FocusManager) IsFocusLocked() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.locked
}

// FocusedWindow returns the current focus owner, or nil.
func (f *FocusManager) FocusedWindow() Window {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.focused
}

// LockedWindow returns the lock owner, or nil when unlocked.
func (f *FocusManager) LockedWindow() Window {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.locked {
		return nil
	}
	return f.lockOwner
}

// CleanupDestroyedWindows drops focus and/or the lock when their windows have
// transitioned to Destroyed. This is what prevents dangling focus references
// after a cascade destroy.
func (f *FocusManager) CleanupDestroyedWindows() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.focused != nil && f.focused.State() == StateDestroyed {
		f.focused = nil
	}
	if f.locked && (f.lockOwner == nil || f.lockOwner.State() == StateDestroyed) {
		f.locked = false
		f.lockOwner = nil
	}
}

// ValidateFocusState reports consistency drift (focus or lock pointing at a
// dead window) without repairing it.
func (f *FocusManager) ValidateFocusState() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	issues := []string{}
	if f.focused != nil && f.focused.State() == StateDestroyed {
		issues = append(issues, fmt.Sprintf("focus points at destroyed window: %s", f.focused.ID()))
	}
	if f.focused != nil && f.focused.State() == StateHidden {
		issues = append(issues, fmt.Sprintf("focus points at hidden window: %s", f.focused.ID()))
	}
	if f.locked && f.lockOwner == nil {
		issues = append(issues, "focus lock held with no owner")
	}
	if f.locked && f.lockOwner != nil && f.lockOwner.State() == StateDestroyed {
		issues = append(issues, fmt.Sprintf("focus lock owned by destroyed window: %s", f.lockOwner.ID()))
	}
	return issues
}

// AddFocusChangeListener registers a listener for successful focus changes.
func (f *FocusManager) AddFocusChangeListener(listener FocusListener) {
	if listener == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, listener)
}

// History returns a copy of the focus-change history, oldest first.
func (f *FocusManager) History() []FocusChange {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]FocusChange, len(f.history))
	copy(out, f.history)
	return out
}

// Reset clears focus, lock, history and listeners — full re-initialization.
func (f *FocusManager) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = nil
	f.locked = false
	f.lockOwner = nil
	f.history = f.history[:0]
	f.listeners = nil
}
