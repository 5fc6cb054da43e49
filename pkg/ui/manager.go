package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ManagerOption はWindowManagerのオプションを設定する関数型
type ManagerOption func(*WindowManager)

// WithDebugMode enables verbose dispatch logging and the on-screen overlay.
func WithDebugMode(enabled bool) ManagerOption {
	return func(m *WindowManager) {
		m.debugMode = enabled
	}
}

// WithTargetFPS records the target frame rate. Informational only; the core
// does not enforce it.
func WithTargetFPS(fps int) ManagerOption {
	return func(m *WindowManager) {
		m.targetFPS = fps
	}
}

// WithMessageSink attaches the sink that windows notify domain logic through.
func WithMessageSink(sink MessageSink) ManagerOption {
	return func(m *WindowManager) {
		m.sink = sink
	}
}

// WithLogger sets the manager logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *WindowManager) {
		m.log = log
	}
}

// WindowManager owns the registry of all live windows for one UI session and
// composes the stack, focus, router and statistics subsystems into the public
// API used by game code.
//
// It is the only component allowed to drive a Window's lifecycle state from
// outside this package. Construct one per session (dependency-injected, not
// global) so tests can run independent instances.
type WindowManager struct {
	registry map[string]Window
	stack    *WindowStack
	focus    *FocusManager
	router   *EventRouter
	stats    *StatisticsManager
	overlay  *DebugOverlay

	sink      MessageSink
	log       *slog.Logger
	debugMode bool
	targetFPS int
	mu        sync.RWMutex
}

// NewWindowManager は新しい WindowManager を作成する
func NewWindowManager(opts ...ManagerOption) *WindowManager {
	m := &WindowManager{
		registry: make(map[string]Window),
		stack:    NewWindowStack(),
		focus:    NewFocusManager(),
		stats:    NewStatisticsManager(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.router = NewEventRouter(m.log)
	m.overlay = NewDebugOverlayWithLogger(m.log)
	if m.debugMode {
		m.router.SetDebugMode(true)
		m.overlay.SetEnabled(true)
	}
	return m
}

// Stack returns the window stack (read access for tooling and tests).
func (m *WindowManager) Stack() *WindowStack { return m.stack }

// Focus returns the focus manager.
func (m *WindowManager) Focus() *FocusManager { return m.focus }

// Router returns the event router, e.g. to register global handlers.
func (m *WindowManager) Router() *EventRouter { return m.router }

// CreateWindow instantiates and registers a window of the given kind. The
// window starts in Created state and is not yet shown. A duplicate id among
// live windows is a usage error and fails.
func (m *WindowManager) CreateWindow(kind WindowKind, id string, opts ...WinOption) (Window, error) {
	if id == "" {
		return nil, ErrEmptyWindowID
	}

	m.mu.Lock()
	if _, exists := m.registry[id]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("create window %q: %w", id, ErrDuplicateWindowID)
	}
	m.mu.Unlock()

	opts = append(opts, withSink(m.sink))

	var w Window
	switch kind {
	case KindMenu:
		w = NewMenuWindow(id, opts...)
	case KindDialog:
		w = NewDialogWindow(id, opts...)
	case KindForm:
		w = NewFormWindow(id, opts...)
	case KindList:
		w = NewListWindow(id, opts...)
	case KindSettings:
		w = NewSettingsWindow(id, opts...)
	case KindFacility:
		w = NewFacilityWindow(id, opts...)
	default:
		return nil, fmt.Errorf("create window %q: %w: %d", id, ErrUnknownWindowKind, kind)
	}

	if err := w.Create(); err != nil {
		return nil, fmt.Errorf("create window %q: %w", id, err)
	}

	m.mu.Lock()
	// Re-check: Create() callbacks may have registered windows themselves.
	if _, exists := m.registry[id]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("create window %q: %w", id, ErrDuplicateWindowID)
	}
	m.registry[id] = w
	m.mu.Unlock()

	m.stats.WindowCreated()
	m.log.Debug("window created", "id", id, "kind", kind.String(), "modal", w.Modal(), "parent", w.ParentID())
	return w, nil
}

// ShowWindow transitions a window to Shown, optionally pushes it onto the
// stack, and tries to focus it. Modal windows lock focus when the focus grab
// succeeds. Showing a destroyed window is a no-op.
func (m *WindowManager) ShowWindow(w Window, pushToStack bool) {
	if w == nil || w.State() == StateDestroyed {
		return
	}

	w.setState(StateShown)
	if pushToStack {
		// Re-showing a covered window raises it, so focus and stack top
		// stay in agreement.
		if !m.stack.Raise(w) {
			m.stack.Push(w)
		}
	}
	w.OnShow()

	if m.focus.SetFocus(w) && w.Modal() {
		m.focus.LockFocus(w)
	}
	m.log.Debug("window shown", "id", w.ID(), "pushed", pushToStack)
}

// HideWindow transitions a window to Hidden and removes it from the stack.
// If it held focus (or the modal lock) those are released.
func (m *WindowManager) HideWindow(w Window) {
	if w == nil || w.State() == StateDestroyed {
		return
	}

	m.stack.Remove(w)
	w.setState(StateHidden)

	if m.focus.LockedWindow() == w {
		m.focus.UnlockFocus()
	}
	if m.focus.FocusedWindow() == w {
		m.focus.ClearFocus()
	}

	w.OnHide()
	m.log.Debug("window hidden", "id", w.ID())
}

// CloseWindow destroys a window. Alias for DestroyWindow; game code tends to
// say "close" for player-driven paths and "destroy" for teardown.
func (m *WindowManager) CloseWindow(w Window) {
	m.DestroyWindow(w)
}

// DestroyWindow transitions a window to Destroyed and cascades: every
// registered window whose parent chain includes it is destroyed too,
// children before parents. Stack and focus references are cleaned up.
func (m *WindowManager) DestroyWindow(w Window) {
	if w == nil || w.State() == StateDestroyed {
		return
	}

	victims := m.collectCascade(w)
	for _, victim := range victims {
		m.stack.Remove(victim)
		victim.setState(StateDestroyed)
		victim.OnDestroy()
		m.stats.WindowDestroyed()
		m.log.Debug("window destroyed", "id", victim.ID())
	}

	m.focus.CleanupDestroyedWindows()
}

// collectCascade removes w and all its registry descendants from the registry
// and returns them ordered children-first, so destruction runs bottom-up.
func (m *WindowManager) collectCascade(w Window) []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	depths := map[string]int{w.ID(): 0}
	victims := []Window{w}

	// Transitive children: iterate until no new descendant is found. The
	// registry is small (tens of windows), so the quadratic walk is fine.
	for {
		grew := false
		for id, candidate := range m.registry {
			if _, taken := depths[id]; taken {
				continue
			}
			parentDepth, ok := depths[candidate.ParentID()]
			if !ok {
				continue
			}
			depths[id] = parentDepth + 1
			victims = append(victims, candidate)
			grew = true
		}
		if !grew {
			break
		}
	}

	sort.SliceStable(victims, func(i, j int) bool {
		return depths[victims[i].ID()] > depths[victims[j].ID()]
	})

	for _, victim := range victims {
		delete(m.registry, victim.ID())
	}
	return victims
}

// GoBack destroys the active window and re-focuses the one underneath. The
// root window is never popped: on a stack of one (or none) this returns false
// and mutates nothing.
func (m *WindowManager) GoBack() bool {
	if m.stack.Len() <= 1 {
		return false
	}
	top := m.stack.Pop()
	m.DestroyWindow(top)
	m.refocusTop()
	return true
}

// GoBackToRoot destroys every stacked window except the root and re-focuses
// it. Returns false if nothing was popped.
func (m *WindowManager) GoBackToRoot() bool {
	if m.stack.Len() <= 1 {
		return false
	}
	for m.stack.Len() > 1 {
		m.DestroyWindow(m.stack.Pop())
	}
	m.refocusTop()
	return true
}

// GoBackToWindow destroys stacked windows until the named window is active.
// If the id is not on the stack, nothing changes and false is returned.
func (m *WindowManager) GoBackToWindow(id string) bool {
	if m.stack.FindWindow(id) == nil {
		return false
	}
	for top := m.stack.Peek(); top != nil && top.ID() != id; top = m.stack.Peek() {
		m.DestroyWindow(m.stack.Pop())
	}
	m.refocusTop()
	return true
}

// refocusTop hands focus to the new active window after back-navigation.
// A standing modal lock is honored: if the new top is the lock owner the
// focus grab succeeds, otherwise it fails silently.
func (m *WindowManager) refocusTop() {
	top := m.stack.Peek()
	if top == nil {
		m.focus.ClearFocus()
		return
	}
	if m.focus.SetFocus(top) && top.Modal() && m.focus.LockedWindow() == nil {
		m.focus.LockFocus(top)
	}
}

// HandleGlobalEvents routes a batch of raw events in arrival order. Cancel
// events that no handler consumes trigger a back-navigation attempt; at the
// root window that attempt silently does nothing.
func (m *WindowManager) HandleGlobalEvents(events []*Event) {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		consumed := m.router.Route(ev, m.stack, m.focus)
		m.stats.EventProcessed()
		if !consumed && ev.Type == EventCancel {
			m.GoBack()
		}
	}
}

// GetActiveWindow returns the top of the stack, or nil.
func (m *WindowManager) GetActiveWindow() Window {
	return m.stack.Peek()
}

// GetWindow returns the registered window with the given id, or nil.
func (m *WindowManager) GetWindow(id string) Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry[id]
}

// WindowCount returns the number of registered (live) windows.
func (m *WindowManager) WindowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.registry)
}

// Update advances per-frame logic on every stacked window, bottom to top.
// dt is in seconds.
func (m *WindowManager) Update(dt float64) {
	for _, w := range m.stack.snapshot() {
		w.Update(dt)
	}
}

// Draw renders stacked windows bottom to top (painter's order) and the debug
// overlay on top when debug mode is on.
func (m *WindowManager) Draw(screen *ebiten.Image) {
	for _, w := range m.stack.snapshot() {
		w.Draw(screen)
	}
	m.overlay.Draw(screen, m)
	m.stats.FrameRendered()
}

// Statistics returns a snapshot of the session counters.
func (m *WindowManager) Statistics() *Stats {
	return m.stats.Snapshot()
}

// SetDebugMode toggles verbose dispatch logging and the on-screen overlay.
func (m *WindowManager) SetDebugMode(enabled bool) {
	m.mu.Lock()
	m.debugMode = enabled
	m.mu.Unlock()
	m.router.SetDebugMode(enabled)
	m.overlay.SetEnabled(enabled)
}

// IsDebugMode はデバッグモードが有効かどうかを返す
func (m *WindowManager) IsDebugMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.debugMode
}

// ValidateSystemState aggregates the stack and focus diagnostics with
// registry-consistency checks. Returns human-readable issue strings; intended
// for tests and debug tooling, not runtime enforcement.
func (m *WindowManager) ValidateSystemState() []string {
	issues := []string{}
	issues = append(issues, m.stack.ValidateStack()...)
	issues = append(issues, m.focus.ValidateFocusState()...)

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.stack.snapshot() {
		if _, ok := m.registry[w.ID()]; !ok {
			issues = append(issues, fmt.Sprintf("stacked window not in registry: %s", w.ID()))
		}
	}
	for id, w := range m.registry {
		if w.State() == StateDestroyed {
			issues = append(issues, fmt.Sprintf("destroyed window still registered: %s", id))
		}
	}
	return issues
}

// DebugInfo returns a human-readable dump of the whole system state.
func (m *WindowManager) DebugInfo() string {
	var sb strings.Builder
	sb.WriteString("=== Window System ===\n")
	sb.WriteString(fmt.Sprintf("Registered: %d\n", m.WindowCount()))
	sb.WriteString("Stack (bottom to top):\n")
	for _, line := range m.stack.StackTrace() {
		sb.WriteString("  " + line + "\n")
	}
	if focused := m.focus.FocusedWindow(); focused != nil {
		sb.WriteString(fmt.Sprintf("Focus: %s (locked: %v)\n", focused.ID(), m.focus.IsFocusLocked()))
	} else {
		sb.WriteString(fmt.Sprintf("Focus: none (locked: %v)\n", m.focus.IsFocusLocked()))
	}
	if issues := m.ValidateSystemState(); len(issues) > 0 {
		sb.WriteString("Issues:\n")
		for _, issue := range issues {
			sb.WriteString("  " + issue + "\n")
		}
	}
	sb.WriteString(m.stats.Report())
	return sb.String()
}

// Cleanup destroys every registered window, clears the stack and focus, and
// resets statistics. Used at session teardown.
func (m *WindowManager) Cleanup() {
	m.mu.RLock()
	live := make([]Window, 0, len(m.registry))
	for _, w := range m.registry {
		live = append(live, w)
	}
	m.mu.RUnlock()

	for _, w := range live {
		m.DestroyWindow(w)
	}
	m.stack.Clear()
	m.focus.Reset()
	m.stats.Reset()
	m.log.Info("window manager cleaned up")
}
