package ui

// Shared helpers for the package tests.

// newShownMenu builds a menu window already in Shown state, bypassing the
// manager for component-level tests.
func newShownMenu(id string, opts ...WinOption) *MenuWindow {
	w := NewMenuWindow(id, opts...)
	w.setState(StateShown)
	return w
}

// newShownDialog builds a modal dialog window already in Shown state.
func newShownDialog(id string, opts ...WinOption) *DialogWindow {
	w := NewDialogWindow(id, opts...)
	w.setState(StateShown)
	return w
}

// recorderWindow records every routed event and consumes per configuration.
// Test-only; production variants live in windows.go.
type recorderWindow struct {
	BaseWindow
	events        []*Event
	escapes       int
	consume       bool
	consumeEscape bool
}

func newRecorderWindow(id string, opts ...WinOption) *recorderWindow {
	w := &recorderWindow{BaseWindow: newBaseWindow(KindMenu, id, opts...)}
	w.setState(StateShown)
	return w
}

func (w *recorderWindow) HandleEvent(ev *Event) bool {
	w.events = append(w.events, ev)
	return w.consume
}

func (w *recorderWindow) HandleEscape() bool {
	w.escapes++
	return w.consumeEscape
}

// recordingSink captures SendMessage calls for assertions.
type recordingSink struct {
	topics   []string
	payloads []map[string]any
}

func (s *recordingSink) SendMessage(topic string, payload map[string]any) {
	s.topics = append(s.topics, topic)
	s.payloads = append(s.payloads, payload)
}

func (s *recordingSink) last() (string, map[string]any) {
	if len(s.topics) == 0 {
		return "", nil
	}
	return s.topics[len(s.topics)-1], s.payloads[len(s.payloads)-1]
}
