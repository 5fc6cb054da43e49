package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hoshigaki/meikyu/pkg/ui"
)

// Message is one queued domain notification from a window.
type Message struct {
	Topic   string
	Payload map[string]any
}

// Session is the demo game shell around the window core: it builds the
// window tree (main menu, facilities, dialogs) and reacts to window
// messages. It implements ui.MessageSink by queueing, so window operations
// always happen on the tick after the dispatch that requested them.
type Session struct {
	wm      *ui.WindowManager
	log     *slog.Logger
	pending []Message
	quit    bool
	mu      sync.Mutex
}

// NewSession は新しい Session を作成する
func NewSession(log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{log: log}
}

// Attach binds the window manager. Must be called before Start; the manager
// needs the session as its sink at construction, hence the two-step wiring.
func (s *Session) Attach(wm *ui.WindowManager) {
	s.wm = wm
}

// SendMessage implements ui.MessageSink: notifications are queued and
// processed by Drain on the next tick.
func (s *Session) SendMessage(topic string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, Message{Topic: topic, Payload: payload})
}

// QuitRequested reports whether the player confirmed quitting.
func (s *Session) QuitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

// Start builds the root window tree and registers global handlers.
func (s *Session) Start() error {
	s.wm.Router().RegisterGlobalHandler(func(ev *ui.Event) bool {
		if ev.Type != ui.EventUser {
			return false
		}
		if action, ok := ev.GetParam("action"); ok && action == "toggle_debug" {
			s.wm.SetDebugMode(!s.wm.IsDebugMode())
			return true
		}
		return false
	})

	w, err := s.wm.CreateWindow(ui.KindMenu, "main_menu", ui.WithTitle("迷宮"))
	if err != nil {
		return fmt.Errorf("build main menu: %w", err)
	}
	menu := w.(*ui.MenuWindow)
	menu.SetItems([]ui.MenuItem{
		{Label: "Guild"},
		{Label: "Shop"},
		{Label: "Party"},
		{Label: "Settings"},
		{Label: "Quit"},
	})
	s.wm.ShowWindow(menu, true)
	return nil
}

// Drain processes every queued message. Called once per tick, after event
// dispatch.
func (s *Session) Drain() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, msg := range pending {
		s.handle(msg)
	}
}

func (s *Session) handle(msg Message) {
	s.log.Debug("message", "topic", msg.Topic, "payload", msg.Payload)

	switch msg.Topic {
	case "menu_item_selected":
		if msg.Payload["window_id"] == "main_menu" {
			s.handleMainMenu(msg.Payload["label"])
		}
	case "dialog_result":
		if msg.Payload["window_id"] == "quit_dialog" {
			if msg.Payload["button"] == "Yes" {
				s.mu.Lock()
				s.quit = true
				s.mu.Unlock()
			} else if msg.Payload["button"] != "cancel" {
				// "cancel" arrives via escape; back-navigation already ran.
				s.wm.GoBack()
			}
		}
	case "facility_action_selected":
		if msg.Payload["action"] == "Leave" {
			s.wm.GoBack()
		} else {
			s.log.Info("facility action", "facility", msg.Payload["facility"], "action", msg.Payload["action"])
		}
	case "list_item_selected":
		if msg.Payload["window_id"] == "party_list" {
			s.openRenameForm(msg.Payload["entry"])
		}
	case "form_submitted":
		s.log.Info("form submitted", "values", msg.Payload["values"])
		s.wm.GoBack()
	case "settings_applied":
		s.log.Info("settings applied", "values", msg.Payload["values"])
		s.wm.GoBack()
	case "facility_exit_requested", "setting_changed":
		// Informational; back-navigation and value changes already applied.
	}
}

func (s *Session) handleMainMenu(label any) {
	switch label {
	case "Guild":
		s.openFacility("guild", "冒険者ギルド", []string{"Accept Quest", "Turn In", "Roster", "Leave"})
	case "Shop":
		s.openFacility("shop", "道具屋", []string{"Buy", "Sell", "Leave"})
	case "Party":
		s.openPartyList()
	case "Settings":
		s.openSettings()
	case "Quit":
		s.openQuitDialog()
	}
}

func (s *Session) openFacility(id, name string, actions []string) {
	if s.reshowExisting(id) {
		return
	}
	w, err := s.wm.CreateWindow(ui.KindFacility, id,
		ui.WithTitle(name), ui.WithParent("main_menu"))
	if err != nil {
		s.log.Warn("open facility failed", "id", id, "error", err)
		return
	}
	facility := w.(*ui.FacilityWindow)
	facility.SetFacility(name)
	facility.SetActions(actions)
	s.wm.ShowWindow(facility, true)
}

func (s *Session) openPartyList() {
	if s.reshowExisting("party_list") {
		return
	}
	w, err := s.wm.CreateWindow(ui.KindList, "party_list",
		ui.WithTitle("パーティ"), ui.WithParent("main_menu"))
	if err != nil {
		s.log.Warn("open party list failed", "error", err)
		return
	}
	list := w.(*ui.ListWindow)
	list.SetEntries([]string{"Aldric", "Benna", "Corvus", "Delia", "Edda", "Fenn"})
	s.wm.ShowWindow(list, true)
}

func (s *Session) openRenameForm(entry any) {
	name, _ := entry.(string)
	if s.reshowExisting("rename_form") {
		return
	}
	w, err := s.wm.CreateWindow(ui.KindForm, "rename_form",
		ui.WithTitle("改名"), ui.WithParent("party_list"))
	if err != nil {
		s.log.Warn("open rename form failed", "error", err)
		return
	}
	form := w.(*ui.FormWindow)
	form.SetFields([]ui.FormField{{Name: "name", Value: name}})
	s.wm.ShowWindow(form, true)
}

func (s *Session) openSettings() {
	if s.reshowExisting("settings") {
		return
	}
	w, err := s.wm.CreateWindow(ui.KindSettings, "settings",
		ui.WithTitle("設定"), ui.WithParent("main_menu"))
	if err != nil {
		s.log.Warn("open settings failed", "error", err)
		return
	}
	settings := w.(*ui.SettingsWindow)
	settings.SetOptions([]ui.SettingOption{
		{Name: "bgm", Values: []string{"on", "off"}},
		{Name: "speed", Values: []string{"slow", "normal", "fast"}, Index: 1},
		{Name: "difficulty", Values: []string{"story", "classic", "ironman"}, Index: 1},
	})
	s.wm.ShowWindow(settings, true)
}

func (s *Session) openQuitDialog() {
	if s.reshowExisting("quit_dialog") {
		return
	}
	w, err := s.wm.CreateWindow(ui.KindDialog, "quit_dialog",
		ui.WithTitle("確認"), ui.WithParent("main_menu"))
	if err != nil {
		s.log.Warn("open quit dialog failed", "error", err)
		return
	}
	dialog := w.(*ui.DialogWindow)
	dialog.SetMessage("Leave the labyrinth?")
	dialog.SetButtons([]string{"Yes", "No"})
	s.wm.ShowWindow(dialog, true)
}

// reshowExisting re-shows a still-registered (hidden) window instead of
// re-creating it, so ids stay unique among live windows.
func (s *Session) reshowExisting(id string) bool {
	if w := s.wm.GetWindow(id); w != nil {
		s.wm.ShowWindow(w, true)
		return true
	}
	return false
}
