package ui

// The closed set of window variants. Variants hold navigation state only and
// notify game logic through the MessageSink; they never mutate the window
// system from inside an event handler (such calls take effect next tick by
// the routing contract, so domain code reacts to messages instead).

// MenuItem is one selectable entry of a MenuWindow.
type MenuItem struct {
	Label    string
	Disabled bool
}

// MenuWindow is a plain vertical menu (main menu, pause menu).
// Emits "menu_item_selected" with window_id / index / label.
type MenuWindow struct {
	BaseWindow
	items    []MenuItem
	selected int
}

// NewMenuWindow は新しい MenuWindow を作成する
func NewMenuWindow(id string, opts ...WinOption) *MenuWindow {
	return &MenuWindow{BaseWindow: newBaseWindow(KindMenu, id, opts...)}
}

// SetItems replaces the menu entries and resets the selection.
func (w *MenuWindow) SetItems(items []MenuItem) {
	w.items = items
	w.selected = 0
}

// SelectedIndex returns the current selection index.
func (w *MenuWindow) SelectedIndex() int { return w.selected }

func (w *MenuWindow) HandleEvent(ev *Event) bool {
	switch {
	case ev.Type == EventKeyDown && ev.Key == KeyUp:
		if w.selected > 0 {
			w.selected--
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyDown:
		if w.selected < len(w.items)-1 {
			w.selected++
		}
		return true
	case ev.Type == EventConfirm || (ev.Type == EventKeyDown && ev.Key == KeyEnter):
		if w.selected < 0 || w.selected >= len(w.items) || w.items[w.selected].Disabled {
			return true
		}
		w.SendMessage("menu_item_selected", map[string]any{
			"window_id": w.ID(),
			"index":     w.selected,
			"label":     w.items[w.selected].Label,
		})
		return true
	}
	return false
}

// DialogWindow is a modal confirmation/notification dialog.
// Emits "dialog_result" with the chosen button; escape reports "cancel" and
// lets the manager navigate back.
type DialogWindow struct {
	BaseWindow
	message  string
	buttons  []string
	selected int
}

// NewDialogWindow は新しい DialogWindow を作成する
// ダイアログはデフォルトでモーダル
func NewDialogWindow(id string, opts ...WinOption) *DialogWindow {
	opts = append([]WinOption{WithModal()}, opts...)
	return &DialogWindow{
		BaseWindow: newBaseWindow(KindDialog, id, opts...),
		buttons:    []string{"OK"},
	}
}

// SetMessage sets the dialog body text.
func (w *DialogWindow) SetMessage(message string) { w.message = message }

// Message returns the dialog body text.
func (w *DialogWindow) Message() string { return w.message }

// SetButtons replaces the button labels and resets the selection.
func (w *DialogWindow) SetButtons(buttons []string) {
	w.buttons = buttons
	w.selected = 0
}

// SelectedButton returns the label under the cursor, or "" with no buttons.
func (w *DialogWindow) SelectedButton() string {
	if w.selected < 0 || w.selected >= len(w.buttons) {
		return ""
	}
	return w.buttons[w.selected]
}

func (w *DialogWindow) HandleEvent(ev *Event) bool {
	switch {
	case ev.Type == EventKeyDown && ev.Key == KeyLeft:
		if w.selected > 0 {
			w.selected--
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyRight:
		if w.selected < len(w.buttons)-1 {
			w.selected++
		}
		return true
	case ev.Type == EventConfirm || (ev.Type == EventKeyDown && ev.Key == KeyEnter):
		w.SendMessage("dialog_result", map[string]any{
			"window_id": w.ID(),
			"button":    w.SelectedButton(),
			"index":     w.selected,
		})
		return true
	}
	return false
}

func (w *DialogWindow) HandleEscape() bool {
	w.SendMessage("dialog_result", map[string]any{
		"window_id": w.ID(),
		"button":    "cancel",
		"index":     -1,
	})
	// Not consumed: the manager's back-navigation closes the dialog.
	return false
}

// FormField is one named text field of a FormWindow.
type FormField struct {
	Name  string
	Value string
}

// FormWindow is a multi-field text entry form (character name entry, ...).
// Emits "form_submitted" with the field values.
type FormWindow struct {
	BaseWindow
	fields []FormField
	active int
}

// NewFormWindow は新しい FormWindow を作成する
func NewFormWindow(id string, opts ...WinOption) *FormWindow {
	return &FormWindow{BaseWindow: newBaseWindow(KindForm, id, opts...)}
}

// SetFields replaces the form fields and resets the active field.
func (w *FormWindow) SetFields(fields []FormField) {
	w.fields = fields
	w.active = 0
}

// ActiveField returns the index of the field receiving text input.
func (w *FormWindow) ActiveField() int { return w.active }

// Values returns the current field values keyed by field name.
func (w *FormWindow) Values() map[string]any {
	values := make(map[string]any, len(w.fields))
	for _, f := range w.fields {
		values[f.Name] = f.Value
	}
	return values
}

func (w *FormWindow) HandleEvent(ev *Event) bool {
	switch {
	case ev.Type == EventKeyDown && (ev.Key == KeyTab || ev.Key == KeyDown):
		if len(w.fields) > 0 {
			w.active = (w.active + 1) % len(w.fields)
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyUp:
		if len(w.fields) > 0 {
			w.active = (w.active - 1 + len(w.fields)) % len(w.fields)
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyBackspace:
		if w.active < len(w.fields) {
			value := w.fields[w.active].Value
			if len(value) > 0 {
				runes := []rune(value)
				w.fields[w.active].Value = string(runes[:len(runes)-1])
			}
		}
		return true
	case ev.Type == EventText:
		if w.active < len(w.fields) && ev.Rune != 0 {
			w.fields[w.active].Value += string(ev.Rune)
		}
		return true
	case ev.Type == EventConfirm || (ev.Type == EventKeyDown && ev.Key == KeyEnter):
		w.SendMessage("form_submitted", map[string]any{
			"window_id": w.ID(),
			"values":    w.Values(),
		})
		return true
	}
	return false
}

// ListWindow is a scrollable selection list (inventory, spellbook pages).
// Emits "list_item_selected" with index and entry.
type ListWindow struct {
	BaseWindow
	entries  []string
	cursor   int
	offset   int
	pageSize int
}

// デフォルトの1ページあたりの表示行数
const defaultListPageSize = 8

// NewListWindow は新しい ListWindow を作成する
func NewListWindow(id string, opts ...WinOption) *ListWindow {
	return &ListWindow{
		BaseWindow: newBaseWindow(KindList, id, opts...),
		pageSize:   defaultListPageSize,
	}
}

// SetEntries replaces the list contents and resets cursor and scroll.
func (w *ListWindow) SetEntries(entries []string) {
	w.entries = entries
	w.cursor = 0
	w.offset = 0
}

// SetPageSize sets how many entries are visible at once.
func (w *ListWindow) SetPageSize(size int) {
	if size > 0 {
		w.pageSize = size
	}
}

// Cursor returns the selected entry index.
func (w *ListWindow) Cursor() int { return w.cursor }

// Offset returns the scroll offset (index of the first visible entry).
func (w *ListWindow) Offset() int { return w.offset }

func (w *ListWindow) HandleEvent(ev *Event) bool {
	switch {
	case ev.Type == EventKeyDown && ev.Key == KeyUp:
		if w.cursor > 0 {
			w.cursor--
			if w.cursor < w.offset {
				w.offset = w.cursor
			}
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyDown:
		if w.cursor < len(w.entries)-1 {
			w.cursor++
			if w.cursor >= w.offset+w.pageSize {
				w.offset = w.cursor - w.pageSize + 1
			}
		}
		return true
	case ev.Type == EventConfirm || (ev.Type == EventKeyDown && ev.Key == KeyEnter):
		if w.cursor < 0 || w.cursor >= len(w.entries) {
			return true
		}
		w.SendMessage("list_item_selected", map[string]any{
			"window_id": w.ID(),
			"index":     w.cursor,
			"entry":     w.entries[w.cursor],
		})
		return true
	}
	return false
}

// SettingOption is one multi-valued option row of a SettingsWindow.
type SettingOption struct {
	Name   string
	Values []string
	Index  int
}

// SettingsWindow is an option panel cycling through per-option value sets.
// Emits "setting_changed" on every value change.
type SettingsWindow struct {
	BaseWindow
	options []SettingOption
	cursor  int
}

// NewSettingsWindow は新しい SettingsWindow を作成する
func NewSettingsWindow(id string, opts ...WinOption) *SettingsWindow {
	return &SettingsWindow{BaseWindow: newBaseWindow(KindSettings, id, opts...)}
}

// SetOptions replaces the option rows and resets the cursor.
func (w *SettingsWindow) SetOptions(options []SettingOption) {
	w.options = options
	w.cursor = 0
}

// OptionValue returns the current value of the named option, or "".
func (w *SettingsWindow) OptionValue(name string) string {
	for _, opt := range w.options {
		if opt.Name == name && opt.Index >= 0 && opt.Index < len(opt.Values) {
			return opt.Values[opt.Index]
		}
	}
	return ""
}

func (w *SettingsWindow) cycle(delta int) {
	if w.cursor < 0 || w.cursor >= len(w.options) {
		return
	}
	opt := &w.options[w.cursor]
	if len(opt.Values) == 0 {
		return
	}
	opt.Index = (opt.Index + delta + len(opt.Values)) % len(opt.Values)
	w.SendMessage("setting_changed", map[string]any{
		"window_id": w.ID(),
		"name":      opt.Name,
		"value":     opt.Values[opt.Index],
	})
}

func (w *SettingsWindow) HandleEvent(ev *Event) bool {
	switch {
	case ev.Type == EventKeyDown && ev.Key == KeyUp:
		if w.cursor > 0 {
			w.cursor--
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyDown:
		if w.cursor < len(w.options)-1 {
			w.cursor++
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyLeft:
		w.cycle(-1)
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyRight:
		w.cycle(1)
		return true
	case ev.Type == EventConfirm || (ev.Type == EventKeyDown && ev.Key == KeyEnter):
		applied := make(map[string]any, len(w.options))
		for _, opt := range w.options {
			if opt.Index >= 0 && opt.Index < len(opt.Values) {
				applied[opt.Name] = opt.Values[opt.Index]
			}
		}
		w.SendMessage("settings_applied", map[string]any{
			"window_id": w.ID(),
			"values":    applied,
		})
		return true
	}
	return false
}

// FacilityWindow is the action menu of a town facility (guild, shop, inn).
// Emits "facility_action_selected" per action and "facility_exit_requested"
// when the player backs out.
type FacilityWindow struct {
	BaseWindow
	facility string
	actions  []string
	cursor   int
}

// NewFacilityWindow は新しい FacilityWindow を作成する
func NewFacilityWindow(id string, opts ...WinOption) *FacilityWindow {
	return &FacilityWindow{BaseWindow: newBaseWindow(KindFacility, id, opts...)}
}

// SetFacility names the facility this window fronts.
func (w *FacilityWindow) SetFacility(name string) { w.facility = name }

// SetActions replaces the action entries and resets the cursor.
func (w *FacilityWindow) SetActions(actions []string) {
	w.actions = actions
	w.cursor = 0
}

func (w *FacilityWindow) HandleEvent(ev *Event) bool {
	switch {
	case ev.Type == EventKeyDown && ev.Key == KeyUp:
		if w.cursor > 0 {
			w.cursor--
		}
		return true
	case ev.Type == EventKeyDown && ev.Key == KeyDown:
		if w.cursor < len(w.actions)-1 {
			w.cursor++
		}
		return true
	case ev.Type == EventConfirm || (ev.Type == EventKeyDown && ev.Key == KeyEnter):
		if w.cursor < 0 || w.cursor >= len(w.actions) {
			return true
		}
		w.SendMessage("facility_action_selected", map[string]any{
			"window_id": w.ID(),
			"facility":  w.facility,
			"action":    w.actions[w.cursor],
		})
		return true
	}
	return false
}

func (w *FacilityWindow) HandleEscape() bool {
	w.SendMessage("facility_exit_requested", map[string]any{
		"window_id": w.ID(),
		"facility":  w.facility,
	})
	// Not consumed: backing out of a facility is ordinary back-navigation.
	return false
}
