// Package input translates raw Ebitengine keyboard/mouse state into the
// abstract events the window core routes. It is the framework's stock
// upstream input layer; the core itself never touches device state.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hoshigaki/meikyu/pkg/ui"
)

// keyMap maps device keys to abstract keys for plain key-down events.
// A slice keeps event order deterministic when several keys land on one tick.
var keyMap = []struct {
	device   ebiten.Key
	abstract ui.Key
}{
	{ebiten.KeyArrowUp, ui.KeyUp},
	{ebiten.KeyArrowDown, ui.KeyDown},
	{ebiten.KeyArrowLeft, ui.KeyLeft},
	{ebiten.KeyArrowRight, ui.KeyRight},
	{ebiten.KeyTab, ui.KeyTab},
	{ebiten.KeySpace, ui.KeySpace},
	{ebiten.KeyBackspace, ui.KeyBackspace},
}

// Collector samples input state once per tick. One instance per session; the
// rune buffer is reused across ticks.
type Collector struct {
	runes []rune
}

// NewCollector は新しい Collector を作成する
func NewCollector() *Collector {
	return &Collector{}
}

// Collect returns the abstract events for this tick, in a stable order:
// semantic actions first (confirm/cancel), then keys, text, pointer.
func (c *Collector) Collect() []*ui.Event {
	events := []*ui.Event{}

	// Enterキー（1回だけ反応）
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		events = append(events, ui.NewEvent(ui.EventConfirm))
	}

	// Escキー（1回だけ反応）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, ui.NewEvent(ui.EventCancel))
	}

	// F1 toggles the debug overlay; delivered as a user event so the
	// session's global handler can consume it before any window.
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		ev := ui.NewEvent(ui.EventUser)
		ev.SetParam("action", "toggle_debug")
		events = append(events, ev)
	}

	for _, mapping := range keyMap {
		if inpututil.IsKeyJustPressed(mapping.device) {
			events = append(events, ui.NewKeyEvent(mapping.abstract))
		}
	}

	c.runes = ebiten.AppendInputChars(c.runes[:0])
	for _, r := range c.runes {
		events = append(events, ui.NewTextEvent(r))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		events = append(events, ui.NewPointerEvent(x, y))
	}

	return events
}
