package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/width"
)

// デバッグオーバーレイの色定義
var (
	debugTextColor  = color.RGBA{255, 255, 0, 255} // 黄色
	debugFocusColor = color.RGBA{0, 255, 0, 255}   // 緑色
	debugBgColor    = color.RGBA{0, 0, 0, 200}     // 半透明黒
)

// デフォルトフォント
var debugFace = text.NewGoXFace(basicfont.Face7x13)

const (
	debugGlyphWidth = 7
	debugLineHeight = 15
	debugPadding    = 4
)

// DebugOverlay draws the window-system state (stack trace, focus, counters)
// on top of the frame when enabled. Observability only.
type DebugOverlay struct {
	enabled bool
	log     *slog.Logger
	mu      sync.RWMutex
}

// NewDebugOverlay は新しい DebugOverlay を作成する
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{log: slog.Default()}
}

// NewDebugOverlayWithLogger は新しい DebugOverlay をロガー付きで作成する
func NewDebugOverlayWithLogger(log *slog.Logger) *DebugOverlay {
	if log == nil {
		log = slog.Default()
	}
	return &DebugOverlay{log: log}
}

// SetEnabled はデバッグオーバーレイの有効/無効を設定する
func (do *DebugOverlay) SetEnabled(enabled bool) {
	do.mu.Lock()
	defer do.mu.Unlock()
	do.enabled = enabled
	if do.log != nil {
		do.log.Debug("DebugOverlay enabled state changed", "enabled", enabled)
	}
}

// IsEnabled はデバッグオーバーレイが有効かどうかを返す
func (do *DebugOverlay) IsEnabled() bool {
	do.mu.RLock()
	defer do.mu.RUnlock()
	return do.enabled
}

// Draw renders the overlay in the top-left corner of the screen.
func (do *DebugOverlay) Draw(screen *ebiten.Image, m *WindowManager) {
	if screen == nil || !do.IsEnabled() {
		return
	}

	lines := do.buildLines(m)
	if len(lines) == 0 {
		return
	}

	maxCols := 0
	for _, line := range lines {
		if cols := displayWidth(line); cols > maxCols {
			maxCols = cols
		}
	}

	bgW := float32(maxCols*debugGlyphWidth + 2*debugPadding)
	bgH := float32(len(lines)*debugLineHeight + 2*debugPadding)
	vector.DrawFilledRect(screen, 0, 0, bgW, bgH, debugBgColor, false)

	for i, line := range lines {
		clr := debugTextColor
		if strings.HasPrefix(line, "focus:") {
			clr = debugFocusColor
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(debugPadding, float64(debugPadding+i*debugLineHeight))
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, line, debugFace, op)
	}
}

func (do *DebugOverlay) buildLines(m *WindowManager) []string {
	windows := m.stack.snapshot()

	// Captions may be CJK; align the state column on display width.
	captionCols := 0
	for _, w := range windows {
		if cols := displayWidth(w.Title()); cols > captionCols {
			captionCols = cols
		}
	}

	lines := make([]string, 0, len(windows)+3)
	lines = append(lines, "-- window stack --")
	for i, w := range windows {
		line := fmt.Sprintf("[%d] %-16s %s (%s, %s)",
			i, w.ID(), padDisplay(w.Title(), captionCols), w.Kind(), w.State())
		if w.Modal() {
			line += " [modal]"
		}
		if i == len(windows)-1 {
			line += " <- top"
		}
		lines = append(lines, line)
	}

	focusLine := "focus: none"
	if focused := m.focus.FocusedWindow(); focused != nil {
		focusLine = "focus: " + focused.ID()
	}
	if m.focus.IsFocusLocked() {
		focusLine += " [locked]"
	}
	lines = append(lines, focusLine)
	lines = append(lines, m.stats.Compact())
	return lines
}

// displayWidth returns the number of terminal-style display columns the
// string occupies, counting East Asian wide/fullwidth runes as two.
func displayWidth(s string) int {
	cols := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cols += 2
		default:
			cols++
		}
	}
	return cols
}

// padDisplay right-pads s with spaces up to cols display columns.
func padDisplay(s string, cols int) string {
	gap := cols - displayWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
