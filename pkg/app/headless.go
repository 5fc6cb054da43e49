package app

import (
	"time"

	"github.com/hoshigaki/meikyu/pkg/ui"
)

// デフォルトのヘッドレス実行ティック数
const defaultHeadlessTicks = 300

// runHeadless drives the session without a display: a fixed-rate tick loop
// with a small scripted input walk. Used in CI and for smoke-testing the
// routing path end to end.
func (app *Application) runHeadless(wm *ui.WindowManager, session *Session) error {
	ticks := defaultHeadlessTicks
	if app.cliConfig.Timeout > 0 {
		ticks = int(app.cliConfig.Timeout.Seconds() * float64(app.config.TargetFPS))
	}

	// 台本: メニュー移動 → ギルドへ → 戻る → 終了ダイアログ
	script := map[int][]*ui.Event{
		10: {ui.NewKeyEvent(ui.KeyDown)},
		20: {ui.NewKeyEvent(ui.KeyUp)},
		30: {ui.NewEvent(ui.EventConfirm)}, // Guild
		50: {ui.NewEvent(ui.EventCancel)},  // back to main menu
		70: {ui.NewKeyEvent(ui.KeyDown), ui.NewKeyEvent(ui.KeyDown), ui.NewKeyEvent(ui.KeyDown), ui.NewKeyEvent(ui.KeyDown)},
		80: {ui.NewEvent(ui.EventConfirm)}, // Quit dialog
		90: {ui.NewEvent(ui.EventConfirm)}, // Yes
	}

	dt := 1.0 / float64(app.config.TargetFPS)
	for tick := 0; tick < ticks; tick++ {
		if session.QuitRequested() {
			break
		}
		wm.HandleGlobalEvents(script[tick])
		session.Drain()
		wm.Update(dt)
	}

	if issues := wm.ValidateSystemState(); len(issues) > 0 {
		for _, issue := range issues {
			app.log.Warn("system state issue", "issue", issue)
		}
	}
	app.log.Info("headless run complete", "uptime", time.Duration(float64(ticks)*dt*float64(time.Second)))
	return nil
}
