// Package app wires one UI session together: arguments, logger, config,
// window manager, and the Ebitengine (or headless) loop.
package app

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hoshigaki/meikyu/pkg/cli"
	"github.com/hoshigaki/meikyu/pkg/config"
	"github.com/hoshigaki/meikyu/pkg/logger"
	"github.com/hoshigaki/meikyu/pkg/ui"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	cliConfig *cli.Config
	config    *config.Config
	log       *slog.Logger
}

// New Applicationを作成
func New() *Application {
	return &Application{}
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	cliConfig, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.cliConfig = cliConfig

	if cliConfig.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	// 2. 設定ファイルの読み込み
	cfg, err := config.Load(cliConfig.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.config = cfg

	// フラグが設定を上書きする
	if cliConfig.Debug {
		cfg.DebugMode = true
	}
	if cliConfig.LogLevel != "info" {
		cfg.LogLevel = cliConfig.LogLevel
	}

	// 3. ロガーの初期化
	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()
	app.log.Info("Session starting", "debug", cfg.DebugMode, "target_fps", cfg.TargetFPS, "headless", cliConfig.Headless)

	// 4. セッションとウィンドウマネージャの構築
	session := NewSession(logger.WithComponent("session"))
	wm := ui.NewWindowManager(
		ui.WithDebugMode(cfg.DebugMode),
		ui.WithTargetFPS(cfg.TargetFPS),
		ui.WithMessageSink(session),
		ui.WithLogger(logger.WithComponent("ui")),
	)
	session.Attach(wm)

	if err := session.Start(); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	// 5. 実行（GUIまたはヘッドレス）
	if cliConfig.Headless {
		err = app.runHeadless(wm, session)
	} else {
		err = app.runGUI(wm, session)
	}

	stats := wm.Statistics()
	app.log.Info("Session finished",
		"windows_created", stats.WindowsCreated,
		"windows_destroyed", stats.WindowsDestroyed,
		"events_processed", stats.EventsProcessed,
		"frames_rendered", stats.FramesRendered,
		"uptime", stats.Uptime)
	wm.Cleanup()
	return err
}

// runGUI はEbitengineのゲームループでセッションを実行する
func (app *Application) runGUI(wm *ui.WindowManager, session *Session) error {
	ebiten.SetWindowSize(app.config.WindowWidth, app.config.WindowHeight)
	ebiten.SetWindowTitle("meikyu")
	ebiten.SetTPS(app.config.TargetFPS)

	game := NewGame(wm, session, app.cliConfig.Timeout, app.config.WindowWidth, app.config.WindowHeight)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
