package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hoshigaki/meikyu/pkg/input"
	"github.com/hoshigaki/meikyu/pkg/ui"
)

// Game はEbitengineのゲームインターフェースを実装する
// 1ティックごとに 入力収集 → ルーティング → メッセージ処理 → 更新 を回す
type Game struct {
	wm        *ui.WindowManager
	session   *Session
	collector *input.Collector
	timeout   time.Duration
	startTime time.Time
	width     int
	height    int
}

// NewGame Gameを作成
func NewGame(wm *ui.WindowManager, session *Session, timeout time.Duration, width, height int) *Game {
	return &Game{
		wm:        wm,
		session:   session,
		collector: input.NewCollector(),
		timeout:   timeout,
		startTime: time.Now(),
		width:     width,
		height:    height,
	}
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
func (g *Game) Update() error {
	// タイムアウトチェック
	if g.timeout > 0 && time.Since(g.startTime) >= g.timeout {
		return ebiten.Termination
	}
	if g.session.QuitRequested() {
		return ebiten.Termination
	}

	events := g.collector.Collect()
	g.wm.HandleGlobalEvents(events)

	// Window operations requested by handlers land here, on the tick after
	// the dispatch that produced them.
	g.session.Drain()

	g.wm.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 画面の描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	g.wm.Draw(screen)
}

// Layout 仮想デスクトップの解像度を返す
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
