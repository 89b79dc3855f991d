package greenflag

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height set the window size. Zero means the stage size.
	Width, Height int
	// ShowFPS draws the actual FPS and TPS in the top-left corner.
	ShowFPS bool
	// GreenFlag starts the project as soon as the window opens.
	GreenFlag bool
}

// game adapts a Runtime to ebiten.Game.
type game struct {
	rt      *Runtime
	showFPS bool
}

func (g *game) Update() error {
	g.rt.Update()
	if g.rt.runner != nil && g.rt.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

// monitorLineHeight is the line height of ebitenutil's debug font.
const monitorLineHeight = 16

func (g *game) Draw(screen *ebiten.Image) {
	g.rt.scene.Draw(screen)
	y := 0
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		y = 2 * monitorLineHeight
	}
	for _, line := range g.rt.MonitorLines() {
		ebitenutil.DebugPrintAt(screen, line, 0, y)
		y += monitorLineHeight
	}
}

// Layout returns the stage size, so screen coordinates are UI coordinates.
func (g *game) Layout(_, _ int) (int, int) {
	return int(g.rt.stage.Width), int(g.rt.stage.Height)
}

// Run opens a window and runs rt until the window closes or an attached
// TestRunner finishes. The runtime is closed when Run returns.
func Run(rt *Runtime, cfg RunConfig) error {
	defer rt.Close()

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = int(rt.stage.Width), int(rt.stage.Height)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetTPS(rt.cfg.TPS)

	if cfg.GreenFlag {
		rt.GreenFlag()
	}
	rt.log.Info().Str("title", cfg.Title).Int("tps", rt.cfg.TPS).Msg("run")
	if err := ebiten.RunGame(&game{rt: rt, showFPS: cfg.ShowFPS}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
