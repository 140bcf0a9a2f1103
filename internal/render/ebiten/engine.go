package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/novastrike/internal/render"
)

// Engine owns the ebiten window and run loop. The app updates the
// surface once per tick; the engine draws the retained state every
// frame.
type Engine struct {
	surface *Surface
}

var _ render.Engine = (*Engine)(nil)

func NewEngine(surface *Surface) *Engine {
	return &Engine{surface: surface}
}

func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (e *Engine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// Run blocks until the app returns an error or the window closes.
func (e *Engine) Run(app render.App) error {
	return ebiten.RunGame(&gameAdapter{app: app, surface: e.surface})
}

// gameAdapter adapts the app and surface to the ebiten.Game interface.
type gameAdapter struct {
	app     render.App
	surface *Surface
}

func (a *gameAdapter) Update() error {
	return a.app.Update()
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.surface.Draw(screen)
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.surface.width, a.surface.height
}
