// Package game wires the session controller, render pipeline, login
// overlay and input together into the per-tick app the engine drives.
package game

import (
	"chosenoffset.com/novastrike/internal/hotkeys"
	"chosenoffset.com/novastrike/internal/render"
	"chosenoffset.com/novastrike/internal/session"
	"chosenoffset.com/novastrike/internal/ui/login"
	"chosenoffset.com/novastrike/internal/ui/view"
)

// App runs one session: tick the controller, route input, render.
type App struct {
	ctrl     *session.Controller
	pipeline *view.Pipeline
	form     *login.Form
	surface  render.Surface
	input    render.InputManager
}

var _ render.App = (*App)(nil)

// NewApp builds the app and registers the default hotkeys and click
// targets.
func NewApp(ctrl *session.Controller, surface render.Surface, input render.InputManager) *App {
	a := &App{
		ctrl:     ctrl,
		pipeline: view.NewPipeline(ctrl, surface),
		form:     login.NewForm(ctrl, surface, input),
		surface:  surface,
		input:    input,
	}

	surface.OnClick(render.NodeStartButton, ctrl.ToggleGameState)
	surface.OnClick(render.NodeGameOver, ctrl.ToggleGameState)
	surface.OnClick(render.NodeShopClose, ctrl.ToggleShop)
	surface.OnClick(render.NodeError, ctrl.DismissError)

	ctrl.RegisterHotkeys(
		hotkeys.Hotkey{
			Matches:     hotkeys.KeyIs("s"),
			Action:      ctrl.ToggleShop,
			DisplayKey:  "S",
			Description: "Toggle shop",
		},
		hotkeys.Hotkey{
			Matches:     hotkeys.KeyIs("Enter"),
			Action:      ctrl.ToggleGameState,
			DisplayKey:  "Enter",
			Description: "Start, pause and resume",
		},
		hotkeys.Hotkey{
			Matches:     hotkeys.KeyIs(" "),
			Action:      ctrl.Shoot,
			DisplayKey:  " ",
			Description: "Shoot",
		},
	)

	return a
}

// Update runs one tick: session first, then input, then rendering.
func (a *App) Update() error {
	a.ctrl.Tick()

	a.handleMouse()
	for _, key := range a.input.JustPressedKeys() {
		a.ctrl.HandleKey(hotkeys.Event{Key: key})
	}
	a.form.Update()

	a.pipeline.Render()
	a.form.Render()
	return nil
}

// handleMouse rotates the ship toward the cursor and routes presses:
// surface controls first, anything left over inside the field shoots.
func (a *App) handleMouse() {
	cx, cy := a.input.CursorPosition()
	fx, fy, fw, fh, ok := a.surface.NodeBounds(render.NodeField)
	if !ok {
		return
	}

	ship := a.ctrl.Snapshot().Ship
	a.ctrl.RotateShip(float64(cx)-fx-ship.X, float64(cy)-fy-ship.Y)

	if !a.input.MouseJustPressed() {
		return
	}
	if a.surface.Click(cx, cy) {
		return
	}
	inField := float64(cx) >= fx && float64(cx) <= fx+fw &&
		float64(cy) >= fy && float64(cy) <= fy+fh
	if inField {
		a.ctrl.Shoot()
	}
}
