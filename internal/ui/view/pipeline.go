// Package view is the render pipeline: once per tick it folds the
// session snapshot into the retained surface. Entity markers are
// cheap, so they are cleared and rebuilt every tick; the shop and the
// lives row carry click targets and layout, so they are only rebuilt
// when the data behind them changes.
package view

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"chosenoffset.com/novastrike/internal/render"
	"chosenoffset.com/novastrike/internal/session"
	"chosenoffset.com/novastrike/internal/sim"
)

// Pipeline writes one frame of surface mutations per Render call.
type Pipeline struct {
	ctrl    *session.Controller
	surface render.Surface

	lastShop  []shopKey
	lastLives int
}

// shopKey is the part of a shop item the rebuild check looks at. A
// description or price change alone does not trigger a rebuild; it
// rides along with the next level change.
type shopKey struct {
	id    int
	level int
}

func NewPipeline(ctrl *session.Controller, surface render.Surface) *Pipeline {
	return &Pipeline{ctrl: ctrl, surface: surface, lastLives: -1}
}

// Render draws one tick worth of state.
func (p *Pipeline) Render() {
	snap := p.ctrl.Snapshot()

	p.surface.SetSize(render.NodeField, float64(snap.Field.Width), float64(snap.Field.Height))
	p.renderHUD(snap)
	p.renderEntities(snap)
	p.renderLives(snap)
	p.renderShop(snap)
	p.renderHotkeys(snap)
	p.renderError(snap)
	p.renderGameOver(snap)
}

func (p *Pipeline) renderHUD(snap session.Snapshot) {
	p.surface.SetText(render.NodeScore, humanize.Comma(int64(math.Round(snap.Score))))
	p.surface.SetText(render.NodeCoins, humanize.Comma(int64(snap.Coins)))
	p.surface.SetSize(render.NodeShootRefill, float64(snap.ShootRefill), 0)

	label := "Start new game"
	switch snap.State {
	case sim.Running:
		label = "Pause"
	case sim.Paused:
		label = "Resume"
	}
	p.surface.SetText(render.NodeStartButton, label)
	p.surface.ToggleClass(render.NodeStartButton, render.ClassRunning, snap.State == sim.Running)

	status := ""
	switch {
	case snap.Validating:
		status = "Checking session..."
	case snap.Loading:
		status = "Syncing..."
	case snap.LoggedIn:
		status = snap.Username
	}
	p.surface.SetText(render.NodeStatus, status)
}

func (p *Pipeline) renderEntities(snap session.Snapshot) {
	shipClass := "ship"
	if snap.Invulnerable {
		shipClass += " " + render.ClassInvulnerable
	}
	p.surface.PlaceEntity(render.ShipEntityID, shipClass,
		snap.Ship.X, snap.Ship.Y, snap.Ship.Width, snap.Ship.Height, snap.Ship.Angle())

	p.surface.RemoveEntities("enemy")
	for _, en := range snap.Enemies {
		p.surface.PlaceEntity(en.ID, "enemy "+en.Type.String(),
			en.X, en.Y, en.Radius*2, en.Radius*2, 0)
	}

	p.surface.RemoveEntities("projectile")
	for _, pr := range snap.Projectiles {
		p.surface.PlaceEntity(pr.ID, "projectile",
			pr.X, pr.Y, pr.Radius*2, pr.Radius*2, pr.Angle())
	}
}

// renderLives rebuilds the hearts row only when the lives count
// changes. A change to MaxLives alone slips through until the next
// lives change; losing a life right after buying an extra heart is
// rare enough that nobody has hit it.
func (p *Pipeline) renderLives(snap session.Snapshot) {
	if snap.Lives == p.lastLives {
		return
	}
	rows := make([]render.Row, 0, snap.MaxLives)
	for i := 0; i < snap.MaxLives; i++ {
		class := "heart grey"
		if i < snap.Lives {
			class = "heart red"
		}
		rows = append(rows, render.Row{Class: class})
	}
	p.surface.SetRows(render.NodeLives, rows)
	p.lastLives = snap.Lives
}

// renderShop rebuilds the item rows only while the shop is open and
// only when an (id, level) pair differs from the last build.
func (p *Pipeline) renderShop(snap session.Snapshot) {
	p.surface.ToggleClass(render.NodeShop, render.ClassOpen, snap.ShopOpen)
	if !snap.ShopOpen {
		return
	}

	keys := make([]shopKey, len(snap.ShopItems))
	for i, it := range snap.ShopItems {
		keys[i] = shopKey{id: it.ID, level: it.Level}
	}
	if shopKeysEqual(p.lastShop, keys) {
		return
	}

	rows := make([]render.Row, 0, len(snap.ShopItems))
	for _, it := range snap.ShopItems {
		maxed := it.Level >= it.MaxLevel
		label := humanize.Comma(int64(it.Price))
		class := "shop-item"
		if maxed {
			label = "Max"
			class += " " + render.ClassMaxLevel
		}
		id := it.ID
		rows = append(rows, render.Row{
			ID:      fmt.Sprintf("shop-item-%d", it.ID),
			Class:   class,
			Text:    it.Title,
			Detail:  it.Description,
			Label:   label,
			Fill:    it.Level,
			Max:     it.MaxLevel,
			OnClick: func() { p.ctrl.BuyItem(id) },
		})
	}
	p.surface.SetRows(render.NodeShopItems, rows)
	p.lastShop = keys
}

func (p *Pipeline) renderHotkeys(snap session.Snapshot) {
	rows := make([]render.Row, 0, len(snap.Hotkeys))
	for _, hk := range snap.Hotkeys {
		rows = append(rows, render.Row{
			Class:  "hotkey",
			Text:   hk.DisplayKey,
			Detail: hk.Description,
		})
	}
	p.surface.SetRows(render.NodeHotkeys, rows)
}

func (p *Pipeline) renderError(snap session.Snapshot) {
	hasError := snap.ErrorMessage != ""
	p.surface.ToggleClass(render.NodeError, render.ClassHidden, !hasError)
	if hasError {
		p.surface.SetText(render.NodeError, snap.ErrorMessage)
	}
}

// renderGameOver toggles the panel every tick but refreshes the
// summary numbers only while it is shown.
func (p *Pipeline) renderGameOver(snap session.Snapshot) {
	p.surface.ToggleClass(render.NodeGameOver, render.ClassHidden, !snap.GameOver)
	if !snap.GameOver {
		return
	}
	p.surface.SetText(render.NodeGameOverScore, humanize.Comma(int64(math.Round(snap.Score))))
	p.surface.SetText(render.NodeGameOverCoins, humanize.Comma(int64(snap.Coins)))
}

func shopKeysEqual(a, b []shopKey) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
