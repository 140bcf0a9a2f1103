package session

import (
	"chosenoffset.com/novastrike/internal/hotkeys"
	"chosenoffset.com/novastrike/internal/sim"
)

// Snapshot is everything the render pipeline needs for one tick,
// gathered in a single read so the frame is drawn from a consistent
// view of the session.
type Snapshot struct {
	State    sim.State
	GameOver bool

	Score        float64
	Coins        int
	Lives        int
	MaxLives     int
	ShootRefill  int
	Invulnerable bool

	Field       sim.Field
	Ship        sim.Ship
	Enemies     []sim.Enemy
	Projectiles []sim.Projectile

	ShopOpen  bool
	ShopItems []sim.Item

	LoginVisible bool
	LoggedIn     bool
	Username     string
	Loading      bool
	Validating   bool

	ErrorMessage string
	Hotkeys      []hotkeys.Hotkey
}

// Snapshot captures the current session state. Reading it polls the
// game-over latch, so callbacks fire on the tick the run ends.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:    c.sim.State(),
		GameOver: c.IsGameOver(),

		Score:        c.sim.Score(),
		Coins:        c.sim.Coins(),
		Lives:        c.sim.Lives(),
		MaxLives:     c.sim.MaxLives(),
		ShootRefill:  c.sim.ShootRefill(),
		Invulnerable: c.sim.Invulnerable(),

		Field:       c.sim.PlayField(),
		Ship:        c.sim.PlayerShip(),
		Enemies:     c.sim.Enemies(),
		Projectiles: c.sim.Projectiles(),

		ShopOpen:  c.overlay.ShopOpen(),
		ShopItems: c.sim.ShopItems(),

		LoginVisible: c.LoginOverlayVisible(),
		LoggedIn:     c.auth.LoggedIn(),
		Username:     c.auth.Username(),
		Loading:      c.auth.Loading(),
		Validating:   c.auth.Validating(),

		ErrorMessage: c.ErrorMessage(),
		Hotkeys:      c.keys.Hotkeys(),
	}
}
