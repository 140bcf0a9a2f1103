// Package sim holds the arcade simulation: the capability interface the
// session layer programs against, the concrete engine behind it, and the
// saved-game format used to rebuild a run from a persisted record.
package sim

import "math"

// State is the run state of the simulation.
type State int

const (
	NotRunning State = iota
	Running
	Paused
)

// String returns a human readable state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "not running"
	}
}

// EnemyType distinguishes enemy behavior and rendering class.
type EnemyType int

const (
	Asteroid EnemyType = iota
	Raider
	Debris
)

// String returns the lowercase class name used by render surfaces.
func (t EnemyType) String() string {
	switch t {
	case Raider:
		return "raider"
	case Debris:
		return "debris"
	default:
		return "asteroid"
	}
}

// Field is the playfield the simulation runs in. Coordinates are
// top-left origin, matching the surface the game is rendered to.
type Field struct {
	Width  int
	Height int
}

// Ship is the player ship. X/Y is the center, DX/DY the facing vector.
type Ship struct {
	X, Y   float64
	DX, DY float64
	Width  float64
	Height float64
}

// Angle returns the facing angle of the ship in radians.
func (s Ship) Angle() float64 {
	return math.Atan2(s.DY, s.DX)
}

// Enemy is a hostile object drifting through the field.
type Enemy struct {
	ID             int64
	Type           EnemyType
	X, Y           float64
	DX, DY         float64
	Radius         float64
	Health         int
	ReproduceLimit float64
}

// Projectile is a shot fired by the player ship.
type Projectile struct {
	ID     int64
	X, Y   float64
	DX, DY float64
	Radius float64
	Hits   int
	Damage int
}

// Angle returns the travel angle of the projectile in radians.
func (p Projectile) Angle() float64 {
	return math.Atan2(p.DY, p.DX)
}

// Item is one shop upgrade as exposed to the UI. Price is the cost of
// the next level (capped at the final level's price once maxed).
type Item struct {
	ID            int
	Title         string
	Description   string
	InternalPrice int
	Price         int
	Level         int
	MaxLevel      int
}

// SavedGame is the engine-side load format of a persisted run.
// Purchases are replayed on load, so only item ids and levels are kept.
type SavedGame struct {
	ID                int64
	Score             float64
	Coins             int
	Lives             int
	EnemySpawnTimeout float64
	Items             []SavedItem
}

// SavedItem is one purchased upgrade in a SavedGame.
type SavedItem struct {
	ID    int
	Level int
}

// Simulation is the capability surface the session controller drives.
// Commands never return errors; failures surface through ErrorMessage
// and expire on their own unless dismissed first.
type Simulation interface {
	// Tick advances the simulation by one frame. A no-op unless Running,
	// except that the error message timer always counts down.
	Tick()

	// StartGame discards the current run and starts a fresh one.
	StartGame()
	// Pause suspends a Running game. No-op otherwise.
	Pause()
	// Resume continues a Paused game. No-op otherwise.
	Resume()
	// EndGame zeroes lives and stops the run. No-op unless Running or Paused.
	EndGame()

	// Shoot fires a projectile along the ship facing, subject to the
	// shoot cooldown. Only effective while Running.
	Shoot()
	// RotateShip points the ship along the given delta vector.
	RotateShip(dx, dy float64)
	// BuyItem purchases one level of a shop item while Running or Paused.
	// Failures land in the error message channel.
	BuyItem(id int)

	// LoadGame replaces the current run with a saved one, left Paused.
	LoadGame(rec SavedGame)
	// ID returns the persisted record id of the run, 0 when unsaved.
	ID() int64
	// SetID attaches a persisted record id to the run.
	SetID(id int64)

	State() State
	Score() float64
	Coins() int
	Lives() int
	MaxLives() int
	Invulnerable() bool
	// ShootRefill reports cooldown progress as a 0-100 percentage.
	ShootRefill() int
	EnemySpawnTimeout() float64

	PlayField() Field
	PlayerShip() Ship
	Enemies() []Enemy
	Projectiles() []Projectile
	ShopItems() []Item

	// ErrorMessage returns the active simulation error, "" when none.
	ErrorMessage() string
	// DismissError clears the active error before its timer runs out.
	DismissError()
}
