package sim

import (
	"math"
	"math/rand"
	"time"
)

// errorDuration is how many ticks a simulation error stays visible
// unless dismissed first.
const errorDuration = 100

// settings holds the tunable parameters of a run. Shop purchases mutate
// these in place, which is why every run starts from a fresh copy.
type settings struct {
	field                Field
	shipSize             float64
	projectileSpeed      float64
	projectileHits       int
	asteroidProbability  float64
	enemySpeedMultiplier float64
	enemyMinSpeed        float64
	enemySpawnTimeout    float64
	coinMultiplier       int
	scoreIncrease        float64
	shipVisibility       float64
	shootTimeout         int
	maxLives             int
	invulnerabilityTime  int
}

func defaultSettings() settings {
	return settings{
		field:                Field{Width: 1100, Height: 700},
		shipSize:             80,
		projectileSpeed:      5.0,
		projectileHits:       1,
		asteroidProbability:  0.6,
		enemySpeedMultiplier: 2.0,
		enemyMinSpeed:        0.5,
		enemySpawnTimeout:    80.0,
		coinMultiplier:       10,
		scoreIncrease:        0.03,
		shipVisibility:       5.0,
		shootTimeout:         70,
		maxLives:             3,
		invulnerabilityTime:  100,
	}
}

// game is one run: the state machine plus everything on the field.
type game struct {
	rng *rand.Rand
	cfg settings

	id    int64
	state State
	score float64
	coins int
	lives int

	ship        Ship
	enemies     []Enemy
	projectiles []Projectile

	timeUntilNextShot   int
	timeUntilVulnerable int
	timeUntilSpawn      float64

	nextID int64
}

func newGame(rng *rand.Rand) (*game, *shop) {
	cfg := defaultSettings()
	g := &game{
		rng:   rng,
		cfg:   cfg,
		lives: cfg.maxLives,
		ship: Ship{
			X:      float64(cfg.field.Width) / 2,
			Y:      float64(cfg.field.Height) / 2,
			DX:     0,
			DY:     -1,
			Width:  cfg.shipSize,
			Height: cfg.shipSize,
		},
		timeUntilSpawn: cfg.enemySpawnTimeout,
	}
	return g, newShop()
}

func (g *game) newID() int64 {
	g.nextID++
	return g.nextID
}

func (g *game) tick() {
	if g.state != Running {
		return
	}

	g.score += g.cfg.scoreIncrease
	if g.timeUntilNextShot > 0 {
		g.timeUntilNextShot--
	}
	if g.timeUntilVulnerable > 0 {
		g.timeUntilVulnerable--
	}

	g.collideProjectiles()
	g.collideShip()

	// The field gets more crowded as the score climbs.
	if int(math.Round(g.score))%100 == 0 && g.cfg.enemySpawnTimeout > 1.0 {
		g.cfg.enemySpawnTimeout -= g.cfg.scoreIncrease
	}
	g.timeUntilSpawn--
	if g.timeUntilSpawn <= 0 {
		g.spawnEnemy()
		g.timeUntilSpawn = g.cfg.enemySpawnTimeout
	}

	g.moveProjectiles()
	g.moveEnemies()
}

func (g *game) shoot() {
	if g.state != Running || g.timeUntilNextShot > 0 {
		return
	}
	dx, dy, ok := normalize(g.ship.DX, g.ship.DY)
	if !ok {
		return
	}
	g.projectiles = append(g.projectiles, Projectile{
		ID:     g.newID(),
		X:      g.ship.X,
		Y:      g.ship.Y,
		DX:     dx * g.cfg.projectileSpeed,
		DY:     dy * g.cfg.projectileSpeed,
		Radius: 10,
		Hits:   g.cfg.projectileHits,
		Damage: 1,
	})
	g.timeUntilNextShot = g.cfg.shootTimeout
}

func (g *game) pause() {
	if g.state == Running {
		g.state = Paused
	}
}

func (g *game) resume() {
	if g.state == Paused {
		g.state = Running
	}
}

func (g *game) end() {
	if g.state == Running || g.state == Paused {
		g.lives = 0
		g.state = NotRunning
	}
}

func (g *game) rotate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	g.ship.DX = dx
	g.ship.DY = dy
}

func (g *game) collideProjectiles() {
	var survivors, spawned []Enemy
	for _, en := range g.enemies {
		destroyed := false
		for i := range g.projectiles {
			p := &g.projectiles[i]
			if p.Hits <= 0 {
				continue
			}
			if !collides(en.X, en.Y, en.Radius, p.X, p.Y, p.Radius) {
				continue
			}
			p.Hits--
			en.Health -= p.Damage
			if en.Health <= 0 {
				destroyed = true
				g.coins += en.Type.coinValue() * g.cfg.coinMultiplier
				spawned = append(spawned, g.splitEnemy(en)...)
			}
			break
		}
		if !destroyed {
			survivors = append(survivors, en)
		}
	}
	g.enemies = append(survivors, spawned...)
}

func (g *game) collideShip() {
	var survivors []Enemy
	for _, en := range g.enemies {
		if !collides(en.X, en.Y, en.Radius, g.ship.X, g.ship.Y, g.ship.Width/2) {
			survivors = append(survivors, en)
			continue
		}
		// The enemy is consumed by the collision either way.
		if g.timeUntilVulnerable <= 0 {
			g.timeUntilVulnerable = g.cfg.invulnerabilityTime
			g.lives--
			if g.lives <= 0 {
				g.lives = 0
				g.state = NotRunning
			}
		}
	}
	g.enemies = survivors
}

// splitEnemy breaks a destroyed enemy into smaller children unless it
// has shrunk below its reproduce limit. Destroyed raiders leave debris.
func (g *game) splitEnemy(en Enemy) []Enemy {
	if en.Radius <= en.ReproduceLimit {
		return nil
	}
	count := 2 + g.rng.Intn(2)
	children := make([]Enemy, 0, count)
	for i := 0; i < count; i++ {
		typ := en.Type
		if typ == Raider {
			typ = Debris
		}
		angle := g.rng.Float64() * 2 * math.Pi
		speed := g.cfg.enemyMinSpeed + g.rng.Float64()*g.cfg.enemySpeedMultiplier
		children = append(children, Enemy{
			ID:             g.newID(),
			Type:           typ,
			X:              en.X,
			Y:              en.Y,
			DX:             math.Cos(angle) * speed,
			DY:             math.Sin(angle) * speed,
			Radius:         en.Radius / 2,
			Health:         1,
			ReproduceLimit: en.ReproduceLimit,
		})
	}
	return children
}

func (g *game) spawnEnemy() {
	typ := Asteroid
	if g.rng.Float64() > g.cfg.asteroidProbability {
		typ = Raider
	}
	radius := 20 + g.rng.Float64()*20
	fw := float64(g.cfg.field.Width)
	fh := float64(g.cfg.field.Height)

	var x, y float64
	switch g.rng.Intn(4) {
	case 0:
		x, y = -radius, g.rng.Float64()*fh
	case 1:
		x, y = fw+radius, g.rng.Float64()*fh
	case 2:
		x, y = g.rng.Float64()*fw, -radius
	default:
		x, y = g.rng.Float64()*fw, fh+radius
	}

	speed := g.cfg.enemyMinSpeed + g.rng.Float64()*g.cfg.enemySpeedMultiplier
	var tx, ty float64
	if typ == Raider && g.rng.Float64()*10 < g.cfg.shipVisibility {
		// The raider spotted the ship and heads straight for it.
		tx, ty = g.ship.X, g.ship.Y
	} else {
		tx = fw * (0.25 + g.rng.Float64()*0.5)
		ty = fh * (0.25 + g.rng.Float64()*0.5)
	}
	dx, dy, ok := normalize(tx-x, ty-y)
	if !ok {
		dx, dy = 1, 0
	}

	g.enemies = append(g.enemies, Enemy{
		ID:             g.newID(),
		Type:           typ,
		X:              x,
		Y:              y,
		DX:             dx * speed,
		DY:             dy * speed,
		Radius:         radius,
		Health:         1,
		ReproduceLimit: 5 + g.rng.Float64()*5,
	})
}

func (g *game) moveProjectiles() {
	kept := g.projectiles[:0]
	for _, p := range g.projectiles {
		p.X += p.DX
		p.Y += p.DY
		if p.Hits <= 0 || g.outOfBounds(p.X, p.Y, p.Radius) {
			continue
		}
		kept = append(kept, p)
	}
	g.projectiles = kept
}

func (g *game) moveEnemies() {
	kept := g.enemies[:0]
	for _, en := range g.enemies {
		en.X += en.DX
		en.Y += en.DY
		if g.outOfBounds(en.X, en.Y, en.Radius*2) {
			continue
		}
		kept = append(kept, en)
	}
	g.enemies = kept
}

func (g *game) outOfBounds(x, y, margin float64) bool {
	return x < -margin || x > float64(g.cfg.field.Width)+margin ||
		y < -margin || y > float64(g.cfg.field.Height)+margin
}

func (t EnemyType) coinValue() int {
	switch t {
	case Raider:
		return 2
	case Debris:
		return 4
	default:
		return 1
	}
}

// collides reports whether two round objects overlap, with a little
// slack so grazing passes don't count as hits.
func collides(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx+dy*dy) < (r1+r2)*0.8
}

func normalize(dx, dy float64) (float64, float64, bool) {
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return 0, 0, false
	}
	return dx / length, dy / length, true
}

// Engine is the concrete Simulation. A single logical thread drives it;
// it does no locking of its own.
type Engine struct {
	rng  *rand.Rand
	g    *game
	shop *shop

	errMsg   string
	errTicks int
}

var _ Simulation = (*Engine)(nil)

// NewEngine creates an engine with a fresh, not yet running game.
func NewEngine() *Engine {
	return newEngine(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newEngine(rng *rand.Rand) *Engine {
	e := &Engine{rng: rng}
	e.g, e.shop = newGame(rng)
	return e
}

// Tick advances the error timer and, while Running, the game by one frame.
func (e *Engine) Tick() {
	if e.errMsg != "" {
		e.errTicks--
		if e.errTicks <= 0 {
			e.errMsg = ""
		}
	}
	e.g.tick()
}

// StartGame throws away the current run and starts a fresh one.
func (e *Engine) StartGame() {
	e.g, e.shop = newGame(e.rng)
	e.g.state = Running
}

func (e *Engine) Pause()  { e.g.pause() }
func (e *Engine) Resume() { e.g.resume() }

func (e *Engine) EndGame() { e.g.end() }

func (e *Engine) Shoot() { e.g.shoot() }

func (e *Engine) RotateShip(dx, dy float64) { e.g.rotate(dx, dy) }

// BuyItem purchases one level of a shop item. Shop errors surface
// through the error message channel rather than a return value.
func (e *Engine) BuyItem(id int) {
	if e.g.state != Running && e.g.state != Paused {
		return
	}
	cost, apply, err := e.shop.buy(id, e.g.coins, false)
	if err != nil {
		e.setError(err.Error())
		return
	}
	e.g.coins -= cost
	apply(&e.g.cfg)
}

// LoadGame rebuilds a run from a saved record. The result is Paused and
// item purchases are replayed without charging coins.
func (e *Engine) LoadGame(rec SavedGame) {
	g, sh := newGame(e.rng)
	g.state = Paused
	g.id = rec.ID
	g.score = rec.Score
	g.coins = rec.Coins
	g.lives = rec.Lives
	if rec.EnemySpawnTimeout > 0 {
		g.cfg.enemySpawnTimeout = rec.EnemySpawnTimeout
	}
	for _, it := range rec.Items {
		for level := 0; level < it.Level; level++ {
			_, apply, err := sh.buy(it.ID, 0, true)
			if err != nil {
				break
			}
			apply(&g.cfg)
		}
	}
	e.g, e.shop = g, sh
}

func (e *Engine) ID() int64      { return e.g.id }
func (e *Engine) SetID(id int64) { e.g.id = id }

func (e *Engine) State() State    { return e.g.state }
func (e *Engine) Score() float64  { return e.g.score }
func (e *Engine) Coins() int      { return e.g.coins }
func (e *Engine) Lives() int      { return e.g.lives }
func (e *Engine) MaxLives() int   { return e.g.cfg.maxLives }
func (e *Engine) PlayField() Field { return e.g.cfg.field }
func (e *Engine) PlayerShip() Ship { return e.g.ship }

func (e *Engine) Invulnerable() bool { return e.g.timeUntilVulnerable > 0 }

// ShootRefill reports cannon cooldown progress as a 0-100 percentage.
func (e *Engine) ShootRefill() int {
	return 100 - e.g.timeUntilNextShot*100/e.g.cfg.shootTimeout
}

func (e *Engine) EnemySpawnTimeout() float64 { return e.g.cfg.enemySpawnTimeout }

// Enemies returns the live enemies. The slice is shared; callers must
// not hold it across ticks.
func (e *Engine) Enemies() []Enemy { return e.g.enemies }

// Projectiles returns the live projectiles under the same sharing rule
// as Enemies.
func (e *Engine) Projectiles() []Projectile { return e.g.projectiles }

func (e *Engine) ShopItems() []Item { return e.shop.list() }

func (e *Engine) ErrorMessage() string { return e.errMsg }

func (e *Engine) DismissError() {
	e.errMsg = ""
	e.errTicks = 0
}

func (e *Engine) setError(msg string) {
	e.errMsg = msg
	e.errTicks = errorDuration
}
