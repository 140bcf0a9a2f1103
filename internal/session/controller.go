// Package session orchestrates the game client: it drives the
// simulation, the auth session, the overlays and the hotkey bindings,
// and exposes the per-tick snapshot the render pipeline draws from.
package session

import (
	"log"
	"time"

	"chosenoffset.com/novastrike/internal/api"
	"chosenoffset.com/novastrike/internal/hotkeys"
	"chosenoffset.com/novastrike/internal/sim"
)

// AuthService is the slice of api.Session the controller depends on.
type AuthService interface {
	Tick(now time.Time)
	LoggedIn() bool
	Username() string
	Loading() bool
	Validating() bool
	ErrorMessage() string
	RegisterOnLogin(fn func())
	Login(username, password string)
	Register(username, password string)
	Logout()
	DeleteAccount()
	CreateGame(g api.GameResource, then func(id int64))
	SaveGame(g api.GameResource)
	SetGameEnded(id int64)
	LoadLatestGame(then func(*api.GameResource))
}

// Controller is the session controller. All methods run on the tick
// thread.
type Controller struct {
	sim     sim.Simulation
	auth    AuthService
	keys    *hotkeys.Dispatcher
	overlay Overlay
	now     func() time.Time

	lastGameOver bool
	onGameOver   []func()
}

// NewController wires the simulation to the auth session: a login
// hydrates the latest saved game, and a game over marks the persisted
// record as finished.
func NewController(simulation sim.Simulation, auth AuthService, keys *hotkeys.Dispatcher) *Controller {
	c := &Controller{
		sim:     simulation,
		auth:    auth,
		keys:    keys,
		overlay: Overlay{loginOpen: true},
		now:     time.Now,
	}
	auth.RegisterOnLogin(func() {
		log.Printf("session: logged in as %s", auth.Username())
		c.overlay.loginOpen = false
		c.loadLatestGame()
	})
	c.RegisterOnGameOver(func() {
		if id := c.sim.ID(); id != 0 {
			c.auth.SetGameEnded(id)
		}
	})
	return c
}

// Tick applies pending auth completions, then advances the simulation
// by one frame.
func (c *Controller) Tick() {
	c.auth.Tick(c.now())
	c.sim.Tick()
}

// ToggleGameState starts a fresh game, resumes a paused one, or pauses
// a running one.
func (c *Controller) ToggleGameState() {
	switch c.sim.State() {
	case sim.NotRunning:
		c.startGame()
	case sim.Paused:
		c.ResumeGame()
	default:
		c.PauseGame()
	}
}

func (c *Controller) startGame() {
	c.sim.StartGame()
	if !c.auth.LoggedIn() {
		return
	}
	c.auth.CreateGame(c.gameResource(), func(id int64) {
		c.sim.SetID(id)
	})
}

// PauseGame pauses and saves in one step, so a paused game is always
// safe to walk away from.
func (c *Controller) PauseGame() {
	c.sim.Pause()
	c.saveGame()
}

func (c *Controller) ResumeGame() {
	c.sim.Resume()
}

// EndGame finishes the current run and marks its record as ended. The
// game-over latch marks it again on its next poll; both writes set the
// same flag on the same record.
func (c *Controller) EndGame() {
	c.sim.EndGame()
	if id := c.sim.ID(); id != 0 && c.auth.LoggedIn() {
		c.auth.SetGameEnded(id)
	}
}

func (c *Controller) Shoot() { c.sim.Shoot() }

func (c *Controller) RotateShip(dx, dy float64) { c.sim.RotateShip(dx, dy) }

// BuyItem purchases a shop item and saves. Purchase failures surface
// through the simulation's error channel, and the save still runs.
func (c *Controller) BuyItem(id int) {
	c.sim.BuyItem(id)
	c.saveGame()
}

// ToggleShop opens or closes the shop. Opening pauses the game;
// closing resumes any paused game, even one paused before the shop
// opened.
func (c *Controller) ToggleShop() {
	c.overlay.shopOpen = !c.overlay.shopOpen
	if c.overlay.shopOpen {
		c.PauseGame()
	} else if c.sim.State() == sim.Paused {
		c.ResumeGame()
	}
}

// DismissError clears the simulation error. Session errors cannot be
// dismissed; they expire on their own.
func (c *Controller) DismissError() {
	c.sim.DismissError()
}

// IsGameOver reports whether the run has ended with no lives left. On
// the transition into that state the game-over callbacks fire, once.
func (c *Controller) IsGameOver() bool {
	over := c.sim.State() == sim.NotRunning && c.sim.Lives() <= 0
	if over && !c.lastGameOver {
		for _, fn := range c.onGameOver {
			fn()
		}
	}
	c.lastGameOver = over
	return over
}

// RegisterOnGameOver adds a callback fired on the transition into the
// game-over state.
func (c *Controller) RegisterOnGameOver(fn func()) {
	c.onGameOver = append(c.onGameOver, fn)
}

// HandleKey routes a key event to the hotkey bindings. Swallowed while
// the login overlay is visible so typing never triggers game actions.
func (c *Controller) HandleKey(ev hotkeys.Event) {
	if c.LoginOverlayVisible() {
		return
	}
	c.keys.Dispatch(ev)
}

// RegisterHotkeys appends hotkey bindings.
func (c *Controller) RegisterHotkeys(hks ...hotkeys.Hotkey) {
	c.keys.Register(hks...)
}

func (c *Controller) OpenLoginScreen()  { c.overlay.loginOpen = true }
func (c *Controller) CloseLoginScreen() { c.overlay.loginOpen = false }

// LoginOverlayVisible reports whether the login overlay shows. The
// overlay stays up for a logged-out user no matter what closed it, so
// nothing behind it is reachable without an account.
func (c *Controller) LoginOverlayVisible() bool {
	return c.overlay.LoginVisible(c.auth.LoggedIn())
}

func (c *Controller) ShopOpen() bool { return c.overlay.ShopOpen() }

func (c *Controller) Login(username, password string)    { c.auth.Login(username, password) }
func (c *Controller) Register(username, password string) { c.auth.Register(username, password) }
func (c *Controller) Logout()                            { c.auth.Logout() }
func (c *Controller) DeleteAccount()                     { c.auth.DeleteAccount() }

func (c *Controller) LoggedIn() bool   { return c.auth.LoggedIn() }
func (c *Controller) Username() string { return c.auth.Username() }
func (c *Controller) Loading() bool    { return c.auth.Loading() }
func (c *Controller) Validating() bool { return c.auth.Validating() }

// ErrorMessage returns the message to display: a session error takes
// precedence over a simulation error.
func (c *Controller) ErrorMessage() string {
	if msg := c.auth.ErrorMessage(); msg != "" {
		return msg
	}
	return c.sim.ErrorMessage()
}

// saveGame persists the current run. A no-op when logged out or when
// the run was never persisted.
func (c *Controller) saveGame() {
	if !c.auth.LoggedIn() || c.sim.ID() == 0 {
		return
	}
	c.auth.SaveGame(c.gameResource())
}

// gameResource builds the wire form of the current run.
func (c *Controller) gameResource() api.GameResource {
	items := c.sim.ShopItems()
	levels := make([]api.ItemLevel, 0, len(items))
	for _, it := range items {
		levels = append(levels, api.ItemLevel{
			Level: it.Level,
			Item: api.ItemInfo{
				ID:          it.ID,
				Name:        it.Title,
				Price:       it.InternalPrice,
				Description: it.Description,
			},
		})
	}
	g := api.GameResource{
		Ended:             c.IsGameOver(),
		Score:             c.sim.Score(),
		Coins:             c.sim.Coins(),
		Lives:             c.sim.Lives(),
		EnemySpawnTimeout: c.sim.EnemySpawnTimeout(),
		Items:             levels,
	}
	if id := c.sim.ID(); id != 0 {
		g.ID = &id
	}
	return g
}

// loadLatestGame hydrates the simulation from the newest saved run.
// Records already marked ended are left alone.
func (c *Controller) loadLatestGame() {
	c.auth.LoadLatestGame(func(g *api.GameResource) {
		if g.Ended {
			return
		}
		rec := sim.SavedGame{
			Score:             g.Score,
			Coins:             g.Coins,
			Lives:             g.Lives,
			EnemySpawnTimeout: g.EnemySpawnTimeout,
		}
		if g.ID != nil {
			rec.ID = *g.ID
		}
		for _, il := range g.Items {
			rec.Items = append(rec.Items, sim.SavedItem{ID: il.Item.ID, Level: il.Level})
		}
		c.sim.LoadGame(rec)
		log.Printf("session: restored saved game %d", rec.ID)
	})
}
