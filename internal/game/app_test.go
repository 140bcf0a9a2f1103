package game

import (
	"testing"
	"time"

	"chosenoffset.com/novastrike/internal/api"
	"chosenoffset.com/novastrike/internal/hotkeys"
	"chosenoffset.com/novastrike/internal/render"
	"chosenoffset.com/novastrike/internal/session"
	"chosenoffset.com/novastrike/internal/sim"
)

type scriptSim struct {
	state     sim.State
	shots     int
	rotations [][2]float64
	toggles   int
}

func (f *scriptSim) Tick()      {}
func (f *scriptSim) StartGame() { f.toggles++; f.state = sim.Running }
func (f *scriptSim) Pause() {
	if f.state == sim.Running {
		f.state = sim.Paused
	}
	f.toggles++
}
func (f *scriptSim) Resume() {
	if f.state == sim.Paused {
		f.state = sim.Running
	}
	f.toggles++
}
func (f *scriptSim) EndGame() { f.state = sim.NotRunning }
func (f *scriptSim) Shoot()   { f.shots++ }
func (f *scriptSim) RotateShip(dx, dy float64) {
	f.rotations = append(f.rotations, [2]float64{dx, dy})
}
func (f *scriptSim) BuyItem(int)                 {}
func (f *scriptSim) LoadGame(sim.SavedGame)      {}
func (f *scriptSim) ID() int64                   { return 0 }
func (f *scriptSim) SetID(int64)                 {}
func (f *scriptSim) State() sim.State            { return f.state }
func (f *scriptSim) Score() float64              { return 0 }
func (f *scriptSim) Coins() int                  { return 0 }
func (f *scriptSim) Lives() int                  { return 3 }
func (f *scriptSim) MaxLives() int               { return 3 }
func (f *scriptSim) Invulnerable() bool          { return false }
func (f *scriptSim) ShootRefill() int            { return 100 }
func (f *scriptSim) EnemySpawnTimeout() float64  { return 80 }
func (f *scriptSim) PlayField() sim.Field        { return sim.Field{Width: 1100, Height: 700} }
func (f *scriptSim) PlayerShip() sim.Ship        { return sim.Ship{X: 550, Y: 350} }
func (f *scriptSim) Enemies() []sim.Enemy        { return nil }
func (f *scriptSim) Projectiles() []sim.Projectile { return nil }
func (f *scriptSim) ShopItems() []sim.Item       { return nil }
func (f *scriptSim) ErrorMessage() string        { return "" }
func (f *scriptSim) DismissError()               {}

type nopAuth struct{ loggedIn bool }

func (a nopAuth) LoggedIn() bool { return a.loggedIn }

func (nopAuth) Tick(time.Time)                           {}
func (nopAuth) Username() string                         { return "" }
func (nopAuth) Loading() bool                            { return false }
func (nopAuth) Validating() bool                         { return false }
func (nopAuth) ErrorMessage() string                     { return "" }
func (nopAuth) RegisterOnLogin(func())                   {}
func (nopAuth) Login(string, string)                     {}
func (nopAuth) Register(string, string)                  {}
func (nopAuth) Logout()                                  {}
func (nopAuth) DeleteAccount()                           {}
func (nopAuth) CreateGame(api.GameResource, func(int64)) {}
func (nopAuth) SaveGame(api.GameResource)                {}
func (nopAuth) SetGameEnded(int64)                       {}
func (nopAuth) LoadLatestGame(func(*api.GameResource))   {}

type scriptInput struct {
	keys    []string
	cursorX int
	cursorY int
	pressed bool
}

func (f *scriptInput) JustPressedKeys() []string  { return f.keys }
func (f *scriptInput) TypedChars() []rune         { return nil }
func (f *scriptInput) ControlPressed() bool       { return false }
func (f *scriptInput) CursorPosition() (int, int) { return f.cursorX, f.cursorY }
func (f *scriptInput) MouseJustPressed() bool     { return f.pressed }

type scriptSurface struct {
	handlers map[string]func()
	consume  bool
}

func newScriptSurface() *scriptSurface {
	return &scriptSurface{handlers: map[string]func(){}}
}

func (s *scriptSurface) PlaceEntity(int64, string, float64, float64, float64, float64, float64) {}
func (s *scriptSurface) RemoveEntities(string)                                                  {}
func (s *scriptSurface) SetText(string, string)                                                 {}
func (s *scriptSurface) ToggleClass(string, string, bool)                                       {}
func (s *scriptSurface) SetSize(string, float64, float64)                                       {}
func (s *scriptSurface) SetRows(string, []render.Row)                                           {}
func (s *scriptSurface) OnClick(node string, fn func())                                         { s.handlers[node] = fn }
func (s *scriptSurface) Click(int, int) bool                                                    { return s.consume }

func (s *scriptSurface) NodeBounds(node string) (float64, float64, float64, float64, bool) {
	if node == render.NodeField {
		return 16, 48, 1100, 700, true
	}
	return 0, 0, 0, 0, false
}

// testApp builds an app with a logged-in session, so closing the login
// overlay actually hides it.
func testApp() (*App, *scriptSim, *scriptInput, *scriptSurface, *session.Controller) {
	s := &scriptSim{}
	ctrl := session.NewController(s, nopAuth{loggedIn: true}, hotkeys.NewDispatcher())
	input := &scriptInput{cursorX: 16, cursorY: 48}
	surface := newScriptSurface()
	app := NewApp(ctrl, surface, input)
	return app, s, input, surface, ctrl
}

func TestEnterTogglesGameState(t *testing.T) {
	app, s, input, _, ctrl := testApp()
	ctrl.CloseLoginScreen()

	input.keys = []string{"Enter"}
	if err := app.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if s.state != sim.Running {
		t.Errorf("Expected Enter to start the game, state %v", s.state)
	}
}

func TestHotkeysSwallowedWhileLoginOpen(t *testing.T) {
	app, s, input, _, _ := testApp()

	input.keys = []string{"Enter"}
	app.Update()

	if s.state != sim.NotRunning {
		t.Errorf("Hotkey acted while the login overlay was open, state %v", s.state)
	}
}

func TestHotkeysSwallowedWhileLoggedOut(t *testing.T) {
	s := &scriptSim{}
	ctrl := session.NewController(s, nopAuth{}, hotkeys.NewDispatcher())
	input := &scriptInput{cursorX: 16, cursorY: 48}
	app := NewApp(ctrl, newScriptSurface(), input)

	// The close flag alone cannot dismiss the overlay for a logged-out
	// user, so game keys stay swallowed.
	ctrl.CloseLoginScreen()
	input.keys = []string{"Enter"}
	app.Update()

	if s.state != sim.NotRunning {
		t.Errorf("Hotkey acted for a logged-out user, state %v", s.state)
	}
}

func TestFieldClickShoots(t *testing.T) {
	app, s, input, _, ctrl := testApp()
	ctrl.CloseLoginScreen()

	input.cursorX = 16 + 550
	input.cursorY = 48 + 100
	input.pressed = true
	app.Update()

	if s.shots != 1 {
		t.Errorf("Expected a shot from a field click, got %d", s.shots)
	}
}

func TestConsumedClickDoesNotShoot(t *testing.T) {
	app, s, input, surface, ctrl := testApp()
	ctrl.CloseLoginScreen()

	surface.consume = true
	input.cursorX = 16 + 550
	input.cursorY = 48 + 100
	input.pressed = true
	app.Update()

	if s.shots != 0 {
		t.Errorf("A consumed click still shot, got %d shots", s.shots)
	}
}

func TestClickOutsideFieldDoesNotShoot(t *testing.T) {
	app, s, input, _, ctrl := testApp()
	ctrl.CloseLoginScreen()

	input.cursorX = 5
	input.cursorY = 5
	input.pressed = true
	app.Update()

	if s.shots != 0 {
		t.Errorf("A click outside the field shot, got %d shots", s.shots)
	}
}

func TestMouseMoveRotatesShipTowardCursor(t *testing.T) {
	app, s, input, _, ctrl := testApp()
	ctrl.CloseLoginScreen()

	// Cursor at field position (650, 450), ship at (550, 350).
	input.cursorX = 16 + 650
	input.cursorY = 48 + 450
	app.Update()

	if len(s.rotations) == 0 {
		t.Fatal("Ship never rotated")
	}
	last := s.rotations[len(s.rotations)-1]
	if last != [2]float64{100, 100} {
		t.Errorf("Expected rotation delta (100, 100), got %v", last)
	}
}

func TestGameOverClickRestartsRun(t *testing.T) {
	_, s, _, surface, ctrl := testApp()
	ctrl.CloseLoginScreen()

	s.state = sim.NotRunning
	surface.handlers[render.NodeGameOver]()

	if s.state != sim.Running {
		t.Errorf("Expected a new run from the game-over click, state %v", s.state)
	}
}
