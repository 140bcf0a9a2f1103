package login

import (
	"testing"
	"time"

	"chosenoffset.com/novastrike/internal/api"
	"chosenoffset.com/novastrike/internal/hotkeys"
	"chosenoffset.com/novastrike/internal/render"
	"chosenoffset.com/novastrike/internal/session"
	"chosenoffset.com/novastrike/internal/sim"
)

type fakeInput struct {
	keys  []string
	chars []rune
	ctrl  bool
}

func (f *fakeInput) JustPressedKeys() []string { return f.keys }
func (f *fakeInput) TypedChars() []rune        { return f.chars }
func (f *fakeInput) ControlPressed() bool      { return f.ctrl }
func (f *fakeInput) CursorPosition() (int, int) { return 0, 0 }
func (f *fakeInput) MouseJustPressed() bool    { return false }

type fakeSurface struct {
	texts    map[string]string
	classes  map[string]map[string]bool
	handlers map[string]func()
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		texts:    map[string]string{},
		classes:  map[string]map[string]bool{},
		handlers: map[string]func(){},
	}
}

func (s *fakeSurface) PlaceEntity(int64, string, float64, float64, float64, float64, float64) {}
func (s *fakeSurface) RemoveEntities(string)                                                  {}
func (s *fakeSurface) SetText(node, text string)                                              { s.texts[node] = text }
func (s *fakeSurface) SetSize(string, float64, float64)                                       {}
func (s *fakeSurface) SetRows(string, []render.Row)                                           {}
func (s *fakeSurface) Click(int, int) bool                                                    { return false }

func (s *fakeSurface) ToggleClass(node, class string, on bool) {
	if s.classes[node] == nil {
		s.classes[node] = map[string]bool{}
	}
	s.classes[node][class] = on
}

func (s *fakeSurface) OnClick(node string, fn func()) { s.handlers[node] = fn }

func (s *fakeSurface) NodeBounds(string) (float64, float64, float64, float64, bool) {
	return 0, 0, 0, 0, false
}

type authCalls struct {
	loggedIn  bool
	logins    []string
	registers []string
	logouts   int
}

func (a *authCalls) Tick(time.Time) {}

func (a *authCalls) LoggedIn() bool                           { return a.loggedIn }
func (a *authCalls) Username() string                         { return "" }
func (a *authCalls) Loading() bool                            { return false }
func (a *authCalls) Validating() bool                         { return false }
func (a *authCalls) ErrorMessage() string                     { return "" }
func (a *authCalls) RegisterOnLogin(func())                   {}
func (a *authCalls) DeleteAccount()                           {}
func (a *authCalls) CreateGame(api.GameResource, func(int64)) {}
func (a *authCalls) SaveGame(api.GameResource)                {}
func (a *authCalls) SetGameEnded(int64)                       {}
func (a *authCalls) LoadLatestGame(func(*api.GameResource))   {}

func (a *authCalls) Login(username, password string) {
	a.logins = append(a.logins, username+":"+password)
}

func (a *authCalls) Register(username, password string) {
	a.registers = append(a.registers, username+":"+password)
}

func (a *authCalls) Logout() { a.logouts++ }

func testForm(t *testing.T) (*Form, *fakeInput, *fakeSurface, *authCalls) {
	t.Helper()
	auth := &authCalls{}
	ctrl := session.NewController(sim.NewEngine(), auth, hotkeys.NewDispatcher())
	input := &fakeInput{}
	surface := newFakeSurface()
	return NewForm(ctrl, surface, input), input, surface, auth
}

func TestTypingFillsFocusedField(t *testing.T) {
	form, input, surface, _ := testForm(t)

	input.chars = []rune("alice")
	form.Update()

	input.chars = nil
	input.keys = []string{"Tab"}
	form.Update()

	input.keys = nil
	input.chars = []rune("secret")
	form.Update()

	form.Render()
	if surface.texts[render.NodeLoginUsername] != "alice" {
		t.Errorf("Expected username alice, got %q", surface.texts[render.NodeLoginUsername])
	}
	if surface.texts[render.NodeLoginPassword] != "******" {
		t.Errorf("Expected masked password, got %q", surface.texts[render.NodeLoginPassword])
	}
}

func TestBackspaceRemovesLastRune(t *testing.T) {
	form, input, surface, _ := testForm(t)

	input.chars = []rune("alicex")
	form.Update()

	input.chars = nil
	input.keys = []string{"Backspace"}
	form.Update()

	form.Render()
	if surface.texts[render.NodeLoginUsername] != "alice" {
		t.Errorf("Expected alice after backspace, got %q", surface.texts[render.NodeLoginUsername])
	}
}

func TestEnterSubmitsCredentials(t *testing.T) {
	form, input, _, auth := testForm(t)

	input.chars = []rune("alice")
	form.Update()
	input.chars = nil
	input.keys = []string{"Tab"}
	form.Update()
	input.keys = nil
	input.chars = []rune("hunter2")
	form.Update()

	input.chars = nil
	input.keys = []string{"Enter"}
	form.Update()

	if len(auth.logins) != 1 || auth.logins[0] != "alice:hunter2" {
		t.Errorf("Expected one login with alice:hunter2, got %v", auth.logins)
	}
}

func TestSubmitRequiresBothFields(t *testing.T) {
	form, input, _, auth := testForm(t)

	input.chars = []rune("alice")
	form.Update()
	input.chars = nil
	input.keys = []string{"Enter"}
	form.Update()

	if len(auth.logins) != 0 {
		t.Errorf("Login submitted without a password: %v", auth.logins)
	}
}

func TestRegisterButton(t *testing.T) {
	form, input, surface, auth := testForm(t)

	input.chars = []rune("bob")
	form.Update()
	input.chars = nil
	input.keys = []string{"Tab"}
	form.Update()
	input.keys = nil
	input.chars = []rune("pw")
	form.Update()

	surface.handlers[render.NodeLoginRegister]()
	if len(auth.registers) != 1 || auth.registers[0] != "bob:pw" {
		t.Errorf("Expected one registration for bob, got %v", auth.registers)
	}
}

func TestInputIgnoredWhileClosed(t *testing.T) {
	form, input, surface, auth := testForm(t)

	auth.loggedIn = true
	surface.handlers[render.NodeLoginClose]()
	input.chars = []rune("stray")
	form.Update()

	surface.handlers[render.NodeLoginOpen]()
	form.Render()
	if surface.texts[render.NodeLoginUsername] != "" {
		t.Errorf("Typed input leaked into a closed form: %q", surface.texts[render.NodeLoginUsername])
	}
}

func TestRenderHidesClosedOverlay(t *testing.T) {
	form, _, surface, auth := testForm(t)

	form.Render()
	if surface.classes[render.NodeLogin][render.ClassHidden] {
		t.Error("Overlay hidden although it starts open")
	}

	auth.loggedIn = true
	surface.handlers[render.NodeLoginClose]()
	form.Render()
	if !surface.classes[render.NodeLogin][render.ClassHidden] {
		t.Error("Overlay still visible after closing")
	}
}

func TestCloseKeepsOverlayUpWhileLoggedOut(t *testing.T) {
	form, _, surface, _ := testForm(t)

	surface.handlers[render.NodeLoginClose]()
	form.Render()
	if surface.classes[render.NodeLogin][render.ClassHidden] {
		t.Error("Overlay hidden for a logged-out user")
	}
}
