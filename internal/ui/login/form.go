// Package login is the account overlay: username and password entry
// plus the account actions, driven through the surface and input
// abstractions so it stays backend-agnostic.
package login

import (
	"log"
	"strings"

	"github.com/atotto/clipboard"

	"chosenoffset.com/novastrike/internal/render"
	"chosenoffset.com/novastrike/internal/session"
)

const (
	fieldUsername = iota
	fieldPassword
)

// Form holds the overlay's input state. It reads keys only while the
// overlay is open, so gameplay typing never leaks into the fields.
type Form struct {
	ctrl    *session.Controller
	surface render.Surface
	input   render.InputManager

	focus    int
	username []rune
	password []rune
}

// NewForm creates the overlay and registers its click targets.
func NewForm(ctrl *session.Controller, surface render.Surface, input render.InputManager) *Form {
	f := &Form{ctrl: ctrl, surface: surface, input: input}

	surface.OnClick(render.NodeLoginSubmit, f.submit)
	surface.OnClick(render.NodeLoginRegister, f.register)
	surface.OnClick(render.NodeLoginLogout, ctrl.Logout)
	surface.OnClick(render.NodeLoginDelete, ctrl.DeleteAccount)
	surface.OnClick(render.NodeLoginClose, ctrl.CloseLoginScreen)
	surface.OnClick(render.NodeLoginOpen, ctrl.OpenLoginScreen)
	surface.OnClick(render.NodeLoginUsername, func() { f.focus = fieldUsername })
	surface.OnClick(render.NodeLoginPassword, func() { f.focus = fieldPassword })

	return f
}

// Update consumes this tick's typed input. A no-op while the overlay
// is closed.
func (f *Form) Update() {
	if !f.ctrl.LoginOverlayVisible() {
		return
	}

	for _, key := range f.input.JustPressedKeys() {
		switch key {
		case "Tab":
			f.focus = (f.focus + 1) % 2
		case "Backspace":
			f.backspace()
		case "Enter":
			f.submit()
		case "v":
			if f.input.ControlPressed() {
				f.paste()
			}
		}
	}

	if !f.input.ControlPressed() {
		for _, ch := range f.input.TypedChars() {
			f.typeChar(ch)
		}
	}
}

// Render writes the overlay to the surface. Field contents are only
// refreshed while the overlay is visible.
func (f *Form) Render() {
	visible := f.ctrl.LoginOverlayVisible()
	f.surface.ToggleClass(render.NodeLogin, render.ClassHidden, !visible)
	if !visible {
		return
	}

	f.surface.SetText(render.NodeLoginUsername, string(f.username))
	f.surface.SetText(render.NodeLoginPassword, strings.Repeat("*", len(f.password)))
	f.surface.ToggleClass(render.NodeLoginUsername, render.ClassFocused, f.focus == fieldUsername)
	f.surface.ToggleClass(render.NodeLoginPassword, render.ClassFocused, f.focus == fieldPassword)

	status := ""
	switch {
	case f.ctrl.Validating():
		status = "Checking stored session..."
	case f.ctrl.Loading():
		status = "Working..."
	case f.ctrl.LoggedIn():
		status = "Logged in as " + f.ctrl.Username()
	}
	f.surface.SetText(render.NodeLoginStatus, status)
}

func (f *Form) typeChar(ch rune) {
	if ch < ' ' {
		return
	}
	if f.focus == fieldUsername {
		f.username = append(f.username, ch)
	} else {
		f.password = append(f.password, ch)
	}
}

func (f *Form) backspace() {
	if f.focus == fieldUsername {
		if len(f.username) > 0 {
			f.username = f.username[:len(f.username)-1]
		}
	} else if len(f.password) > 0 {
		f.password = f.password[:len(f.password)-1]
	}
}

func (f *Form) paste() {
	text, err := clipboard.ReadAll()
	if err != nil {
		log.Printf("login: clipboard read failed: %v", err)
		return
	}
	for _, ch := range strings.TrimSpace(text) {
		f.typeChar(ch)
	}
}

func (f *Form) submit() {
	username := strings.TrimSpace(string(f.username))
	if username == "" || len(f.password) == 0 {
		return
	}
	f.ctrl.Login(username, string(f.password))
}

func (f *Form) register() {
	username := strings.TrimSpace(string(f.username))
	if username == "" || len(f.password) == 0 {
		return
	}
	f.ctrl.Register(username, string(f.password))
}
