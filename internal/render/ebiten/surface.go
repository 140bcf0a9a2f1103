// Package ebiten is the ebiten-backed implementation of the render
// contracts: a retained surface drawn every frame, an input manager,
// and the engine owning the window and run loop.
package ebiten

import (
	"strings"

	"chosenoffset.com/novastrike/internal/render"
)

// entityMarker is one retained entity. kind is the first class token,
// the rest select color/effects.
type entityMarker struct {
	id      int64
	kind    string
	classes []string
	x, y    float64
	w, h    float64
	angle   float64
}

func (m *entityMarker) hasClass(class string) bool {
	for _, c := range m.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Surface retains everything the render pipeline writes. It is
// mutated during Update and drawn during Draw, both on ebiten's game
// goroutine, so it needs no locking.
type Surface struct {
	width  int
	height int

	entities map[int64]*entityMarker
	texts    map[string]string
	classes  map[string]map[string]bool
	sizes    map[string][2]float64
	rows     map[string][]render.Row
	handlers map[string]func()

	fonts *fontSet
}

var _ render.Surface = (*Surface)(nil)

// NewSurface creates a surface for a logical window size.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:    width,
		height:   height,
		entities: make(map[int64]*entityMarker),
		texts:    make(map[string]string),
		classes:  make(map[string]map[string]bool),
		sizes:    make(map[string][2]float64),
		rows:     make(map[string][]render.Row),
		handlers: make(map[string]func()),
		fonts:    newFontSet(),
	}
}

// PlaceEntity puts or updates a marker, keyed by id.
func (s *Surface) PlaceEntity(id int64, class string, x, y, w, h, angle float64) {
	tokens := strings.Fields(class)
	kind := ""
	if len(tokens) > 0 {
		kind = tokens[0]
	}
	s.entities[id] = &entityMarker{
		id:      id,
		kind:    kind,
		classes: tokens,
		x:       x,
		y:       y,
		w:       w,
		h:       h,
		angle:   angle,
	}
}

// RemoveEntities drops every marker of the given kind.
func (s *Surface) RemoveEntities(class string) {
	for id, m := range s.entities {
		if m.kind == class {
			delete(s.entities, id)
		}
	}
}

func (s *Surface) SetText(node, text string) {
	s.texts[node] = text
}

func (s *Surface) ToggleClass(node, class string, on bool) {
	if s.classes[node] == nil {
		s.classes[node] = make(map[string]bool)
	}
	s.classes[node][class] = on
}

func (s *Surface) SetSize(node string, width, height float64) {
	s.sizes[node] = [2]float64{width, height}
}

func (s *Surface) SetRows(node string, rows []render.Row) {
	s.rows[node] = rows
}

func (s *Surface) OnClick(node string, fn func()) {
	s.handlers[node] = fn
}

func (s *Surface) class(node, class string) bool {
	return s.classes[node][class]
}

// Click dispatches a press to whatever sits on top at (x, y):
// login overlay, game-over panel, shop, error banner, then the HUD
// buttons. Field clicks are left for the caller.
func (s *Surface) Click(x, y int) bool {
	px, py := float64(x), float64(y)

	if s.visible(render.NodeLogin) {
		return s.clickLogin(px, py)
	}
	if s.visible(render.NodeGameOver) {
		if s.layoutGameOver().contains(px, py) {
			s.fire(render.NodeGameOver)
			return true
		}
	}
	if s.class(render.NodeShop, render.ClassOpen) {
		if consumed := s.clickShop(px, py); consumed {
			return true
		}
	}
	if s.visible(render.NodeError) && s.layoutError().contains(px, py) {
		s.fire(render.NodeError)
		return true
	}
	if s.layoutStartButton().contains(px, py) {
		s.fire(render.NodeStartButton)
		return true
	}
	if s.layoutAccountButton().contains(px, py) {
		s.fire(render.NodeLoginOpen)
		return true
	}
	return false
}

func (s *Surface) clickLogin(px, py float64) bool {
	l := s.layoutLogin()
	if !l.panel.contains(px, py) {
		return false
	}
	switch {
	case l.username.contains(px, py):
		s.fire(render.NodeLoginUsername)
	case l.password.contains(px, py):
		s.fire(render.NodeLoginPassword)
	case l.submit.contains(px, py):
		s.fire(render.NodeLoginSubmit)
	case l.register.contains(px, py):
		s.fire(render.NodeLoginRegister)
	case l.close.contains(px, py):
		s.fire(render.NodeLoginClose)
	case l.logout.contains(px, py):
		s.fire(render.NodeLoginLogout)
	case l.delete.contains(px, py):
		s.fire(render.NodeLoginDelete)
	}
	// Clicks inside the panel never fall through to the field.
	return true
}

func (s *Surface) clickShop(px, py float64) bool {
	panel := s.layoutShopPanel()
	if !panel.contains(px, py) {
		return false
	}
	if s.layoutShopClose().contains(px, py) {
		s.fire(render.NodeShopClose)
		return true
	}
	for i, row := range s.rows[render.NodeShopItems] {
		if s.layoutShopRow(i).contains(px, py) && row.OnClick != nil {
			row.OnClick()
			return true
		}
	}
	return true
}

func (s *Surface) fire(node string) {
	if fn := s.handlers[node]; fn != nil {
		fn()
	}
}

// visible reports whether a hidden-class node is currently shown. A
// node never toggled yet counts as hidden.
func (s *Surface) visible(node string) bool {
	cls, ok := s.classes[node]
	if !ok {
		return false
	}
	return !cls[render.ClassHidden]
}

// NodeBounds exposes layout rectangles to the app layer, which needs
// the field bounds for cursor mapping.
func (s *Surface) NodeBounds(node string) (x, y, w, h float64, ok bool) {
	var r rect
	switch node {
	case render.NodeField:
		r = s.layoutField()
	case render.NodeStartButton:
		r = s.layoutStartButton()
	case render.NodeError:
		r = s.layoutError()
	case render.NodeGameOver:
		r = s.layoutGameOver()
	case render.NodeShop:
		r = s.layoutShopPanel()
	default:
		return 0, 0, 0, 0, false
	}
	return r.x, r.y, r.w, r.h, true
}

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(px, py float64) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}

// Layout. Everything hangs off the field rectangle, whose size the
// pipeline writes through SetSize.

const (
	marginPx   = 16
	topBarH    = 40
	fieldTopPx = 48
)

func (s *Surface) layoutField() rect {
	size, ok := s.sizes[render.NodeField]
	if !ok {
		size = [2]float64{1100, 700}
	}
	return rect{x: marginPx, y: fieldTopPx, w: size[0], h: size[1]}
}

func (s *Surface) layoutStartButton() rect {
	return rect{x: float64(s.width)/2 - 70, y: 6, w: 140, h: 30}
}

func (s *Surface) layoutAccountButton() rect {
	return rect{x: float64(s.width) - 116, y: 6, w: 100, h: 30}
}

func (s *Surface) layoutRefillBar() rect {
	return rect{x: 370, y: 14, w: 150, h: 14}
}

func (s *Surface) layoutError() rect {
	f := s.layoutField()
	return rect{x: f.x + f.w/2 - 220, y: f.y + 12, w: 440, h: 36}
}

func (s *Surface) layoutShopPanel() rect {
	f := s.layoutField()
	return rect{x: f.x + 150, y: f.y + 40, w: f.w - 300, h: f.h - 100}
}

func (s *Surface) layoutShopClose() rect {
	p := s.layoutShopPanel()
	return rect{x: p.x + p.w - 40, y: p.y + 8, w: 32, h: 32}
}

func (s *Surface) layoutShopRow(i int) rect {
	p := s.layoutShopPanel()
	return rect{x: p.x + 16, y: p.y + 52 + float64(i)*88, w: p.w - 32, h: 80}
}

func (s *Surface) layoutGameOver() rect {
	f := s.layoutField()
	return rect{x: f.x + f.w/2 - 200, y: f.y + f.h/2 - 110, w: 400, h: 220}
}

func (s *Surface) layoutLives() rect {
	f := s.layoutField()
	return rect{x: f.x, y: f.y + f.h + 12, w: 300, h: 28}
}

func (s *Surface) layoutHotkeys() rect {
	f := s.layoutField()
	return rect{x: f.x + f.w + 16, y: f.y, w: float64(s.width) - f.x - f.w - 32, h: f.h}
}

type loginLayout struct {
	panel    rect
	username rect
	password rect
	submit   rect
	register rect
	close    rect
	logout   rect
	delete   rect
}

func (s *Surface) layoutLogin() loginLayout {
	p := rect{x: float64(s.width)/2 - 220, y: 240, w: 440, h: 340}
	return loginLayout{
		panel:    p,
		username: rect{x: p.x + 24, y: p.y + 72, w: p.w - 48, h: 36},
		password: rect{x: p.x + 24, y: p.y + 148, w: p.w - 48, h: 36},
		submit:   rect{x: p.x + 24, y: p.y + 204, w: 120, h: 36},
		register: rect{x: p.x + 156, y: p.y + 204, w: 120, h: 36},
		close:    rect{x: p.x + 288, y: p.y + 204, w: 120, h: 36},
		logout:   rect{x: p.x + 24, y: p.y + 252, w: 120, h: 36},
		delete:   rect{x: p.x + 156, y: p.y + 252, w: 160, h: 36},
	}
}
