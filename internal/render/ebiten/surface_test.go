package ebiten

import (
	"testing"

	"chosenoffset.com/novastrike/internal/render"
)

func TestPlaceEntityUpserts(t *testing.T) {
	s := NewSurface(1280, 860)

	s.PlaceEntity(1, "enemy asteroid", 10, 10, 40, 40, 0)
	s.PlaceEntity(1, "enemy debris", 20, 30, 20, 20, 0)

	if len(s.entities) != 1 {
		t.Fatalf("Expected 1 marker, got %d", len(s.entities))
	}
	m := s.entities[1]
	if !m.hasClass("debris") || m.x != 20 || m.y != 30 {
		t.Errorf("Marker not updated in place: %+v", m)
	}
}

func TestRemoveEntitiesByKind(t *testing.T) {
	s := NewSurface(1280, 860)
	s.PlaceEntity(1, "enemy asteroid", 0, 0, 10, 10, 0)
	s.PlaceEntity(2, "projectile", 0, 0, 10, 10, 0)
	s.PlaceEntity(3, "enemy raider", 0, 0, 10, 10, 0)

	s.RemoveEntities("enemy")

	if len(s.entities) != 1 {
		t.Fatalf("Expected only the projectile left, got %d markers", len(s.entities))
	}
	if _, ok := s.entities[2]; !ok {
		t.Error("Projectile removed with the enemies")
	}
}

func TestClickStartButton(t *testing.T) {
	s := NewSurface(1280, 860)
	s.ToggleClass(render.NodeLogin, render.ClassHidden, true)

	fired := false
	s.OnClick(render.NodeStartButton, func() { fired = true })

	btn := s.layoutStartButton()
	if !s.Click(int(btn.x+5), int(btn.y+5)) {
		t.Fatal("Click on the start button not consumed")
	}
	if !fired {
		t.Error("Start handler did not fire")
	}
}

func TestClickFieldFallsThrough(t *testing.T) {
	s := NewSurface(1280, 860)
	s.ToggleClass(render.NodeLogin, render.ClassHidden, true)

	f := s.layoutField()
	if s.Click(int(f.x+f.w/2), int(f.y+f.h/2)) {
		t.Error("Bare field click was consumed by the surface")
	}
}

func TestClickShopRow(t *testing.T) {
	s := NewSurface(1280, 860)
	s.ToggleClass(render.NodeLogin, render.ClassHidden, true)
	s.ToggleClass(render.NodeShop, render.ClassOpen, true)

	clicked := -1
	s.SetRows(render.NodeShopItems, []render.Row{
		{ID: "shop-item-0", OnClick: func() { clicked = 0 }},
		{ID: "shop-item-1", OnClick: func() { clicked = 1 }},
	})

	row := s.layoutShopRow(1)
	if !s.Click(int(row.x+10), int(row.y+10)) {
		t.Fatal("Click on a shop row not consumed")
	}
	if clicked != 1 {
		t.Errorf("Expected row 1 clicked, got %d", clicked)
	}
}

func TestLoginOverlaySwallowsPanelClicks(t *testing.T) {
	s := NewSurface(1280, 860)
	s.ToggleClass(render.NodeLogin, render.ClassHidden, false)

	fired := false
	s.OnClick(render.NodeLoginSubmit, func() { fired = true })

	l := s.layoutLogin()
	if !s.Click(int(l.submit.x+5), int(l.submit.y+5)) {
		t.Fatal("Submit click not consumed")
	}
	if !fired {
		t.Error("Submit handler did not fire")
	}

	// A panel click between the controls is still swallowed.
	if !s.Click(int(l.panel.x+5), int(l.panel.y+5)) {
		t.Error("Panel click leaked through the overlay")
	}
}
