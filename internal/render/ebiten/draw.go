package ebiten

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/novastrike/internal/render"
)

var (
	colorBackground = color.RGBA{16, 18, 28, 255}
	colorField      = color.RGBA{8, 10, 18, 255}
	colorBorder     = color.RGBA{70, 80, 110, 255}
	colorPanel      = color.RGBA{28, 32, 48, 255}
	colorPanelRow   = color.RGBA{38, 44, 64, 255}
	colorAccent     = color.RGBA{90, 200, 250, 255}
	colorText       = color.RGBA{220, 225, 235, 255}
	colorMuted      = color.RGBA{140, 148, 168, 255}
	colorShip       = color.RGBA{120, 220, 160, 255}
	colorAsteroid   = color.RGBA{150, 150, 160, 255}
	colorRaider     = color.RGBA{230, 90, 90, 255}
	colorDebris     = color.RGBA{230, 160, 80, 255}
	colorProjectile = color.RGBA{250, 240, 120, 255}
	colorHeart      = color.RGBA{230, 70, 90, 255}
	colorHeartLost  = color.RGBA{70, 74, 90, 255}
	colorError      = color.RGBA{120, 30, 40, 255}
	colorDim        = color.RGBA{0, 0, 0, 170}
)

type fontSet struct {
	small *text.GoTextFace
	body  *text.GoTextFace
	title *text.GoTextFace
}

func newFontSet() *fontSet {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("render: loading font: %v", err)
	}
	return &fontSet{
		small: &text.GoTextFace{Source: src, Size: 12},
		body:  &text.GoTextFace{Source: src, Size: 16},
		title: &text.GoTextFace{Source: src, Size: 22},
	}
}

// Draw renders the retained scene.
func (s *Surface) Draw(dst *ebiten.Image) {
	dst.Fill(colorBackground)
	s.drawTopBar(dst)
	s.drawField(dst)
	s.drawLives(dst)
	s.drawHotkeys(dst)
	s.drawShop(dst)
	s.drawError(dst)
	s.drawGameOver(dst)
	s.drawLogin(dst)
}

func (s *Surface) drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

func (s *Surface) textWidth(str string, face *text.GoTextFace) float64 {
	w, _ := text.Measure(str, face, 0)
	return w
}

func fillRect(dst *ebiten.Image, r rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), clr, false)
}

func strokeRect(dst *ebiten.Image, r rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), width, clr, false)
}

func (s *Surface) drawButton(dst *ebiten.Image, r rect, label string, active bool) {
	bg := colorPanelRow
	if active {
		bg = color.RGBA{50, 90, 120, 255}
	}
	fillRect(dst, r, bg)
	strokeRect(dst, r, 1, colorBorder)
	tw := s.textWidth(label, s.fonts.body)
	s.drawText(dst, label, s.fonts.body, r.x+(r.w-tw)/2, r.y+(r.h-20)/2, colorText)
}

func (s *Surface) drawTopBar(dst *ebiten.Image) {
	s.drawText(dst, "Score "+s.texts[render.NodeScore], s.fonts.body, marginPx, 10, colorText)
	s.drawText(dst, "Coins "+s.texts[render.NodeCoins], s.fonts.body, 180, 10, colorText)

	// Cannon refill bar; width is the 0-100 percentage the pipeline set.
	bar := s.layoutRefillBar()
	strokeRect(dst, bar, 1, colorBorder)
	pct := s.sizes[render.NodeShootRefill][0]
	fill := rect{x: bar.x + 1, y: bar.y + 1, w: (bar.w - 2) * pct / 100, h: bar.h - 2}
	fillRect(dst, fill, colorAccent)

	s.drawButton(dst, s.layoutStartButton(), s.texts[render.NodeStartButton],
		s.class(render.NodeStartButton, render.ClassRunning))
	s.drawButton(dst, s.layoutAccountButton(), "Account", false)

	if status := s.texts[render.NodeStatus]; status != "" {
		tw := s.textWidth(status, s.fonts.small)
		s.drawText(dst, status, s.fonts.small, float64(s.width)-130-tw, 14, colorMuted)
	}
}

func (s *Surface) drawField(dst *ebiten.Image) {
	f := s.layoutField()
	fillRect(dst, f, colorField)
	strokeRect(dst, f, 1, colorBorder)

	clip := dst.SubImage(image.Rect(int(f.x), int(f.y), int(f.x+f.w), int(f.y+f.h))).(*ebiten.Image)
	for _, m := range s.entities {
		x := float32(f.x + m.x)
		y := float32(f.y + m.y)
		switch m.kind {
		case "ship":
			s.drawShip(clip, m, x, y)
		case "enemy":
			clr := colorAsteroid
			if m.hasClass("raider") {
				clr = colorRaider
			} else if m.hasClass("debris") {
				clr = colorDebris
			}
			vector.DrawFilledCircle(clip, x, y, float32(m.w/2), clr, true)
		case "projectile":
			vector.DrawFilledCircle(clip, x, y, float32(m.w/4), colorProjectile, true)
		}
	}
}

// drawShip draws the ship as a hull circle with a heading spike; an
// invulnerability ring marks the grace period after a hit.
func (s *Surface) drawShip(dst *ebiten.Image, m *entityMarker, x, y float32) {
	r := float32(m.w / 2)
	vector.DrawFilledCircle(dst, x, y, r*0.45, colorShip, true)

	nose := rotate(float64(r), 0, m.angle)
	vector.StrokeLine(dst, x, y, x+float32(nose[0]), y+float32(nose[1]), 3, colorShip, true)

	if m.hasClass(render.ClassInvulnerable) {
		vector.StrokeCircle(dst, x, y, r*0.7, 2, colorText, true)
	}
}

func rotate(x, y, angle float64) [2]float64 {
	sin, cos := math.Sincos(angle)
	return [2]float64{x*cos - y*sin, x*sin + y*cos}
}

func (s *Surface) drawLives(dst *ebiten.Image) {
	r := s.layoutLives()
	for i, row := range s.rows[render.NodeLives] {
		clr := colorHeartLost
		if row.Class == "heart red" {
			clr = colorHeart
		}
		vector.DrawFilledCircle(dst, float32(r.x+10+float64(i)*28), float32(r.y+12), 10, clr, true)
	}
}

func (s *Surface) drawHotkeys(dst *ebiten.Image) {
	r := s.layoutHotkeys()
	s.drawText(dst, "Hotkeys", s.fonts.body, r.x, r.y, colorMuted)
	y := r.y + 30
	for _, row := range s.rows[render.NodeHotkeys] {
		key := row.Text
		if key == " " {
			key = "Space"
		}
		s.drawText(dst, "["+key+"]", s.fonts.body, r.x, y, colorAccent)
		s.drawText(dst, row.Detail, s.fonts.small, r.x, y+20, colorMuted)
		y += 48
	}
}

func (s *Surface) drawShop(dst *ebiten.Image) {
	if !s.class(render.NodeShop, render.ClassOpen) {
		return
	}
	fillRect(dst, s.layoutField(), colorDim)

	panel := s.layoutShopPanel()
	fillRect(dst, panel, colorPanel)
	strokeRect(dst, panel, 1, colorBorder)
	s.drawText(dst, "Shop", s.fonts.title, panel.x+16, panel.y+12, colorText)
	s.drawText(dst, "Coins "+s.texts[render.NodeCoins], s.fonts.body, panel.x+120, panel.y+18, colorMuted)

	closeBtn := s.layoutShopClose()
	s.drawButton(dst, closeBtn, "X", false)

	for i, row := range s.rows[render.NodeShopItems] {
		r := s.layoutShopRow(i)
		fillRect(dst, r, colorPanelRow)
		s.drawText(dst, row.Text, s.fonts.body, r.x+12, r.y+8, colorText)
		s.drawText(dst, row.Detail, s.fonts.small, r.x+12, r.y+32, colorMuted)

		labelClr := colorAccent
		if row.Label == "Max" {
			labelClr = colorMuted
		}
		tw := s.textWidth(row.Label, s.fonts.body)
		s.drawText(dst, row.Label, s.fonts.body, r.x+r.w-tw-16, r.y+8, labelClr)

		// Level pips.
		for p := 0; p < row.Max; p++ {
			clr := colorHeartLost
			if p < row.Fill {
				clr = colorAccent
			}
			pip := rect{x: r.x + 12 + float64(p)*16, y: r.y + r.h - 18, w: 10, h: 10}
			fillRect(dst, pip, clr)
		}
	}
}

func (s *Surface) drawError(dst *ebiten.Image) {
	if !s.visible(render.NodeError) {
		return
	}
	banner := s.layoutError()
	fillRect(dst, banner, colorError)
	strokeRect(dst, banner, 1, colorBorder)
	msg := s.texts[render.NodeError]
	tw := s.textWidth(msg, s.fonts.body)
	s.drawText(dst, msg, s.fonts.body, banner.x+(banner.w-tw)/2, banner.y+8, colorText)
}

func (s *Surface) drawGameOver(dst *ebiten.Image) {
	if !s.visible(render.NodeGameOver) {
		return
	}
	panel := s.layoutGameOver()
	fillRect(dst, panel, colorPanel)
	strokeRect(dst, panel, 2, colorRaider)

	title := "Game over"
	tw := s.textWidth(title, s.fonts.title)
	s.drawText(dst, title, s.fonts.title, panel.x+(panel.w-tw)/2, panel.y+20, colorText)
	s.drawText(dst, "Score  "+s.texts[render.NodeGameOverScore], s.fonts.body, panel.x+40, panel.y+80, colorText)
	s.drawText(dst, "Coins  "+s.texts[render.NodeGameOverCoins], s.fonts.body, panel.x+40, panel.y+110, colorText)
	s.drawText(dst, "Click to start a new run", s.fonts.small, panel.x+40, panel.y+170, colorMuted)
}

func (s *Surface) drawLogin(dst *ebiten.Image) {
	if !s.visible(render.NodeLogin) {
		return
	}
	fillRect(dst, rect{0, 0, float64(s.width), float64(s.height)}, colorDim)

	l := s.layoutLogin()
	fillRect(dst, l.panel, colorPanel)
	strokeRect(dst, l.panel, 1, colorBorder)
	s.drawText(dst, "Account", s.fonts.title, l.panel.x+24, l.panel.y+14, colorText)

	s.drawInputField(dst, l.username, "Username", render.NodeLoginUsername)
	s.drawInputField(dst, l.password, "Password", render.NodeLoginPassword)

	s.drawButton(dst, l.submit, "Log in", false)
	s.drawButton(dst, l.register, "Register", false)
	s.drawButton(dst, l.close, "Close", false)
	s.drawButton(dst, l.logout, "Log out", false)
	s.drawButton(dst, l.delete, "Delete account", false)

	if status := s.texts[render.NodeLoginStatus]; status != "" {
		s.drawText(dst, status, s.fonts.small, l.panel.x+24, l.panel.y+l.panel.h-36, colorMuted)
	}
}

func (s *Surface) drawInputField(dst *ebiten.Image, r rect, label, node string) {
	s.drawText(dst, label, s.fonts.small, r.x, r.y-18, colorMuted)
	fillRect(dst, r, colorField)
	border := colorBorder
	if s.class(node, render.ClassFocused) {
		border = colorAccent
	}
	strokeRect(dst, r, 1, border)
	s.drawText(dst, s.texts[node], s.fonts.body, r.x+8, r.y+8, colorText)
}
