package ebiten

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/novastrike/internal/render"
)

// InputManager reads ebiten's input state. The scratch slices avoid
// per-tick allocations.
type InputManager struct {
	keys  []ebiten.Key
	chars []rune
}

var _ render.InputManager = (*InputManager)(nil)

func NewInputManager() *InputManager {
	return &InputManager{}
}

// JustPressedKeys returns this tick's presses as normalized key names:
// letters lowercase, digits as themselves, the rest by name.
func (m *InputManager) JustPressedKeys() []string {
	m.keys = inpututil.AppendJustPressedKeys(m.keys[:0])
	names := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		if name := keyName(k); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (m *InputManager) TypedChars() []rune {
	m.chars = ebiten.AppendInputChars(m.chars[:0])
	return m.chars
}

func (m *InputManager) ControlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl)
}

func (m *InputManager) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (m *InputManager) MouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func keyName(k ebiten.Key) string {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return strings.ToLower(k.String())
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return string(rune('0' + k - ebiten.KeyDigit0))
	}
	switch k {
	case ebiten.KeyEnter:
		return "Enter"
	case ebiten.KeySpace:
		return " "
	case ebiten.KeyBackspace:
		return "Backspace"
	case ebiten.KeyTab:
		return "Tab"
	case ebiten.KeyEscape:
		return "Escape"
	}
	return ""
}
