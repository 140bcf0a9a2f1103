// Package render defines the capability interfaces between the game
// and a rendering backend: a retained surface the render pipeline
// mutates once per tick, an input manager, and the engine that owns
// the window and the run loop.
package render

// Named nodes of the surface. The pipeline addresses fixed parts of
// the screen by these names; a backend decides where and how they are
// drawn.
const (
	NodeField         = "field"
	NodeScore         = "score"
	NodeCoins         = "coins"
	NodeLives         = "lives"
	NodeShootRefill   = "shoot-refill"
	NodeStartButton   = "start-button"
	NodeError         = "error"
	NodeShop          = "shop"
	NodeShopItems     = "shop-items"
	NodeShopClose     = "shop-close"
	NodeHotkeys       = "hotkeys"
	NodeGameOver      = "game-over"
	NodeGameOverScore = "game-over-score"
	NodeGameOverCoins = "game-over-coins"
	NodeStatus        = "status"

	NodeLogin         = "login"
	NodeLoginUsername = "login-username"
	NodeLoginPassword = "login-password"
	NodeLoginStatus   = "login-status"
	NodeLoginSubmit   = "login-submit"
	NodeLoginRegister = "login-register"
	NodeLoginLogout   = "login-logout"
	NodeLoginDelete   = "login-delete"
	NodeLoginClose    = "login-close"
	NodeLoginOpen     = "login-open"
)

// Classes toggled on named nodes and entity markers.
const (
	ClassHidden       = "hidden"
	ClassOpen         = "open"
	ClassRunning      = "running"
	ClassInvulnerable = "invulnerable"
	ClassFocused      = "focused"
	ClassMaxLevel     = "max-level"
)

// ShipEntityID is the reserved marker id of the player ship.
const ShipEntityID int64 = -1

// Row is one entry of a rebuilt list subtree (shop items, lives,
// hotkey panel). A backend lays rows out under their list node; rows
// with an OnClick handler are click targets.
type Row struct {
	ID      string
	Class   string
	Text    string
	Detail  string
	Label   string
	Fill    int
	Max     int
	OnClick func()
}

// Surface is the retained drawing surface. The render pipeline mutates
// it from the tick thread; the backend draws the retained state every
// frame. Entity markers are keyed by id, so placing an existing id
// updates it in place.
type Surface interface {
	// PlaceEntity puts or updates a marker. x/y is the marker center in
	// field coordinates (top-left origin), angle in radians. The class
	// string holds space-separated tokens, first token selecting the
	// marker kind.
	PlaceEntity(id int64, class string, x, y, w, h, angle float64)
	// RemoveEntities drops every marker whose first class token matches.
	RemoveEntities(class string)

	SetText(node, text string)
	ToggleClass(node, class string, on bool)
	SetSize(node string, width, height float64)
	SetRows(node string, rows []Row)

	// OnClick registers a persistent click handler for a named node.
	OnClick(node string, fn func())
	// Click dispatches a press at surface coordinates to the handler of
	// the node or row under it. Reports whether anything consumed it.
	Click(x, y int) bool
	// NodeBounds returns the surface-coordinate rectangle of a named
	// node, when the backend lays that node out.
	NodeBounds(node string) (x, y, w, h float64, ok bool)
}

// InputManager exposes per-tick input state.
type InputManager interface {
	// JustPressedKeys returns the keys pressed this tick: typed letters
	// in lowercase ("s"), the rest by name ("Enter", " ", "Backspace").
	JustPressedKeys() []string
	// TypedChars returns printable characters typed this tick.
	TypedChars() []rune
	ControlPressed() bool
	CursorPosition() (x, y int)
	MouseJustPressed() bool
}

// App is the per-tick callback the engine drives.
type App interface {
	Update() error
}

// Engine owns the window and the run loop. Run blocks until the app
// exits or fails.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetTPS(tps int)
	Run(app App) error
}
