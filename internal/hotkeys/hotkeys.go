// Package hotkeys maps key events to actions. Bindings are matched by
// predicate, so several bindings can fire on the same event.
package hotkeys

// Event is a normalized key press. Key holds the typed character for
// letter keys ("s") or the key name for the rest ("Enter", " ").
type Event struct {
	Key string
}

// Hotkey binds a predicate to an action. DisplayKey and Description
// feed the on-screen hotkey panel.
type Hotkey struct {
	Matches     func(Event) bool
	Action      func()
	DisplayKey  string
	Description string
}

// KeyIs returns a predicate matching exactly one key.
func KeyIs(key string) func(Event) bool {
	return func(ev Event) bool { return ev.Key == key }
}

// Dispatcher fans key events out to every matching binding.
type Dispatcher struct {
	hotkeys []Hotkey
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register appends bindings. Order matters: on dispatch, matching
// bindings fire in the order they were registered.
func (d *Dispatcher) Register(hks ...Hotkey) {
	d.hotkeys = append(d.hotkeys, hks...)
}

// Dispatch fires the action of every binding whose predicate matches.
func (d *Dispatcher) Dispatch(ev Event) {
	for _, hk := range d.hotkeys {
		if hk.Matches(ev) {
			hk.Action()
		}
	}
}

// Hotkeys returns a copy of the registered bindings for display.
func (d *Dispatcher) Hotkeys() []Hotkey {
	out := make([]Hotkey, len(d.hotkeys))
	copy(out, d.hotkeys)
	return out
}
