package session

// Overlay tracks which overlays sit on top of the playfield. The shop
// and the login screen are independent. The login screen closes itself
// on a successful login, and a logged-out user always sees it: the
// open flag only matters once someone is logged in.
type Overlay struct {
	shopOpen  bool
	loginOpen bool
}

func (o *Overlay) ShopOpen() bool { return o.shopOpen }

// LoginVisible derives the login overlay's visibility from the open
// flag and the auth state.
func (o *Overlay) LoginVisible(loggedIn bool) bool {
	return o.loginOpen || !loggedIn
}
