package api

// GameResource is the wire format of a saved run, as the service
// stores and returns it.
type GameResource struct {
	ID                *int64      `json:"id"`
	Ended             bool        `json:"ended"`
	Score             float64     `json:"score"`
	Coins             int         `json:"coins"`
	Lives             int         `json:"lives"`
	EnemySpawnTimeout float64     `json:"enemy_spawn_timeout"`
	Items             []ItemLevel `json:"items"`
}

// ItemLevel is one purchased upgrade inside a GameResource.
type ItemLevel struct {
	Level int      `json:"level"`
	Item  ItemInfo `json:"item"`
}

// ItemInfo describes the upgrade itself. The service stores the full
// item, but only the id matters when a game is loaded back.
type ItemInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type userResponse struct {
	Username string `json:"username"`
}

type wireError struct {
	Err   string `json:"error"`
	Short string `json:"short"`
}
