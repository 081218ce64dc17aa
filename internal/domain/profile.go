package domain

// Profile is a user-created directory holding one set of mods and their loader output
type Profile struct {
	GameID   string `json:"game_id"`
	Name     string `json:"name"`
	Path     string `json:"path"`   // Absolute path of the profile directory
	IsActive bool   `json:"active"` // Selected profile for the game
}
