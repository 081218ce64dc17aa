package domain

import "time"

// LaunchMode selects between a modded and a vanilla launch
type LaunchMode int

const (
	LaunchModded LaunchMode = iota
	LaunchVanilla
)

func (m LaunchMode) String() string {
	switch m {
	case LaunchVanilla:
		return "vanilla"
	default:
		return "modded"
	}
}

// ParseLaunchMode converts a string to LaunchMode
func ParseLaunchMode(s string) LaunchMode {
	if s == "vanilla" {
		return LaunchVanilla
	}
	return LaunchModded
}

// LaunchSettings holds per-game user settings read at launch time
type LaunchSettings struct {
	GameID           string
	LaunchParameters string // Extra command-line parameters appended last
}

// LaunchRecord is one entry of the launch history
type LaunchRecord struct {
	ID        string
	GameID    string
	Profile   string
	Mode      LaunchMode
	StartedAt time.Time
	Error     string // Empty when the launch command was issued successfully
}

// Succeeded reports whether the launch command was issued without error
func (r LaunchRecord) Succeeded() bool {
	return r.Error == ""
}
