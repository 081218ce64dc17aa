package source

import (
	"context"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
)

// DetectedGame is a catalog game found installed on this machine
type DetectedGame struct {
	GameID          string
	Store           domain.Store
	StoreIdentifier string // Steam App ID or executable path
	InstallPath     string
	Proton          bool
}

// Detector finds installed catalog games for one store
type Detector interface {
	// Identity
	ID() string
	Name() string

	// Detect returns the subset of games installed through this store. A store
	// that is not present on the machine yields no games and no error.
	Detect(ctx context.Context, games []domain.Game) ([]DetectedGame, error)
}
