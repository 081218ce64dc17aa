package runner

import (
	"context"
	"fmt"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
)

// Select returns the Runner for a platform on the given OS (runtime.GOOS)
func Select(platform domain.Platform, goos string, deps Deps) (Runner, error) {
	switch {
	case platform.Store == domain.StoreSteam && goos == "linux":
		return NewSteamLinux(deps), nil
	case platform.Store == domain.StoreDirect:
		return NewDirect(deps), nil
	default:
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrUnsupportedPlatform, platform.Store, goos)
	}
}

// Host routes each call to the Runner of the game's active platform. The
// concrete runners are selected once, when the Host is created.
type Host struct {
	runners map[domain.Store]Runner
	goos    string
}

// Compile-time interface implementation check.
var _ Runner = (*Host)(nil)

// NewHost selects a Runner for every store supported on goos
func NewHost(goos string, deps Deps) *Host {
	h := &Host{runners: make(map[domain.Store]Runner), goos: goos}
	for _, store := range []domain.Store{domain.StoreSteam, domain.StoreDirect} {
		r, err := Select(domain.Platform{Store: store}, goos, deps)
		if err != nil {
			continue
		}
		h.runners[store] = r
	}
	return h
}

// For returns the Runner handling game
func (h *Host) For(game *domain.Game) (Runner, error) {
	if game == nil {
		return nil, domain.ErrGameNotFound
	}
	platform, err := game.ActivePlatform()
	if err != nil {
		return nil, err
	}
	r, ok := h.runners[platform.Store]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrUnsupportedPlatform, platform.Store, h.goos)
	}
	return r, nil
}

// GameArguments implements Runner
func (h *Host) GameArguments(ctx context.Context, game *domain.Game, profile *domain.Profile) (string, error) {
	r, err := h.For(game)
	if err != nil {
		return "", err
	}
	return r.GameArguments(ctx, game, profile)
}

// StartModded implements Runner
func (h *Host) StartModded(ctx context.Context, game *domain.Game, profile *domain.Profile) error {
	r, err := h.For(game)
	if err != nil {
		return err
	}
	return r.StartModded(ctx, game, profile)
}

// StartVanilla implements Runner
func (h *Host) StartVanilla(ctx context.Context, game *domain.Game, profile *domain.Profile) error {
	r, err := h.For(game)
	if err != nil {
		return err
	}
	return r.StartVanilla(ctx, game, profile)
}
