package steam

import (
	"context"
	"errors"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/source"

	"github.com/rs/zerolog/log"
)

// Compile-time interface implementation check.
var _ source.Detector = (*Resolver)(nil)

// ID identifies the Steam detector
func (r *Resolver) ID() string { return "steam" }

// Name is the display name of the store
func (r *Resolver) Name() string { return "Steam" }

// Detect scans Steam libraries for catalog games with a Steam platform
func (r *Resolver) Detect(ctx context.Context, games []domain.Game) ([]source.DetectedGame, error) {
	if _, err := r.SteamDirectory(); err != nil {
		if errors.Is(err, domain.ErrSteamNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var found []source.DetectedGame
	for _, g := range games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, p := range g.Platforms {
			if p.Store != domain.StoreSteam || p.StoreIdentifier == "" {
				continue
			}
			app, err := r.FindApp(p.StoreIdentifier)
			if err != nil {
				if errors.Is(err, domain.ErrAppNotInstalled) {
					continue
				}
				log.Warn().Err(err).Str("game", g.ID).Msg("skipping unreadable steam app")
				continue
			}
			proton, err := r.IsProtonGame(p.StoreIdentifier)
			if err != nil {
				log.Warn().Err(err).Str("game", g.ID).Msg("could not determine proton status")
			}
			found = append(found, source.DetectedGame{
				GameID:          g.ID,
				Store:           domain.StoreSteam,
				StoreIdentifier: p.StoreIdentifier,
				InstallPath:     app.InstallPath,
				Proton:          proton,
			})
			break
		}
	}
	return found, nil
}
