package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/DonovanMods/linux-mod-launcher/internal/capability"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/logging"

	"github.com/rs/zerolog/log"
)

// Launch starts a game in the given mode with its active profile. Launches of
// the same profile are serialized. The returned record is also stored in the
// launch history; any failure is returned as a *domain.LaunchError.
func (s *Service) Launch(ctx context.Context, gameID string, mode domain.LaunchMode) (*domain.LaunchRecord, error) {
	r, err := capability.Resolve(s.container, RunnerKey)
	if err != nil {
		return nil, domain.AsLaunchError(err)
	}
	settings, err := capability.Resolve(s.container, SettingsKey)
	if err != nil {
		return nil, domain.AsLaunchError(err)
	}
	clock, err := capability.Resolve(s.container, ClockKey)
	if err != nil {
		return nil, domain.AsLaunchError(err)
	}

	game, err := s.catalog.Get(gameID)
	if err != nil {
		return nil, domain.AsLaunchError(err)
	}

	profile, err := s.profiles.Active(gameID)
	switch {
	case err == nil:
	case mode == domain.LaunchVanilla && errors.Is(err, domain.ErrNoActiveProfile):
		profile = nil // Vanilla launches do not need a profile
	default:
		return nil, domain.AsLaunchError(err)
	}

	lockKey := gameID
	profileName := ""
	if profile != nil {
		profileName = profile.Name
		lockKey = gameID + "/" + profile.Name
	}
	mu := s.profileLock(lockKey)
	mu.Lock()
	defer mu.Unlock()

	hc := HookContext{
		GameID:      game.ID,
		GamePath:    s.gamePath(game),
		ProfileName: profileName,
		Mode:        mode,
	}
	if profile != nil {
		hc.ProfilePath = profile.Path
	}

	if script := game.Hooks.BeforeLaunch; script != "" {
		hc.HookName = HookBeforeLaunch
		if _, err := s.hooks.Run(ctx, script, hc); err != nil {
			logging.Log(logging.SeverityActionStopped, "before_launch hook failed, launch cancelled")
			return nil, &domain.LaunchError{
				Title:  "Launch hook failed",
				Detail: err.Error(),
				Hint:   "Fix or remove the before_launch hook in games.yaml",
				Err:    err,
			}
		}
	}

	rec := &domain.LaunchRecord{
		GameID:    game.ID,
		Profile:   profileName,
		Mode:      mode,
		StartedAt: clock.Now(),
	}

	if mode == domain.LaunchVanilla {
		err = r.StartVanilla(ctx, game, profile)
	} else {
		err = r.StartModded(ctx, game, profile)
	}
	if err != nil {
		rec.Error = err.Error()
	}

	if recErr := settings.RecordLaunch(rec); recErr != nil {
		log.Warn().Err(recErr).Str("game", game.ID).Msg("could not record launch")
	}

	if err != nil {
		return rec, domain.AsLaunchError(err)
	}

	if script := game.Hooks.AfterLaunch; script != "" {
		hc.HookName = HookAfterLaunch
		if _, hookErr := s.hooks.Run(ctx, script, hc); hookErr != nil {
			log.Warn().Err(hookErr).Str("game", game.ID).Msg("after_launch hook failed")
		}
	}

	log.Info().Str("game", game.ID).Str("profile", profileName).Str("mode", mode.String()).Msg("launch command issued")
	return rec, nil
}

// GameArguments returns the mod loader arguments a modded launch of the game would use
func (s *Service) GameArguments(ctx context.Context, gameID string) (string, error) {
	r, err := capability.Resolve(s.container, RunnerKey)
	if err != nil {
		return "", err
	}
	game, err := s.catalog.Get(gameID)
	if err != nil {
		return "", err
	}
	profile, err := s.profiles.Active(gameID)
	if err != nil {
		return "", err
	}
	args, err := r.GameArguments(ctx, game, profile)
	if err != nil {
		return "", fmt.Errorf("building arguments for %s: %w", gameID, err)
	}
	return args, nil
}

// gamePath returns the install directory of a game, or "" when unknown
func (s *Service) gamePath(game *domain.Game) string {
	platform, err := game.ActivePlatform()
	if err != nil {
		return ""
	}
	if platform.InstallPath != "" || platform.Store != domain.StoreSteam {
		return platform.InstallPath
	}

	resolver, err := capability.Resolve(s.container, SteamKey)
	if err != nil {
		return ""
	}
	app, err := resolver.FindApp(platform.StoreIdentifier)
	if err != nil {
		if !isNotInstalled(err) {
			log.Debug().Err(err).Str("game", game.ID).Msg("looking up install path")
		}
		return ""
	}
	return app.InstallPath
}
