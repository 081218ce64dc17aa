package runner

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/logging"
)

// Direct starts a game executable without a store client. Used for DRM-free
// installs where the platform's store identifier is the executable path.
type Direct struct {
	fs       fsys.FS
	settings SettingsReader
	exec     Executor
}

// Compile-time interface implementation check.
var _ Runner = (*Direct)(nil)

// NewDirect creates the direct runner
func NewDirect(deps Deps) *Direct {
	return &Direct{fs: deps.FS, settings: deps.Settings, exec: deps.Exec}
}

// GameArguments implements Runner
func (r *Direct) GameArguments(_ context.Context, game *domain.Game, profile *domain.Profile) (string, error) {
	if err := requireProfile(profile); err != nil {
		return "", err
	}
	if game == nil {
		return "", domain.ErrGameNotFound
	}
	return LoaderArguments(game.ModLoader, profile.Path), nil
}

// StartModded implements Runner
func (r *Direct) StartModded(ctx context.Context, game *domain.Game, profile *domain.Profile) error {
	logging.Log(logging.SeverityInfo, "Launching modded")

	args, err := r.GameArguments(ctx, game, profile)
	if err != nil {
		return err
	}
	return r.start(ctx, game, args)
}

// StartVanilla implements Runner
func (r *Direct) StartVanilla(ctx context.Context, game *domain.Game, _ *domain.Profile) error {
	logging.Log(logging.SeverityInfo, "Launching vanilla")

	if game == nil {
		return domain.ErrGameNotFound
	}
	return r.start(ctx, game, VanillaArguments)
}

func (r *Direct) start(ctx context.Context, game *domain.Game, args string) error {
	exe, err := r.executable(game)
	if err != nil {
		return err
	}

	params, err := launchParameters(r.settings, game.ID)
	if err != nil {
		return err
	}

	cmdline := commandLine(fmt.Sprintf(`"%s"`, exe), args, params)
	logging.Logf(logging.SeverityInfo, "Running command: %s", cmdline)

	if err := r.exec.Start(ctx, cmdline); err != nil {
		logging.Log(logging.SeverityActionStopped, "Error was thrown whilst starting the game")
		logging.Log(logging.SeverityError, err.Error())
		return &domain.LaunchError{
			Title:  "Error starting game",
			Detail: err.Error(),
			Hint:   "Ensure that the game executable is set correctly in games.yaml",
			Err:    err,
		}
	}
	return nil
}

func (r *Direct) executable(game *domain.Game) (string, error) {
	platform, err := game.ActivePlatform()
	if err != nil {
		return "", err
	}
	if platform.Store != domain.StoreDirect {
		return "", fmt.Errorf("%w: %s is not a direct install", domain.ErrUnsupportedPlatform, game.ID)
	}

	exe := platform.StoreIdentifier
	if exe == "" {
		return "", &domain.PlatformDetectionError{Op: "game executable", Err: fmt.Errorf("%s has no executable configured", game.ID)}
	}
	ok, err := r.fs.Exists(exe)
	if err != nil {
		return "", &domain.PlatformDetectionError{Op: "game executable", Err: err}
	}
	if !ok {
		return "", &domain.PlatformDetectionError{Op: "game executable", Err: fmt.Errorf("%s: %w", exe, fs.ErrNotExist)}
	}
	return exe, nil
}
