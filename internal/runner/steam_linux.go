package runner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/logging"
)

// protonDrive is the Wine drive mapped to the host root
const protonDrive = "Z:"

// SteamResolver is what the Steam runner needs to know about the Steam install
type SteamResolver interface {
	SteamDirectory() (string, error)
	IsProtonGame(appID string) (bool, error)
	UserRegPath(appID string) (string, error)
}

// SteamLinux launches games through the Linux Steam client, with Proton
// preparation for Windows games.
type SteamLinux struct {
	steam    SteamResolver
	settings SettingsReader
	exec     Executor
	prepare  Preparer
}

// Compile-time interface implementation check.
var _ Runner = (*SteamLinux)(nil)

// NewSteamLinux creates the Steam runner
func NewSteamLinux(deps Deps) *SteamLinux {
	prep := deps.Preparer
	if prep == nil {
		prep = NewWineDLLOverride(deps.FS, deps.Steam)
	}
	return &SteamLinux{
		steam:    deps.Steam,
		settings: deps.Settings,
		exec:     deps.Exec,
		prepare:  prep,
	}
}

// GameArguments returns the loader arguments; the profile directory is
// addressed through the Z: drive when the game runs under Proton.
func (r *SteamLinux) GameArguments(_ context.Context, game *domain.Game, profile *domain.Profile) (string, error) {
	if err := requireProfile(profile); err != nil {
		return "", err
	}
	appID, err := steamAppID(game)
	if err != nil {
		return "", err
	}
	proton, err := r.isProton(appID)
	if err != nil {
		return "", err
	}

	dir := profile.Path
	if proton {
		dir = protonDrive + dir
	}
	return LoaderArguments(game.ModLoader, dir), nil
}

// StartModded implements Runner
func (r *SteamLinux) StartModded(ctx context.Context, game *domain.Game, profile *domain.Profile) error {
	logging.Log(logging.SeverityInfo, "Launching modded")

	if err := requireProfile(profile); err != nil {
		return err
	}
	appID, err := steamAppID(game)
	if err != nil {
		return err
	}
	proton, err := r.isProton(appID)
	if err != nil {
		return err
	}
	if proton {
		if err := r.prepare.Prepare(ctx, game, appID); err != nil {
			return err
		}
	}

	args, err := r.GameArguments(ctx, game, profile)
	if err != nil {
		return err
	}
	return r.start(ctx, game, appID, args)
}

// StartVanilla implements Runner
func (r *SteamLinux) StartVanilla(ctx context.Context, game *domain.Game, _ *domain.Profile) error {
	logging.Log(logging.SeverityInfo, "Launching vanilla")

	appID, err := steamAppID(game)
	if err != nil {
		return err
	}
	return r.start(ctx, game, appID, VanillaArguments)
}

func (r *SteamLinux) start(ctx context.Context, game *domain.Game, appID, args string) error {
	steamDir, err := r.steam.SteamDirectory()
	if err != nil {
		return &domain.PlatformDetectionError{Op: "steam directory", Err: err}
	}
	logging.Logf(logging.SeverityInfo, "Steam directory is: %s", steamDir)

	params, err := launchParameters(r.settings, game.ID)
	if err != nil {
		return err
	}

	steamSh := fmt.Sprintf(`"%s"`, filepath.Join(steamDir, "steam.sh"))
	cmdline := commandLine(steamSh, "-applaunch", appID, args, params)
	logging.Logf(logging.SeverityInfo, "Running command: %s", cmdline)

	if err := r.exec.Start(ctx, cmdline); err != nil {
		logging.Log(logging.SeverityActionStopped, "Error was thrown whilst starting the game")
		logging.Log(logging.SeverityError, err.Error())
		return &domain.LaunchError{
			Title:  "Error starting Steam",
			Detail: err.Error(),
			Hint:   "Ensure that the Steam directory has been set correctly in the settings",
			Err:    err,
		}
	}
	return nil
}

func (r *SteamLinux) isProton(appID string) (bool, error) {
	proton, err := r.steam.IsProtonGame(appID)
	if err != nil {
		return false, &domain.PlatformDetectionError{Op: "proton status", Err: err}
	}
	return proton, nil
}

func steamAppID(game *domain.Game) (string, error) {
	if game == nil {
		return "", domain.ErrGameNotFound
	}
	platform, err := game.ActivePlatform()
	if err != nil {
		return "", err
	}
	if platform.Store != domain.StoreSteam {
		return "", fmt.Errorf("%w: %s is not a steam game", domain.ErrUnsupportedPlatform, game.ID)
	}
	if platform.StoreIdentifier == "" {
		return "", fmt.Errorf("%w: %s has no steam app id", domain.ErrInvalidConfig, game.ID)
	}
	return platform.StoreIdentifier, nil
}
