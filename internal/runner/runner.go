// Package runner starts games, either vanilla or with their mod loader
// injected. Each store/OS combination has its own Runner; Select picks one.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
)

// VanillaArguments disables the mod loader for a launch
const VanillaArguments = "--no-mods"

// Runner is the launch contract every platform implements. Start methods are
// fire-and-forget: they return once the launch command has been issued.
type Runner interface {
	// GameArguments returns the arguments that inject the game's mod loader
	GameArguments(ctx context.Context, game *domain.Game, profile *domain.Profile) (string, error)
	// StartModded prepares the platform if needed, then launches with mods
	StartModded(ctx context.Context, game *domain.Game, profile *domain.Profile) error
	// StartVanilla launches with mods disabled; no preparation happens
	StartVanilla(ctx context.Context, game *domain.Game, profile *domain.Profile) error
}

// SettingsReader provides the per-game launch settings
type SettingsReader interface {
	GetLaunchSettings(gameID string) (*domain.LaunchSettings, error)
}

// Deps are the collaborators a Runner needs
type Deps struct {
	FS       fsys.FS
	Steam    SteamResolver
	Settings SettingsReader
	Exec     Executor
	Preparer Preparer // optional; defaults to the Wine DLL override preparer
}

// LoaderArguments returns the command line that points loader at dir
func LoaderArguments(loader domain.ModLoader, dir string) string {
	switch loader {
	case domain.LoaderMelonLoader:
		return fmt.Sprintf(`--melonloader.basedir "%s"`, dir)
	case domain.LoaderBepInEx:
		preloader := filepath.Join(dir, "BepInEx", "core", "BepInEx.Preloader.dll")
		return fmt.Sprintf(`--doorstop-enable true --doorstop-target "%s"`, preloader)
	default:
		return ""
	}
}

// commandLine joins the non-empty parts with single spaces
func commandLine(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func launchParameters(settings SettingsReader, gameID string) (string, error) {
	if settings == nil {
		return "", nil
	}
	s, err := settings.GetLaunchSettings(gameID)
	if err != nil {
		return "", fmt.Errorf("loading launch settings: %w", err)
	}
	if s == nil {
		return "", nil
	}
	return s.LaunchParameters, nil
}

func requireProfile(profile *domain.Profile) error {
	if profile == nil || profile.Path == "" {
		return domain.ErrNoActiveProfile
	}
	return nil
}
