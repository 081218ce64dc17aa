// Package steam reads the local Steam installation: the client root, its
// library folders, app manifests and the Proton compatibility data of a game.
package steam

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"

	"github.com/rs/zerolog/log"
)

// FlatpakSteamID is the Flatpak app ID for Steam
const FlatpakSteamID = "com.valvesoftware.Steam"

// Options controls where the Resolver looks for Steam
type Options struct {
	SteamDir   string   // explicit client root from config; wins when it exists
	ExtraPaths []string // additional candidate roots, searched after the standard ones
	Home       string   // home directory the standard candidates are relative to
	EnvRoot    string   // STEAM_ROOT, searched first
}

// DefaultOptions returns Options for the current user
func DefaultOptions() Options {
	home, _ := os.UserHomeDir()
	return Options{
		Home:    home,
		EnvRoot: os.Getenv("STEAM_ROOT"),
	}
}

// Resolver answers questions about the Steam installation. All reads go
// through the filesystem capability so tests can run against memory.
type Resolver struct {
	fs   fsys.FS
	opts Options
}

// NewResolver creates a Resolver
func NewResolver(fs fsys.FS, opts Options) *Resolver {
	return &Resolver{fs: fs, opts: opts}
}

// Candidates returns the Steam roots to probe, in search order
func (r *Resolver) Candidates() []string {
	var paths []string
	if r.opts.EnvRoot != "" {
		paths = append(paths, r.opts.EnvRoot)
	}
	if home := r.opts.Home; home != "" {
		paths = append(paths,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		)
	}
	paths = append(paths, r.opts.ExtraPaths...)
	if home := r.opts.Home; home != "" {
		paths = append(paths,
			filepath.Join(home, ".var", "app", FlatpakSteamID, ".steam", "steam"),
			filepath.Join(home, "snap", "steam", "common", ".steam", "steam"),
		)
	}
	paths = append(paths, "/usr/games/steam", "/opt/steam")
	return paths
}

// SteamDirectory returns the Steam client root. A configured directory is
// used when it exists; otherwise the first existing candidate wins.
func (r *Resolver) SteamDirectory() (string, error) {
	if dir := r.opts.SteamDir; dir != "" {
		if r.isDir(dir) {
			log.Debug().Str("dir", dir).Msg("using configured Steam directory")
			return dir, nil
		}
		log.Warn().Str("dir", dir).Msg("configured Steam directory not found")
	}

	for _, path := range r.Candidates() {
		if r.isDir(path) {
			log.Debug().Str("dir", path).Msg("found Steam installation")
			return path, nil
		}
	}
	return "", domain.ErrSteamNotFound
}

// LibraryPaths returns every Steam library of the given root. The root itself
// is always first; libraryfolders.vdf adds the rest.
func (r *Resolver) LibraryPaths(steamRoot string) ([]string, error) {
	paths := []string{steamRoot}
	seen := map[string]bool{filepath.Clean(steamRoot): true}

	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	data, err := r.fs.ReadFile(vdfPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Single library: the steam root itself is the library
			return paths, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}

	root, err := parseVDF(data)
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	for _, p := range getLibraryPaths(root) {
		if seen[filepath.Clean(p)] {
			continue
		}
		seen[filepath.Clean(p)] = true
		paths = append(paths, p)
	}
	return paths, nil
}

// App is an installed Steam app
type App struct {
	Manifest    AppManifest
	Library     string // library root containing the manifest
	InstallPath string // <library>/steamapps/common/<installdir>
}

// SteamApps returns the steamapps directory of the app's library
func (a App) SteamApps() string {
	return filepath.Join(a.Library, "steamapps")
}

// FindApp locates the library holding appmanifest_<appID>.acf
func (r *Resolver) FindApp(appID string) (App, error) {
	steamRoot, err := r.SteamDirectory()
	if err != nil {
		return App{}, err
	}
	libraries, err := r.LibraryPaths(steamRoot)
	if err != nil {
		return App{}, err
	}

	for _, lib := range libraries {
		manifestPath := filepath.Join(lib, "steamapps", "appmanifest_"+appID+".acf")
		data, err := r.fs.ReadFile(manifestPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return App{}, fmt.Errorf("reading app manifest: %w", err)
		}
		manifest, err := ParseAppManifest(data)
		if err != nil {
			return App{}, fmt.Errorf("parsing %s: %w", manifestPath, err)
		}
		if manifest.AppID == "" {
			manifest.AppID = appID
		}
		app := App{Manifest: manifest, Library: lib}
		if manifest.InstallDir != "" {
			app.InstallPath = filepath.Join(lib, "steamapps", "common", manifest.InstallDir)
		}
		return app, nil
	}
	return App{}, fmt.Errorf("%w: %s", domain.ErrAppNotInstalled, appID)
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir
}
