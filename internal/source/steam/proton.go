package steam

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ProtonStatus explains how a game's compatibility layer was determined
type ProtonStatus struct {
	Proton bool
	Reason string // "compat tool <name>", "platform override", "native platform override", "compatdata prefix" or ""
}

// ProtonStatus reports whether appID runs under Proton. The first rule that
// applies decides:
//   - config.vdf maps the app to a compatibility tool: Proton
//   - the app manifest overrides the platform to windows: Proton
//   - the app manifest overrides the platform to linux: native
//   - a Wine prefix exists in the app's compatdata: Proton
//
// A prefix outlives the compat tool that created it, so it only counts when
// the manifest names no platform. An unreadable manifest or config is an
// error, never a "no".
func (r *Resolver) ProtonStatus(appID string) (ProtonStatus, error) {
	app, err := r.FindApp(appID)
	if err != nil {
		return ProtonStatus{}, err
	}

	steamRoot, err := r.SteamDirectory()
	if err != nil {
		return ProtonStatus{}, err
	}
	tool, err := r.CompatTool(steamRoot, appID)
	if err != nil {
		return ProtonStatus{}, err
	}
	if tool != "" {
		return ProtonStatus{Proton: true, Reason: "compat tool " + tool}, nil
	}

	switch app.Manifest.PlatformOverride {
	case "windows":
		return ProtonStatus{Proton: true, Reason: "platform override"}, nil
	case "linux":
		return ProtonStatus{Reason: "native platform override"}, nil
	}

	prefix := filepath.Join(CompatDataDir(app), "pfx")
	ok, err := r.fs.Exists(prefix)
	if err != nil {
		return ProtonStatus{}, err
	}
	if ok {
		return ProtonStatus{Proton: true, Reason: "compatdata prefix"}, nil
	}
	return ProtonStatus{}, nil
}

// IsProtonGame reports whether appID runs under Proton
func (r *Resolver) IsProtonGame(appID string) (bool, error) {
	status, err := r.ProtonStatus(appID)
	return status.Proton, err
}

// CompatTool returns the compatibility tool config.vdf assigns to appID, or ""
func (r *Resolver) CompatTool(steamRoot, appID string) (string, error) {
	path := filepath.Join(steamRoot, "config", "config.vdf")
	data, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading steam config: %w", err)
	}
	root, err := parseVDF(data)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return lookupString(root,
		"installconfigstore", "software", "valve", "steam", "compattoolmapping", appID, "name"), nil
}

// CompatDataDir returns the Proton data directory of app
func CompatDataDir(app App) string {
	return filepath.Join(app.SteamApps(), "compatdata", app.Manifest.AppID)
}

// UserRegPath returns the user-scoped Wine registry of appID's Proton prefix
func (r *Resolver) UserRegPath(appID string) (string, error) {
	app, err := r.FindApp(appID)
	if err != nil {
		return "", err
	}
	return filepath.Join(CompatDataDir(app), "pfx", "user.reg"), nil
}
