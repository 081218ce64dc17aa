package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/storage/config"
)

// ProfileManager handles profile CRUD operations and switching. A profile is a
// directory under <data>/profiles/<game>/; the active profile of each game is
// stored in config.yaml.
type ProfileManager struct {
	mu        sync.Mutex
	files     fsys.FS
	dataDir   string
	configDir string
	cfg       *config.Config
}

// NewProfileManager creates a new profile manager
func NewProfileManager(files fsys.FS, dataDir, configDir string, cfg *config.Config) *ProfileManager {
	return &ProfileManager{
		files:     files,
		dataDir:   dataDir,
		configDir: configDir,
		cfg:       cfg,
	}
}

// GameDir returns the directory holding every profile of a game
func (pm *ProfileManager) GameDir(gameID string) string {
	return filepath.Join(pm.dataDir, "profiles", gameID)
}

// Path returns the directory of a profile
func (pm *ProfileManager) Path(gameID, name string) string {
	return filepath.Join(pm.GameDir(gameID), name)
}

func validateProfileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid profile name: %q", name)
	}
	return nil
}

// Create creates a new profile for a game. The first profile of a game becomes active.
func (pm *ProfileManager) Create(gameID, name string) (*domain.Profile, error) {
	if err := validateProfileName(name); err != nil {
		return nil, err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	path := pm.Path(gameID, name)
	exists, err := pm.files.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("checking profile: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileExists, name)
	}

	if err := fsys.EnsureDirectory(pm.files, path); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	profile := &domain.Profile{GameID: gameID, Name: name, Path: path}
	if pm.cfg.ActiveProfile(gameID) == "" {
		if err := pm.activate(gameID, name); err != nil {
			return nil, err
		}
		profile.IsActive = true
	}
	return profile, nil
}

// Clone creates a profile holding a copy of every file of profile from
func (pm *ProfileManager) Clone(gameID, from, name string) (*domain.Profile, error) {
	if err := validateProfileName(name); err != nil {
		return nil, err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	src, err := pm.get(gameID, from)
	if err != nil {
		return nil, err
	}

	path := pm.Path(gameID, name)
	exists, err := pm.files.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("checking profile: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileExists, name)
	}

	if err := pm.files.CopyFolder(src.Path, path); err != nil {
		return nil, fmt.Errorf("copying profile %s: %w", from, err)
	}
	return &domain.Profile{GameID: gameID, Name: name, Path: path}, nil
}

// List returns all profiles for a game sorted by name
func (pm *ProfileManager) List(gameID string) ([]*domain.Profile, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	names, err := pm.files.Readdir(pm.GameDir(gameID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	active := pm.cfg.ActiveProfile(gameID)
	profiles := make([]*domain.Profile, 0, len(names))
	for _, name := range names {
		path := pm.Path(gameID, name)
		info, err := pm.files.Stat(path)
		if err != nil || !info.IsDir {
			continue // Skip stray files
		}
		profiles = append(profiles, &domain.Profile{
			GameID:   gameID,
			Name:     name,
			Path:     path,
			IsActive: name == active,
		})
	}
	return profiles, nil
}

// Get retrieves a specific profile
func (pm *ProfileManager) Get(gameID, name string) (*domain.Profile, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.get(gameID, name)
}

func (pm *ProfileManager) get(gameID, name string) (*domain.Profile, error) {
	if err := validateProfileName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileNotFound, err)
	}

	path := pm.Path(gameID, name)
	info, err := pm.files.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if !info.IsDir {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}

	return &domain.Profile{
		GameID:   gameID,
		Name:     name,
		Path:     path,
		IsActive: pm.cfg.ActiveProfile(gameID) == name,
	}, nil
}

// Delete removes a profile and everything inside it. Deleting the active
// profile leaves the game without one.
func (pm *ProfileManager) Delete(gameID, name string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	profile, err := pm.get(gameID, name)
	if err != nil {
		return err
	}

	if err := fsys.EmptyDirectory(pm.files, profile.Path); err != nil {
		return fmt.Errorf("emptying profile: %w", err)
	}
	if err := pm.files.Rmdir(profile.Path); err != nil {
		return fmt.Errorf("removing profile: %w", err)
	}

	if profile.IsActive {
		return pm.activate(gameID, "")
	}
	return nil
}

// Activate makes a profile the one launched for its game
func (pm *ProfileManager) Activate(gameID, name string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, err := pm.get(gameID, name); err != nil {
		return err
	}
	return pm.activate(gameID, name)
}

func (pm *ProfileManager) activate(gameID, name string) error {
	pm.cfg.SetActiveProfile(gameID, name)
	if err := pm.cfg.Save(pm.files, pm.configDir); err != nil {
		return fmt.Errorf("saving active profile: %w", err)
	}
	return nil
}

// Active returns the active profile of a game
func (pm *ProfileManager) Active(gameID string) (*domain.Profile, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	name := pm.cfg.ActiveProfile(gameID)
	if name == "" {
		return nil, domain.ErrNoActiveProfile
	}
	return pm.get(gameID, name)
}
