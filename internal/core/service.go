package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/DonovanMods/linux-mod-launcher/internal/capability"
	"github.com/DonovanMods/linux-mod-launcher/internal/catalog"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/logwatch"
	"github.com/DonovanMods/linux-mod-launcher/internal/runner"
	"github.com/DonovanMods/linux-mod-launcher/internal/source"
	"github.com/DonovanMods/linux-mod-launcher/internal/source/steam"
	"github.com/DonovanMods/linux-mod-launcher/internal/storage/config"
	"github.com/DonovanMods/linux-mod-launcher/internal/storage/db"

	"github.com/jonboulle/clockwork"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string // Directory for configuration files
	DataDir   string // Directory for database, profiles and logs
	GOOS      string // Defaults to runtime.GOOS

	// Container carries capabilities bound by the caller; nil starts empty
	Container *capability.Container
}

// Service is the main orchestrator for launch operations
type Service struct {
	container *capability.Container
	files     fsys.FS
	config    *config.Config
	catalog   *catalog.Catalog
	detectors *source.Registry
	profiles  *ProfileManager
	hooks     *HookRunner
	db        *db.DB // Owned database, nil when settings were bound by the caller

	configDir string
	dataDir   string

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewService creates a new core service instance and binds every capability
// the caller did not bind already.
func NewService(cfg ServiceConfig) (*Service, error) {
	container := cfg.Container
	if container == nil {
		container = capability.NewContainer()
	}
	goos := cfg.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	if !capability.IsBound(container, FSKey) {
		capability.BindValue[fsys.FS](container, FSKey, fsys.NewOS())
	}
	files, err := capability.Resolve(container, FSKey)
	if err != nil {
		return nil, err
	}

	appConfig, err := config.Load(files, cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	games, err := catalog.Load(files, cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	s := &Service{
		container: container,
		files:     files,
		config:    appConfig,
		catalog:   games,
		detectors: source.NewRegistry(),
		profiles:  NewProfileManager(files, cfg.DataDir, cfg.ConfigDir, appConfig),
		hooks:     NewHookRunner(appConfig.HookTimeout()),
		configDir: cfg.ConfigDir,
		dataDir:   cfg.DataDir,
		locks:     make(map[string]*sync.Mutex),
	}

	s.bindDefaults(goos)

	steamResolver, err := capability.Resolve(container, SteamKey)
	if err != nil {
		return nil, err
	}
	s.detectors.Register(steamResolver)

	return s, nil
}

func (s *Service) bindDefaults(goos string) {
	c := s.container

	if !capability.IsBound(c, ClockKey) {
		capability.BindValue(c, ClockKey, clockwork.NewRealClock())
	}
	if !capability.IsBound(c, ExecutorKey) {
		capability.Bind(c, ExecutorKey, func() (runner.Executor, error) {
			clock, err := capability.Resolve(c, ClockKey)
			if err != nil {
				return nil, err
			}
			return runner.NewShellExecutor(clock, s.config.LaunchGrace()), nil
		})
	}
	if !capability.IsBound(c, SteamKey) {
		capability.Bind(c, SteamKey, func() (*steam.Resolver, error) {
			opts := steam.DefaultOptions()
			opts.SteamDir = s.config.SteamDir
			opts.ExtraPaths = s.config.SteamExtraPaths
			return steam.NewResolver(s.files, opts), nil
		})
	}
	if !capability.IsBound(c, SettingsKey) {
		capability.Bind(c, SettingsKey, func() (SettingsStore, error) {
			if err := s.files.Mkdirs(s.dataDir); err != nil {
				return nil, fmt.Errorf("creating data dir: %w", err)
			}
			database, err := db.New(filepath.Join(s.dataDir, db.FileName))
			if err != nil {
				return nil, fmt.Errorf("opening database: %w", err)
			}
			s.db = database
			return database, nil
		})
	}
	if !capability.IsBound(c, RunnerKey) {
		capability.Bind(c, RunnerKey, func() (runner.Runner, error) {
			steamResolver, err := capability.Resolve(c, SteamKey)
			if err != nil {
				return nil, err
			}
			settings, err := capability.Resolve(c, SettingsKey)
			if err != nil {
				return nil, err
			}
			executor, err := capability.Resolve(c, ExecutorKey)
			if err != nil {
				return nil, err
			}
			return runner.NewHost(goos, runner.Deps{
				FS:       s.files,
				Steam:    steamResolver,
				Settings: settings,
				Exec:     executor,
			}), nil
		})
	}
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Container returns the capability container
func (s *Service) Container() *capability.Container {
	return s.container
}

// Config returns the loaded configuration
func (s *Service) Config() *config.Config {
	return s.config
}

// SaveConfig writes the configuration back to config.yaml
func (s *Service) SaveConfig() error {
	return s.config.Save(s.files, s.configDir)
}

// ConfigDir returns the configuration directory
func (s *Service) ConfigDir() string {
	return s.configDir
}

// DataDir returns the data directory
func (s *Service) DataDir() string {
	return s.dataDir
}

// Profiles returns the profile manager
func (s *Service) Profiles() *ProfileManager {
	return s.profiles
}

// Steam returns the Steam resolver
func (s *Service) Steam() (*steam.Resolver, error) {
	return capability.Resolve(s.container, SteamKey)
}

// ListGames returns every known game
func (s *Service) ListGames() []*domain.Game {
	return s.catalog.List()
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*domain.Game, error) {
	return s.catalog.Get(gameID)
}

// SetDefaultGame records the game used when a command gets no --game
func (s *Service) SetDefaultGame(gameID string) error {
	if _, err := s.catalog.Get(gameID); err != nil {
		return err
	}
	s.config.DefaultGame = gameID
	return s.SaveConfig()
}

// ImportGames adds every game of a games.yaml file to the user catalog and
// returns their IDs
func (s *Service) ImportGames(path string) ([]string, error) {
	path, err := config.ParseConfigPath(s.files, path)
	if err != nil {
		return nil, err
	}
	data, err := s.files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	games, err := config.ParseGames(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, id := range ids {
		if err := config.SaveGame(s.files, s.configDir, games[id]); err != nil {
			return ids[:i], fmt.Errorf("saving game %s: %w", id, err)
		}
		s.catalog.Set(games[id])
	}
	return ids, nil
}

// DetectGames reports which known games are installed on this machine
func (s *Service) DetectGames(ctx context.Context) ([]source.DetectedGame, error) {
	return s.detectors.DetectAll(ctx, s.catalog.Games())
}

// LaunchSettings returns the launch settings of a game
func (s *Service) LaunchSettings(gameID string) (*domain.LaunchSettings, error) {
	if _, err := s.catalog.Get(gameID); err != nil {
		return nil, err
	}
	settings, err := capability.Resolve(s.container, SettingsKey)
	if err != nil {
		return nil, err
	}
	return settings.GetLaunchSettings(gameID)
}

// SetLaunchParameters stores extra parameters appended to every launch of a game
func (s *Service) SetLaunchParameters(gameID, params string) error {
	if _, err := s.catalog.Get(gameID); err != nil {
		return err
	}
	settings, err := capability.Resolve(s.container, SettingsKey)
	if err != nil {
		return err
	}
	return settings.SetLaunchParameters(gameID, params)
}

// RecentLaunches returns the newest launches of a game, or of all games when gameID is empty
func (s *Service) RecentLaunches(gameID string, limit int) ([]domain.LaunchRecord, error) {
	settings, err := capability.Resolve(s.container, SettingsKey)
	if err != nil {
		return nil, err
	}
	return settings.RecentLaunches(gameID, limit)
}

// NewLogWatcher creates a watcher for the mod loader log of the game's active
// profile. The profile is looked up on every poll, so switching profiles is
// picked up without restarting the watcher.
func (s *Service) NewLogWatcher(gameID string) (*logwatch.Watcher, error) {
	game, err := s.catalog.Get(gameID)
	if err != nil {
		return nil, err
	}
	clock, err := capability.Resolve(s.container, ClockKey)
	if err != nil {
		return nil, err
	}

	src := func() (*domain.Game, *domain.Profile) {
		profile, err := s.profiles.Active(gameID)
		if err != nil {
			return game, nil
		}
		return game, profile
	}
	return logwatch.New(s.files, clock, src, s.config.WatchInterval()), nil
}

func (s *Service) profileLock(key string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	mu, ok := s.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[key] = mu
	}
	return mu
}

func isNotInstalled(err error) bool {
	return errors.Is(err, domain.ErrAppNotInstalled) || errors.Is(err, domain.ErrSteamNotFound)
}
