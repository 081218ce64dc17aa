// Package config loads the launcher configuration and the games catalog files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the config and data directories
const AppName = "lml"

// FileName is the configuration file inside the config directory
const FileName = "config.yaml"

const (
	defaultLogLevel      = "info"
	defaultLaunchGrace   = 5  // seconds
	defaultHookTimeout   = 60 // seconds
	defaultWatchInterval = 1000
)

// Config holds global application settings
type Config struct {
	SteamDir        string            `yaml:"steam_dir,omitempty"`
	DefaultGame     string            `yaml:"default_game,omitempty"`
	ActiveProfiles  map[string]string `yaml:"active_profiles,omitempty"` // game ID -> profile name
	LogLevel        string            `yaml:"log_level"`
	Keybindings     string            `yaml:"keybindings"` // "vim" or "standard"
	LaunchGraceSec  int               `yaml:"launch_grace"`
	HookTimeoutSec  int               `yaml:"hook_timeout"`
	WatchIntervalMS int               `yaml:"watch_interval"`
	SteamExtraPaths []string          `yaml:"steam_extra_paths,omitempty"`
}

// Default returns a Config with every default applied
func Default() *Config {
	return &Config{
		ActiveProfiles:  make(map[string]string),
		LogLevel:        defaultLogLevel,
		Keybindings:     "vim",
		LaunchGraceSec:  defaultLaunchGrace,
		HookTimeoutSec:  defaultHookTimeout,
		WatchIntervalMS: defaultWatchInterval,
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/lml
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultDataDir returns $XDG_DATA_HOME/lml
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads configuration from the given directory
func Load(files fsys.FS, configDir string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(configDir, FileName)
	data, err := files.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil // Return defaults
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(files fsys.FS, configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := files.Mkdirs(configDir); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, FileName)
	if err := files.WriteFile(configPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// LaunchGrace is how long a launcher process may run before it counts as started
func (c *Config) LaunchGrace() time.Duration {
	return time.Duration(c.LaunchGraceSec) * time.Second
}

// HookTimeout bounds each launch hook
func (c *Config) HookTimeout() time.Duration {
	return time.Duration(c.HookTimeoutSec) * time.Second
}

// WatchInterval is the log watcher polling interval
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalMS) * time.Millisecond
}

// ActiveProfile returns the active profile name for gameID, or ""
func (c *Config) ActiveProfile(gameID string) string {
	return c.ActiveProfiles[gameID]
}

// SetActiveProfile records name as the active profile of gameID; "" clears it
func (c *Config) SetActiveProfile(gameID, name string) {
	if c.ActiveProfiles == nil {
		c.ActiveProfiles = make(map[string]string)
	}
	if name == "" {
		delete(c.ActiveProfiles, gameID)
		return
	}
	c.ActiveProfiles[gameID] = name
}

func (c *Config) validate() error {
	if c.LaunchGraceSec < 0 {
		return fmt.Errorf("%w: launch_grace must not be negative", domain.ErrInvalidConfig)
	}
	if c.HookTimeoutSec < 0 {
		return fmt.Errorf("%w: hook_timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.WatchIntervalMS < 0 {
		return fmt.Errorf("%w: watch_interval must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ActiveProfiles == nil {
		c.ActiveProfiles = make(map[string]string)
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Keybindings == "" {
		c.Keybindings = "vim"
	}
	if c.LaunchGraceSec == 0 {
		c.LaunchGraceSec = defaultLaunchGrace
	}
	if c.HookTimeoutSec == 0 {
		c.HookTimeoutSec = defaultHookTimeout
	}
	if c.WatchIntervalMS == 0 {
		c.WatchIntervalMS = defaultWatchInterval
	}
}
