package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// GamesFileName is the user game catalog inside the config directory
const GamesFileName = "games.yaml"

// PlatformConfig is the YAML representation of a platform
type PlatformConfig struct {
	Store       string `yaml:"store"`
	ID          string `yaml:"id"`
	InstallPath string `yaml:"install_path,omitempty"`
}

// GameConfig is the YAML representation of a game
type GameConfig struct {
	Name      string             `yaml:"name"`
	ModLoader string             `yaml:"mod_loader"`
	Platforms []PlatformConfig   `yaml:"platforms"`
	Hooks     domain.LaunchHooks `yaml:"hooks,omitempty"`
}

// GamesFile is the top-level games.yaml structure
type GamesFile struct {
	Games map[string]GameConfig `yaml:"games"`
}

// ParseGames decodes a games.yaml document
func ParseGames(data []byte) (map[string]*domain.Game, error) {
	var gamesFile GamesFile
	if err := yaml.Unmarshal(data, &gamesFile); err != nil {
		return nil, fmt.Errorf("parsing games: %w", err)
	}

	games := make(map[string]*domain.Game, len(gamesFile.Games))
	for id, cfg := range gamesFile.Games {
		game, err := cfg.toGame(id)
		if err != nil {
			return nil, err
		}
		games[id] = game
	}
	return games, nil
}

func (cfg GameConfig) toGame(id string) (*domain.Game, error) {
	game := &domain.Game{
		ID:        id,
		Name:      cfg.Name,
		ModLoader: domain.ParseModLoader(cfg.ModLoader),
		Hooks: domain.LaunchHooks{
			BeforeLaunch: expandHome(cfg.Hooks.BeforeLaunch),
			AfterLaunch:  expandHome(cfg.Hooks.AfterLaunch),
		},
	}
	if game.Name == "" {
		game.Name = id
	}

	for _, p := range cfg.Platforms {
		store, ok := domain.ParseStore(p.Store)
		if !ok {
			return nil, fmt.Errorf("%w: game %s: unknown store %q", domain.ErrInvalidConfig, id, p.Store)
		}
		game.Platforms = append(game.Platforms, domain.Platform{
			Store:           store,
			StoreIdentifier: expandHome(p.ID),
			InstallPath:     expandHome(p.InstallPath),
		})
	}
	return game, nil
}

func fromGame(game *domain.Game) GameConfig {
	cfg := GameConfig{
		Name:      game.Name,
		ModLoader: game.ModLoader.String(),
		Hooks:     game.Hooks,
	}
	for _, p := range game.Platforms {
		cfg.Platforms = append(cfg.Platforms, PlatformConfig{
			Store:       p.Store.String(),
			ID:          p.StoreIdentifier,
			InstallPath: p.InstallPath,
		})
	}
	return cfg
}

// LoadGames reads the user game catalog from the config directory
func LoadGames(files fsys.FS, configDir string) (map[string]*domain.Game, error) {
	gamesPath := filepath.Join(configDir, GamesFileName)
	data, err := files.ReadFile(gamesPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]*domain.Game), nil
		}
		return nil, fmt.Errorf("reading games.yaml: %w", err)
	}

	games, err := ParseGames(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gamesPath, err)
	}
	return games, nil
}

// SaveGame adds or updates a game in games.yaml
func SaveGame(files fsys.FS, configDir string, game *domain.Game) error {
	games, err := LoadGames(files, configDir)
	if err != nil {
		return err
	}

	games[game.ID] = game

	return saveGames(files, configDir, games)
}

// DeleteGame removes a game from games.yaml
func DeleteGame(files fsys.FS, configDir string, gameID string) error {
	games, err := LoadGames(files, configDir)
	if err != nil {
		return err
	}

	if _, exists := games[gameID]; !exists {
		return domain.ErrGameNotFound
	}

	delete(games, gameID)
	return saveGames(files, configDir, games)
}

// MarshalGames encodes games as a games.yaml document
func MarshalGames(games map[string]*domain.Game) ([]byte, error) {
	gamesFile := GamesFile{Games: make(map[string]GameConfig, len(games))}
	for id, game := range games {
		gamesFile.Games[id] = fromGame(game)
	}

	data, err := yaml.Marshal(&gamesFile)
	if err != nil {
		return nil, fmt.Errorf("marshaling games: %w", err)
	}
	return data, nil
}

func saveGames(files fsys.FS, configDir string, games map[string]*domain.Game) error {
	data, err := MarshalGames(games)
	if err != nil {
		return err
	}

	if err := files.Mkdirs(configDir); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	gamesPath := filepath.Join(configDir, GamesFileName)
	if err := files.WriteFile(gamesPath, data); err != nil {
		return fmt.Errorf("writing games.yaml: %w", err)
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}
