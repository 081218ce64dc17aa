// Package catalog holds the games lml can launch. The built-in list is embedded
// in the binary; entries from the user's games.yaml are merged over it.
package catalog

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/storage/config"
)

//go:embed data/games.yaml
var defaultGamesFS embed.FS

const defaultGamesPath = "data/games.yaml"

// Catalog is a registry of games keyed by ID
type Catalog struct {
	mu    sync.RWMutex
	games map[string]*domain.Game
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		games: make(map[string]*domain.Game),
	}
}

// Register adds a game. Registering an ID twice is an error; use Set to override.
func (c *Catalog) Register(game *domain.Game) error {
	if game == nil || game.ID == "" {
		return fmt.Errorf("%w: game without ID", domain.ErrInvalidConfig)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.games[game.ID]; exists {
		return fmt.Errorf("game already registered: %s", game.ID)
	}
	c.games[game.ID] = game
	return nil
}

// Set adds or replaces a game
func (c *Catalog) Set(game *domain.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.games[game.ID] = game
}

// Get retrieves a game by ID
func (c *Catalog) Get(id string) (*domain.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	game, ok := c.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, id)
	}
	return game, nil
}

// List returns all games sorted by ID
func (c *Catalog) List() []*domain.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()

	games := make([]*domain.Game, 0, len(c.games))
	for _, g := range c.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games
}

// Games returns copies of all games sorted by ID, for store detection
func (c *Catalog) Games() []domain.Game {
	list := c.List()
	games := make([]domain.Game, len(list))
	for i, g := range list {
		games[i] = *g
	}
	return games
}

// Len returns the number of games
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}

// Builtin returns a catalog of the embedded games only
func Builtin() (*Catalog, error) {
	data, err := defaultGamesFS.ReadFile(defaultGamesPath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded games: %w", err)
	}
	games, err := config.ParseGames(data)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded games: %w", err)
	}

	c := New()
	for _, g := range games {
		if err := c.Register(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load returns the embedded games with configDir/games.yaml merged over them.
// A user entry with the same ID replaces the built-in one.
func Load(files fsys.FS, configDir string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}

	user, err := config.LoadGames(files, configDir)
	if err != nil {
		return nil, err
	}
	for _, g := range user {
		c.Set(g)
	}
	return c, nil
}
