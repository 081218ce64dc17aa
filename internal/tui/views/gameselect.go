package views

import (
	"fmt"
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// GameSelectedMsg is sent when a game is picked from the list
type GameSelectedMsg struct {
	Game *domain.Game
}

// GameSelect lists the catalog games
type GameSelect struct {
	games    []*domain.Game
	selected int
	width    int
	height   int
}

// NewGameSelect creates the game list
func NewGameSelect(games []*domain.Game) GameSelect {
	return GameSelect{games: games, width: 80, height: 24}
}

// Selected returns the cursor position
func (g GameSelect) Selected() int {
	return g.selected
}

// SelectedGame returns the game under the cursor, or nil for an empty list
func (g GameSelect) SelectedGame() *domain.Game {
	if g.selected >= len(g.games) {
		return nil
	}
	return g.games[g.selected]
}

// Init implements tea.Model
func (g GameSelect) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (g GameSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if len(g.games) == 0 {
			return g, nil
		}
		switch msg.Type {
		case tea.KeyUp:
			g.selected = wrapIndex(g.selected, -1, len(g.games))
		case tea.KeyDown:
			g.selected = wrapIndex(g.selected, 1, len(g.games))
		case tea.KeyHome:
			g.selected = 0
		case tea.KeyEnd:
			g.selected = len(g.games) - 1
		case tea.KeyEnter:
			game := g.games[g.selected]
			return g, func() tea.Msg { return GameSelectedMsg{Game: game} }
		}

	case tea.WindowSizeMsg:
		g.width, g.height = msg.Width, msg.Height
	}
	return g, nil
}

// View implements tea.Model
func (g GameSelect) View() string {
	if len(g.games) == 0 {
		return mutedStyle.Render(emptyCatalogHelp)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a Game") + "\n\n")

	for i, game := range g.games {
		b.WriteString(listRow(game.Name, i == g.selected))
		if i != g.selected {
			continue
		}
		details := []string{
			"ID: " + game.ID,
			"Mod loader: " + game.ModLoader.String(),
		}
		if p, err := game.ActivePlatform(); err == nil {
			details = append(details, fmt.Sprintf("Platform: %s %s", p.Store, p.StoreIdentifier))
		}
		for _, d := range details {
			b.WriteString(detailStyle.Render(d) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: navigate  enter: select  m/v: launch"))
	return b.String()
}

const emptyCatalogHelp = `No games configured.

Add games to ~/.config/lml/games.yaml, or import a file with:
  lml game import /path/to/games.yaml

Example:
  games:
    my-game:
      name: My Game
      mod_loader: bepinex
      platforms:
        - store: steam
          id: "123456"
`
