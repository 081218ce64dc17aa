package views_test

import (
	"testing"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeGames() []*domain.Game {
	return []*domain.Game{
		{ID: "valheim", Name: "Valheim"},
		{ID: "bonelab", Name: "BONELAB"},
		{ID: "rumble", Name: "RUMBLE"},
	}
}

func TestGameSelect_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyType
		want int
	}{
		{"initial", nil, 0},
		{"down", []tea.KeyType{tea.KeyDown}, 1},
		{"down then up", []tea.KeyType{tea.KeyDown, tea.KeyUp}, 0},
		{"up wraps to last", []tea.KeyType{tea.KeyUp}, 2},
		{"down wraps to first", []tea.KeyType{tea.KeyDown, tea.KeyDown, tea.KeyDown}, 0},
		{"end", []tea.KeyType{tea.KeyEnd}, 2},
		{"end then home", []tea.KeyType{tea.KeyEnd, tea.KeyHome}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var model tea.Model = views.NewGameSelect(threeGames())
			for _, k := range tt.keys {
				model, _ = model.Update(tea.KeyMsg{Type: k})
			}
			assert.Equal(t, tt.want, model.(views.GameSelect).Selected())
		})
	}
}

func TestGameSelect_EnterSelectsGame(t *testing.T) {
	model, _ := views.NewGameSelect(threeGames()).Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(views.GameSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "bonelab", msg.Game.ID)
}

func TestGameSelect_EmptyList(t *testing.T) {
	model := views.NewGameSelect(nil)
	assert.Nil(t, model.SelectedGame())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "No games configured")
}

func TestGameSelect_ShowsPlatform(t *testing.T) {
	games := []*domain.Game{{
		ID:        "valheim",
		Name:      "Valheim",
		ModLoader: domain.LoaderBepInEx,
		Platforms: []domain.Platform{{Store: domain.StoreSteam, StoreIdentifier: "892970"}},
	}}

	view := views.NewGameSelect(games).View()
	assert.Contains(t, view, "bepinex")
	assert.Contains(t, view, "steam 892970")
}
