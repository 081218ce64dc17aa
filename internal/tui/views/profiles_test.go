package views_test

import (
	"testing"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfiles() (*domain.Game, []*domain.Profile) {
	game := &domain.Game{ID: "lethal-company", Name: "Lethal Company"}
	profiles := []*domain.Profile{
		{Name: "Default", GameID: game.ID, Path: "/data/profiles/lethal-company/Default", IsActive: true},
		{Name: "Chaos", GameID: game.ID, Path: "/data/profiles/lethal-company/Chaos"},
	}
	return game, profiles
}

func TestProfiles_InitialState(t *testing.T) {
	game, profiles := testProfiles()

	model := views.NewProfiles(game, profiles)

	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, 2, model.ProfileCount())
	assert.Contains(t, model.View(), "[active]")
}

func TestProfiles_Navigate(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated := newModel.(views.Profiles)

	assert.Equal(t, 1, updated.Selected())
}

func TestProfiles_SwitchProfile(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	switchMsg, ok := cmd().(views.SwitchProfileMsg)
	require.True(t, ok)
	assert.Equal(t, "Chaos", switchMsg.Profile.Name)
}

func TestProfiles_SwitchToActiveIsNoop(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestProfiles_CreateNew(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	updated := newModel.(views.Profiles)
	require.True(t, updated.IsCreating())
	assert.True(t, updated.Capturing())

	for _, r := range "Speedrun" {
		newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	newModel, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, newModel.(views.Profiles).IsCreating())
	require.NotNil(t, cmd)
	createMsg, ok := cmd().(views.CreateProfileMsg)
	require.True(t, ok)
	assert.Equal(t, "Speedrun", createMsg.Name)
}

func TestProfiles_CreateCancel(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	newModel, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, newModel.(views.Profiles).IsCreating())
	assert.Nil(t, cmd)
}

func TestProfiles_Delete(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyDelete})

	require.NotNil(t, cmd)
	deleteMsg, ok := cmd().(views.DeleteProfileMsg)
	require.True(t, ok)
	assert.Equal(t, "Chaos", deleteMsg.Profile.Name)
}

func TestProfiles_DeleteActiveRefused(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Nil(t, cmd)
}

func TestProfiles_SetProfilesClampsCursor(t *testing.T) {
	game, profiles := testProfiles()
	model := views.NewProfiles(game, profiles)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated := newModel.(views.Profiles).SetProfiles(profiles[:1])

	assert.Equal(t, 0, updated.Selected())
	assert.Equal(t, 1, updated.ProfileCount())
}

func TestProfiles_EmptyList(t *testing.T) {
	game := &domain.Game{ID: "lethal-company", Name: "Lethal Company"}
	model := views.NewProfiles(game, nil)

	view := model.View()
	assert.Contains(t, view, "No profiles")
	assert.Contains(t, view, "Press 'n'")
}
