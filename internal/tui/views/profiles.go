package views

import (
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SwitchProfileMsg asks to make Profile the active one
type SwitchProfileMsg struct {
	Profile *domain.Profile
}

// DeleteProfileMsg asks to delete Profile and its files
type DeleteProfileMsg struct {
	Profile *domain.Profile
}

// CreateProfileMsg asks to create an empty profile
type CreateProfileMsg struct {
	Name string
}

// Profiles lists a game's profiles and creates new ones
type Profiles struct {
	game      *domain.Game
	profiles  []*domain.Profile
	selected  int
	creating  bool
	nameInput textinput.Model
	width     int
	height    int
}

// NewProfiles creates the profile list of game
func NewProfiles(game *domain.Game, profiles []*domain.Profile) Profiles {
	ti := textinput.New()
	ti.Placeholder = "profile name"
	ti.CharLimit = 64
	ti.Width = 30

	return Profiles{game: game, profiles: profiles, nameInput: ti, width: 80, height: 24}
}

// SetProfiles replaces the listed profiles, keeping the cursor in range
func (p Profiles) SetProfiles(profiles []*domain.Profile) Profiles {
	p.profiles = profiles
	if p.selected >= len(profiles) {
		p.selected = max(len(profiles)-1, 0)
	}
	return p
}

// Selected returns the cursor position
func (p Profiles) Selected() int {
	return p.selected
}

// ProfileCount returns the number of listed profiles
func (p Profiles) ProfileCount() int {
	return len(p.profiles)
}

// IsCreating reports whether the name prompt is open
func (p Profiles) IsCreating() bool {
	return p.creating
}

// Capturing reports whether key presses go to the name input
func (p Profiles) Capturing() bool {
	return p.creating
}

// SelectedProfile returns the profile under the cursor
func (p Profiles) SelectedProfile() *domain.Profile {
	if p.selected >= len(p.profiles) {
		return nil
	}
	return p.profiles[p.selected]
}

// Init implements tea.Model
func (p Profiles) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p Profiles) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.creating {
			return p.updatePrompt(msg)
		}
		return p.updateList(msg)

	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	}
	return p, nil
}

func (p Profiles) closePrompt() Profiles {
	p.creating = false
	p.nameInput.Reset()
	p.nameInput.Blur()
	return p
}

func (p Profiles) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return p.closePrompt(), nil

	case tea.KeyEnter:
		name := strings.TrimSpace(p.nameInput.Value())
		if name == "" {
			return p, nil
		}
		return p.closePrompt(), func() tea.Msg { return CreateProfileMsg{Name: name} }
	}

	var cmd tea.Cmd
	p.nameInput, cmd = p.nameInput.Update(msg)
	return p, cmd
}

func (p Profiles) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(p.profiles)
	switch msg.Type {
	case tea.KeyUp:
		p.selected = wrapIndex(p.selected, -1, n)
		return p, nil
	case tea.KeyDown:
		p.selected = wrapIndex(p.selected, 1, n)
		return p, nil
	case tea.KeyHome:
		p.selected = 0
		return p, nil
	case tea.KeyEnd:
		p.selected = max(n-1, 0)
		return p, nil
	case tea.KeyEnter, tea.KeyDelete:
		// The active profile can be neither re-selected nor deleted from here
		profile := p.SelectedProfile()
		if profile == nil || profile.IsActive {
			return p, nil
		}
		if msg.Type == tea.KeyEnter {
			return p, func() tea.Msg { return SwitchProfileMsg{Profile: profile} }
		}
		return p, func() tea.Msg { return DeleteProfileMsg{Profile: profile} }
	}

	if msg.String() == "n" && p.game != nil {
		p.creating = true
		return p, p.nameInput.Focus()
	}
	return p, nil
}

// View implements tea.Model
func (p Profiles) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profiles") + "\n")

	gameName := "No game selected"
	if p.game != nil {
		gameName = p.game.Name
	}
	b.WriteString(mutedStyle.Render("Game: "+gameName) + "\n\n")

	switch {
	case p.creating:
		b.WriteString("New profile name: " + p.nameInput.View() + "\n\n")
		b.WriteString(mutedStyle.Render("enter: create  esc: cancel"))
		return b.String()

	case len(p.profiles) == 0:
		b.WriteString(itemStyle.Render("No profiles configured.") + "\n\n")
		if p.game != nil {
			b.WriteString(mutedStyle.Render("Press 'n' to create a new profile.") + "\n")
		}
		return b.String()
	}

	for i, profile := range p.profiles {
		text := profile.Name
		if profile.IsActive {
			text += okStyle.Render(" [active]")
		}
		b.WriteString(listRow(text, i == p.selected))
		if i == p.selected {
			b.WriteString(detailStyle.Render(profile.Path) + "\n\n")
		}
	}

	b.WriteString(helpStyle.Render("enter: activate  n: new  d: delete"))
	return b.String()
}
