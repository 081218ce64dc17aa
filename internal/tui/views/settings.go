package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SettingsData holds the current settings values
type SettingsData struct {
	LaunchParameters string // Per game; appended to every launch command
	Keybindings      string
}

// SettingsChangedMsg is sent when settings are modified
type SettingsChangedMsg struct {
	Settings SettingsData
}

const (
	itemLaunchParameters = iota
	itemKeybindings
)

// settingItem represents a single setting
type settingItem struct {
	name        string
	description string
	options     []string // nil for free text
	current     int
}

// Settings is the settings view
type Settings struct {
	settings SettingsData
	items    []settingItem
	selected int
	editing  bool
	input    textinput.Model
	width    int
	height   int
}

// NewSettings creates a new settings view
func NewSettings(settings SettingsData) Settings {
	keybindingsIdx := 0
	if settings.Keybindings == "standard" {
		keybindingsIdx = 1
	}

	items := []settingItem{
		{
			name:        "Launch parameters",
			description: "Extra arguments appended when launching this game",
		},
		{
			name:        "Keybindings",
			description: "Keyboard navigation style",
			options:     []string{"vim", "standard"},
			current:     keybindingsIdx,
		},
	}

	ti := textinput.New()
	ti.Placeholder = "-windowed -skipintro"
	ti.CharLimit = 256
	ti.Width = 50

	return Settings{
		settings: settings,
		items:    items,
		selected: 0,
		input:    ti,
		width:    80,
		height:   24,
	}
}

// Selected returns the currently selected setting index
func (s Settings) Selected() int {
	return s.selected
}

// CurrentSettings returns the current settings values
func (s Settings) CurrentSettings() SettingsData {
	return s.settings
}

// Capturing reports whether key presses go to the text input
func (s Settings) Capturing() bool {
	return s.editing
}

// Init implements tea.Model
func (s Settings) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.editing {
			return s.handleEditMode(msg)
		}
		return s.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil
	}

	return s, nil
}

func (s Settings) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		s.editing = false
		s.input.Blur()
		return s, nil

	case tea.KeyEnter:
		s.editing = false
		s.input.Blur()
		s.settings.LaunchParameters = s.input.Value()
		return s, s.emitChange()

	default:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
}

func (s Settings) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		s.selected--
		if s.selected < 0 {
			s.selected = len(s.items) - 1
		}
		return s, nil

	case tea.KeyDown:
		s.selected++
		if s.selected >= len(s.items) {
			s.selected = 0
		}
		return s, nil

	case tea.KeyEnter, tea.KeyRight:
		if s.selected == itemLaunchParameters {
			return s.startEditing()
		}
		return s.cycle(1)

	case tea.KeyLeft:
		if s.selected == itemLaunchParameters {
			return s, nil
		}
		return s.cycle(-1)
	}

	if msg.String() == "e" && s.selected == itemLaunchParameters {
		return s.startEditing()
	}
	return s, nil
}

func (s Settings) startEditing() (tea.Model, tea.Cmd) {
	s.editing = true
	s.input.SetValue(s.settings.LaunchParameters)
	s.input.CursorEnd()
	return s, s.input.Focus()
}

func (s Settings) cycle(step int) (tea.Model, tea.Cmd) {
	item := &s.items[s.selected]
	item.current = (item.current + step + len(item.options)) % len(item.options)
	s.settings.Keybindings = s.items[itemKeybindings].options[s.items[itemKeybindings].current]
	return s, s.emitChange()
}

func (s Settings) emitChange() tea.Cmd {
	settings := s.settings
	return func() tea.Msg {
		return SettingsChangedMsg{Settings: settings}
	}
}

// View implements tea.Model
func (s Settings) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")

	for i, item := range s.items {
		value := s.settings.LaunchParameters
		if item.options != nil {
			value = item.options[item.current]
		} else if value == "" {
			value = "(none)"
		}
		b.WriteString(listRow(item.name+": "+okStyle.Render(value), i == s.selected))
		b.WriteString(detailStyle.Render(item.description) + "\n")

		if i == s.selected {
			if item.options == nil && s.editing {
				b.WriteString("    " + s.input.View() + "\n")
			}
			if item.options != nil {
				b.WriteString("    Options:")
				for j, opt := range item.options {
					if j == item.current {
						b.WriteString(" " + selectedStyle.UnsetPadding().Render("["+opt+"]"))
					} else {
						b.WriteString(" " + mutedStyle.Render(opt))
					}
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	help := "↑/↓: navigate  ←/→ or enter: change value  e: edit"
	if s.editing {
		help = "enter: save  esc: cancel"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
