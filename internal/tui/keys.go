package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const modeVim = "vim"

// KeyMap holds the bindings of one keybinding mode. Arrow keys work in every
// mode; vim mode adds j/k/g/G on top.
type KeyMap struct {
	mode string

	Up      key.Binding
	Down    key.Binding
	Home    key.Binding
	End     key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Delete  key.Binding
	Modded  key.Binding
	Vanilla key.Binding
	Create  key.Binding
	Edit    key.Binding
	Views   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// NewKeyMap builds the keymap for mode, defaulting to vim
func NewKeyMap(mode string) *KeyMap {
	if mode == "" {
		mode = modeVim
	}
	vim := mode == modeVim

	nav := func(arrow, arrowHelp, vimKey, desc string) key.Binding {
		if vim {
			return key.NewBinding(key.WithKeys(arrow, vimKey), key.WithHelp(vimKey, desc))
		}
		return key.NewBinding(key.WithKeys(arrow), key.WithHelp(arrowHelp, desc))
	}

	deleteHelp := "Delete"
	if vim {
		deleteHelp = "d"
	}

	return &KeyMap{
		mode:    mode,
		Up:      nav("up", "↑", "k", "Move up"),
		Down:    nav("down", "↓", "j", "Move down"),
		Home:    nav("home", "Home", "g", "Go to first item"),
		End:     nav("end", "End", "G", "Go to last item"),
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "Select/Confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Back/Cancel")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp(deleteHelp, "Delete profile")),
		Modded:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Launch with mods")),
		Vanilla: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "Launch vanilla")),
		Create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "New profile")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Edit launch parameters")),
		Views:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Games, Launch, Profiles, Settings")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
}

// Mode returns the keybinding mode
func (k *KeyMap) Mode() string {
	return k.mode
}

func (k *KeyMap) IsUp(msg tea.KeyMsg) bool      { return key.Matches(msg, k.Up) }
func (k *KeyMap) IsDown(msg tea.KeyMsg) bool    { return key.Matches(msg, k.Down) }
func (k *KeyMap) IsHome(msg tea.KeyMsg) bool    { return key.Matches(msg, k.Home) }
func (k *KeyMap) IsEnd(msg tea.KeyMsg) bool     { return key.Matches(msg, k.End) }
func (k *KeyMap) IsConfirm(msg tea.KeyMsg) bool { return key.Matches(msg, k.Confirm) }
func (k *KeyMap) IsCancel(msg tea.KeyMsg) bool  { return key.Matches(msg, k.Cancel) }
func (k *KeyMap) IsDelete(msg tea.KeyMsg) bool  { return key.Matches(msg, k.Delete) }
func (k *KeyMap) IsModded(msg tea.KeyMsg) bool  { return key.Matches(msg, k.Modded) }
func (k *KeyMap) IsVanilla(msg tea.KeyMsg) bool { return key.Matches(msg, k.Vanilla) }
func (k *KeyMap) IsHelp(msg tea.KeyMsg) bool    { return key.Matches(msg, k.Help) }
func (k *KeyMap) IsQuit(msg tea.KeyMsg) bool    { return key.Matches(msg, k.Quit) }

// NavigationHelp is the one-line footer hint
func (k *KeyMap) NavigationHelp() string {
	if k.mode == modeVim {
		return "j/k: navigate"
	}
	return "↑/↓: navigate"
}

// FullHelp renders every binding grouped for the help overlay
func (k *KeyMap) FullHelp() string {
	groups := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{k.Up, k.Down, k.Home, k.End, k.Views}},
		{"Actions", []key.Binding{k.Confirm, k.Modded, k.Vanilla, k.Create, k.Delete, k.Edit, k.Help, k.Quit}},
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(g.name + ":\n")
		for _, binding := range g.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-7s %s\n", h.Key, h.Desc)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
