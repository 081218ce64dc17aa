package views

import (
	"fmt"
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/core"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LaunchRequestMsg asks the app to start the selected game
type LaunchRequestMsg struct {
	Mode domain.LaunchMode
}

// LaunchFinishedMsg carries the outcome of a launch
type LaunchFinishedMsg struct {
	Record *domain.LaunchRecord
	Err    error
}

// Launch shows a game's launch readiness and starts it
type Launch struct {
	game         *domain.Game
	status       *core.GameStatus
	spinner      spinner.Model
	launching    bool
	mode         domain.LaunchMode
	logAvailable bool
	lastRecord   *domain.LaunchRecord
	lastErr      *domain.LaunchError
	width        int
	height       int
}

// NewLaunch creates the launch view for a game
func NewLaunch(game *domain.Game, status *core.GameStatus) Launch {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	l := Launch{
		game:    game,
		spinner: s,
		width:   80,
		height:  24,
	}
	return l.SetStatus(status)
}

// SetStatus replaces the displayed status
func (l Launch) SetStatus(status *core.GameStatus) Launch {
	l.status = status
	if status != nil {
		l.logAvailable = status.LogAvailable
		if l.lastRecord == nil {
			l.lastRecord = status.LastLaunch
		}
	}
	return l
}

// SetLogAvailable updates the log indicator
func (l Launch) SetLogAvailable(available bool) Launch {
	l.logAvailable = available
	return l
}

// LogAvailable reports the log indicator state
func (l Launch) LogAvailable() bool {
	return l.logAvailable
}

// Launching reports whether a launch is in flight
func (l Launch) Launching() bool {
	return l.launching
}

// Start marks a launch as in flight and returns the spinner tick
func (l Launch) Start(mode domain.LaunchMode) (Launch, tea.Cmd) {
	l.launching = true
	l.mode = mode
	l.lastErr = nil
	return l, l.spinner.Tick
}

// Finished records the outcome of the launch in flight
func (l Launch) Finished(rec *domain.LaunchRecord, err error) Launch {
	l.launching = false
	if rec != nil {
		l.lastRecord = rec
	}
	l.lastErr = domain.AsLaunchError(err)
	return l
}

// Init implements tea.Model
func (l Launch) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l Launch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if l.launching || l.game == nil {
			return l, nil
		}
		switch msg.String() {
		case "m":
			return l, request(domain.LaunchModded)
		case "v":
			return l, request(domain.LaunchVanilla)
		}

	case spinner.TickMsg:
		if !l.launching {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
	}

	return l, nil
}

func request(mode domain.LaunchMode) tea.Cmd {
	return func() tea.Msg {
		return LaunchRequestMsg{Mode: mode}
	}
}

// View implements tea.Model
func (l Launch) View() string {
	if l.game == nil {
		return "Launch\n\nSelect a game first."
	}

	labelStyle := mutedStyle.Width(14)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Launch %s", l.game.Name)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	flag := func(on bool, yes, no string) string {
		if on {
			return okStyle.Render(yes)
		}
		return warnStyle.Render(no)
	}

	row("Mod loader", l.game.ModLoader.String())
	if st := l.status; st != nil {
		if platform, err := l.game.ActivePlatform(); err == nil {
			row("Platform", platform.Store.String())
		}
		if st.InstallPath != "" {
			row("Install", st.InstallPath)
		}
		if st.SteamDir != "" {
			proton := "native"
			if st.Proton {
				proton = "proton"
				if st.ProtonReason != "" {
					proton += " (" + st.ProtonReason + ")"
				}
			}
			row("Runtime", proton)
			if st.Proton {
				row("winhttp", flag(st.WinHTTPOverride, "native,builtin", "not set (patched on modded launch)"))
			}
		}
		if st.Profile != nil {
			row("Profile", st.Profile.Name)
		} else {
			row("Profile", warnStyle.Render("none active"))
		}
		if st.LogPath != "" {
			row("Log", flag(l.logAvailable, "available", "not written yet"))
		}
		for _, p := range st.Problems {
			b.WriteString(warnStyle.Render("! "+p) + "\n")
		}
	}

	if rec := l.lastRecord; rec != nil {
		when := rec.StartedAt.Format("2006-01-02 15:04")
		result := okStyle.Render("ok")
		if !rec.Succeeded() {
			result = errStyle.Render("failed")
		}
		row("Last launch", fmt.Sprintf("%s %s %s", when, rec.Mode, result))
	}

	b.WriteString("\n")
	switch {
	case l.launching:
		b.WriteString(fmt.Sprintf("%s Launching (%s)...\n", l.spinner.View(), l.mode))
	case l.lastErr != nil:
		b.WriteString(errStyle.Render(l.lastErr.Title) + "\n")
		if l.lastErr.Detail != "" {
			b.WriteString(l.lastErr.Detail + "\n")
		}
		if l.lastErr.Hint != "" {
			b.WriteString(warnStyle.Render(l.lastErr.Hint) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("m: launch modded  v: launch vanilla"))
	return b.String()
}
