package tui

import (
	"context"
	"fmt"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/logging"
	"github.com/DonovanMods/linux-mod-launcher/internal/logwatch"
	"github.com/DonovanMods/linux-mod-launcher/internal/tui/views"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewType represents different screens in the TUI
type ViewType int

const (
	ViewGameSelect ViewType = iota
	ViewLaunch
	ViewProfiles
	ViewSettings
)

// NavigateMsg is sent to change views
type NavigateMsg struct {
	View ViewType
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// LogStatusMsg reports a change of the selected game's log availability
type LogStatusMsg struct {
	GameID string
	Exists bool
}

// App is the main TUI application model
type App struct {
	launcher    Launcher
	keys        *KeyMap
	currentView ViewType
	width       int
	height      int
	err         error
	showHelp    bool

	game    *domain.Game
	watcher *logwatch.Watcher

	// Sub-models for each view
	gameSelect views.GameSelect
	launch     views.Launch
	profiles   views.Profiles
	settings   views.Settings
}

// NewApp creates a new TUI application
func NewApp(launcher Launcher, keybindings string) App {
	var games []*domain.Game
	if launcher != nil {
		games = launcher.ListGames()
	}
	keys := NewKeyMap(keybindings)

	return App{
		launcher:    launcher,
		keys:        keys,
		currentView: ViewGameSelect,
		width:       80,
		height:      24,
		gameSelect:  views.NewGameSelect(games),
		launch:      views.NewLaunch(nil, nil),
		profiles:    views.NewProfiles(nil, nil),
		settings:    views.NewSettings(views.SettingsData{Keybindings: keys.Mode()}),
	}
}

// CurrentView returns the current view type
func (a App) CurrentView() ViewType {
	return a.currentView
}

// SelectedGame returns the game the other views operate on
func (a App) SelectedGame() *domain.Game {
	return a.game
}

// Keys returns the active keymap
func (a App) Keys() *KeyMap {
	return a.keys
}

// Close stops the log watcher of the selected game
func (a App) Close() {
	if a.watcher != nil {
		a.watcher.Disconnect()
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case NavigateMsg:
		a.currentView = msg.View
		return a, nil

	case ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.GameSelectedMsg:
		return a.selectGame(msg.Game)

	case views.LaunchRequestMsg:
		return a.startLaunch(msg.Mode)

	case views.LaunchFinishedMsg:
		a.launch = a.launch.Finished(msg.Record, msg.Err)
		a.refreshStatus()
		return a, nil

	case spinner.TickMsg:
		model, cmd := a.launch.Update(msg)
		a.launch = model.(views.Launch)
		return a, cmd

	case LogStatusMsg:
		if a.game == nil || msg.GameID != a.game.ID {
			return a, nil
		}
		a.launch = a.launch.SetLogAvailable(msg.Exists)
		return a, waitForLog(msg.GameID, a.watcher)

	case views.CreateProfileMsg, views.SwitchProfileMsg, views.DeleteProfileMsg:
		if a.game == nil || a.launcher == nil {
			return a, nil
		}
		return a.handleProfileMsg(msg)

	case views.SettingsChangedMsg:
		return a.applySettings(msg.Settings)
	}

	// Delegate to current view's model
	return a.updateCurrentView(msg)
}

func (a App) handleProfileMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case views.CreateProfileMsg:
		return a.profileAction(a.launcher.CreateProfile(a.game.ID, msg.Name))

	case views.SwitchProfileMsg:
		return a.profileAction(a.launcher.ActivateProfile(a.game.ID, msg.Profile.Name))

	case views.DeleteProfileMsg:
		return a.profileAction(a.launcher.DeleteProfile(a.game.ID, msg.Profile.Name))
	}
	return a, nil
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.capturing() {
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a.updateCurrentView(msg)
	}

	// Global keybindings
	switch {
	case a.keys.IsQuit(msg):
		return a, tea.Quit

	case a.keys.IsHelp(msg):
		a.showHelp = !a.showHelp
		return a, nil

	case a.showHelp && a.keys.IsCancel(msg):
		a.showHelp = false
		return a, nil

	case a.game != nil && a.keys.IsModded(msg):
		return a.startLaunch(domain.LaunchModded)

	case a.game != nil && a.keys.IsVanilla(msg):
		return a.startLaunch(domain.LaunchVanilla)
	}

	switch msg.String() {
	case "1":
		a.currentView = ViewGameSelect
		return a, nil
	case "2":
		a.currentView = ViewLaunch
		return a, nil
	case "3":
		a.currentView = ViewProfiles
		return a, nil
	case "4":
		a.currentView = ViewSettings
		return a, nil
	}

	// Delegate to current view
	return a.updateCurrentView(a.translate(msg))
}

// translate maps the keymap's navigation keys onto the key types the views handle
func (a App) translate(msg tea.KeyMsg) tea.KeyMsg {
	switch {
	case a.keys.IsUp(msg):
		return tea.KeyMsg{Type: tea.KeyUp}
	case a.keys.IsDown(msg):
		return tea.KeyMsg{Type: tea.KeyDown}
	case a.keys.IsHome(msg):
		return tea.KeyMsg{Type: tea.KeyHome}
	case a.keys.IsEnd(msg):
		return tea.KeyMsg{Type: tea.KeyEnd}
	case a.keys.IsDelete(msg):
		return tea.KeyMsg{Type: tea.KeyDelete}
	case a.keys.IsConfirm(msg):
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return msg
}

func (a App) capturing() bool {
	switch a.currentView {
	case ViewProfiles:
		return a.profiles.Capturing()
	case ViewSettings:
		return a.settings.Capturing()
	}
	return false
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		model tea.Model
		cmd   tea.Cmd
	)

	switch a.currentView {
	case ViewGameSelect:
		model, cmd = a.gameSelect.Update(msg)
		a.gameSelect = model.(views.GameSelect)
	case ViewLaunch:
		model, cmd = a.launch.Update(msg)
		a.launch = model.(views.Launch)
	case ViewProfiles:
		model, cmd = a.profiles.Update(msg)
		a.profiles = model.(views.Profiles)
	case ViewSettings:
		model, cmd = a.settings.Update(msg)
		a.settings = model.(views.Settings)
	}

	return a, cmd
}

func (a App) selectGame(game *domain.Game) (tea.Model, tea.Cmd) {
	if game == nil || a.launcher == nil {
		return a, nil
	}
	a.err = nil
	if a.watcher != nil {
		a.watcher.Disconnect()
		a.watcher = nil
	}
	a.game = game

	profiles, err := a.launcher.ListProfiles(game.ID)
	if err != nil {
		a.err = err
	}
	a.profiles = views.NewProfiles(game, profiles)

	status, err := a.launcher.Status(game.ID)
	if err != nil {
		a.err = err
	}
	a.launch = views.NewLaunch(game, status)

	data := views.SettingsData{Keybindings: a.keys.Mode()}
	if settings, err := a.launcher.LaunchSettings(game.ID); err == nil {
		data.LaunchParameters = settings.LaunchParameters
	} else {
		a.err = err
	}
	a.settings = views.NewSettings(data)

	a.currentView = ViewLaunch

	w, err := a.launcher.NewLogWatcher(game.ID)
	if err != nil {
		logging.Logf(logging.SeverityWarn, "log watcher for %s: %v", game.ID, err)
		return a, nil
	}
	w.Start(context.Background())
	a.watcher = w
	a.launch = a.launch.SetLogAvailable(w.Exists())
	return a, waitForLog(game.ID, w)
}

// waitForLog blocks until the watcher reports a transition
func waitForLog(gameID string, w *logwatch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		exists, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return LogStatusMsg{GameID: gameID, Exists: exists}
	}
}

func (a App) startLaunch(mode domain.LaunchMode) (tea.Model, tea.Cmd) {
	if a.game == nil || a.launch.Launching() {
		return a, nil
	}
	a.currentView = ViewLaunch

	var tick tea.Cmd
	a.launch, tick = a.launch.Start(mode)

	launcher, gameID := a.launcher, a.game.ID
	run := func() tea.Msg {
		rec, err := launcher.Launch(context.Background(), gameID, mode)
		return views.LaunchFinishedMsg{Record: rec, Err: err}
	}
	return a, tea.Batch(tick, run)
}

func (a *App) refreshStatus() {
	if a.game == nil {
		return
	}
	status, err := a.launcher.Status(a.game.ID)
	if err != nil {
		a.err = err
		return
	}
	a.launch = a.launch.SetStatus(status)
}

func (a App) profileAction(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		a.err = err
		return a, nil
	}
	a.err = nil

	profiles, err := a.launcher.ListProfiles(a.game.ID)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.profiles = a.profiles.SetProfiles(profiles)
	a.refreshStatus()
	// The watcher resolves the active profile on every poll
	if a.watcher != nil {
		a.launch = a.launch.SetLogAvailable(a.watcher.Check())
	}
	return a, nil
}

func (a App) applySettings(data views.SettingsData) (tea.Model, tea.Cmd) {
	if data.Keybindings != a.keys.Mode() {
		a.keys = NewKeyMap(data.Keybindings)
		if a.launcher != nil {
			if err := a.launcher.SaveKeybindings(data.Keybindings); err != nil {
				a.err = err
				return a, nil
			}
		}
	}

	if a.game == nil || a.launcher == nil {
		return a, nil
	}
	current, err := a.launcher.LaunchSettings(a.game.ID)
	if err == nil && current.LaunchParameters == data.LaunchParameters {
		return a, nil
	}
	if err := a.launcher.SetLaunchParameters(a.game.ID, data.LaunchParameters); err != nil {
		a.err = err
	}
	return a, nil
}

// View implements tea.Model
func (a App) View() string {
	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	activeTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Header
	header := titleStyle.Render("lml - Linux Mod Launcher")
	if a.game != nil {
		header += tabStyle.Render("  " + a.game.Name)
	}

	// Tab bar
	tabs := []string{"[1]Games", "[2]Launch", "[3]Profiles", "[4]Settings"}
	tabBar := ""
	for i, tab := range tabs {
		if ViewType(i) == a.currentView {
			tabBar += activeTabStyle.Render(tab) + "  "
		} else {
			tabBar += tabStyle.Render(tab) + "  "
		}
	}

	// Content
	content := a.renderCurrentView()
	if a.showHelp {
		content = a.keys.FullHelp()
	}

	// Error display
	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		content += "\n\n" + errStyle.Render(fmt.Sprintf("Error: %v", a.err))
	}

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	footer := footerStyle.Render(a.keys.NavigationHelp() + "  q: quit  ?: help")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, tabBar, content, footer)
}

func (a App) renderCurrentView() string {
	switch a.currentView {
	case ViewGameSelect:
		return a.gameSelect.View()
	case ViewLaunch:
		return a.launch.View()
	case ViewProfiles:
		if a.game == nil {
			return "Profiles\n\nSelect a game first."
		}
		return a.profiles.View()
	case ViewSettings:
		return a.settings.View()
	default:
		return "Unknown view"
	}
}

// Run starts the TUI application
func Run(launcher Launcher, keybindings string) error {
	app := NewApp(launcher, keybindings)
	p := tea.NewProgram(app, tea.WithAltScreen())
	final, err := p.Run()
	if a, ok := final.(App); ok {
		a.Close()
	}
	return err
}
