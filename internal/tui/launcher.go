package tui

import (
	"context"

	"github.com/DonovanMods/linux-mod-launcher/internal/core"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/logwatch"
)

// Launcher is what the TUI needs from the core service
type Launcher interface {
	ListGames() []*domain.Game
	ListProfiles(gameID string) ([]*domain.Profile, error)
	CreateProfile(gameID, name string) error
	DeleteProfile(gameID, name string) error
	ActivateProfile(gameID, name string) error
	Status(gameID string) (*core.GameStatus, error)
	LaunchSettings(gameID string) (*domain.LaunchSettings, error)
	SetLaunchParameters(gameID, params string) error
	Launch(ctx context.Context, gameID string, mode domain.LaunchMode) (*domain.LaunchRecord, error)
	NewLogWatcher(gameID string) (*logwatch.Watcher, error)
	SaveKeybindings(mode string) error
}

type serviceLauncher struct {
	*core.Service
}

// FromService adapts the core service to the Launcher interface
func FromService(svc *core.Service) Launcher {
	return serviceLauncher{Service: svc}
}

func (s serviceLauncher) ListProfiles(gameID string) ([]*domain.Profile, error) {
	return s.Profiles().List(gameID)
}

func (s serviceLauncher) CreateProfile(gameID, name string) error {
	_, err := s.Profiles().Create(gameID, name)
	return err
}

func (s serviceLauncher) DeleteProfile(gameID, name string) error {
	return s.Profiles().Delete(gameID, name)
}

func (s serviceLauncher) ActivateProfile(gameID, name string) error {
	return s.Profiles().Activate(gameID, name)
}

func (s serviceLauncher) SaveKeybindings(mode string) error {
	s.Config().Keybindings = mode
	return s.SaveConfig()
}
