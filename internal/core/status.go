package core

import (
	"errors"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/logwatch"
	"github.com/DonovanMods/linux-mod-launcher/internal/winereg"
)

// GameStatus describes what a launch of a game would find on this machine
type GameStatus struct {
	Game *domain.Game

	SteamDir     string // Empty when Steam is not found or the game is not a Steam game
	Installed    bool
	InstallPath  string
	Proton       bool
	ProtonReason string
	// WinHTTPOverride is true when the prefix already loads the mod loader's winhttp.dll
	WinHTTPOverride bool

	Profile      *domain.Profile // nil when no profile is active
	LogPath      string
	LogAvailable bool

	LastLaunch *domain.LaunchRecord

	// Problems lists what would stop or degrade a launch, for display
	Problems []string
}

// Status inspects the game's platform, profile and history without changing anything
func (s *Service) Status(gameID string) (*GameStatus, error) {
	game, err := s.catalog.Get(gameID)
	if err != nil {
		return nil, err
	}
	st := &GameStatus{Game: game}

	platform, err := game.ActivePlatform()
	if err != nil {
		st.Problems = append(st.Problems, err.Error())
	} else {
		switch platform.Store {
		case domain.StoreSteam:
			s.steamStatus(st, platform.StoreIdentifier)
		case domain.StoreDirect:
			st.InstallPath = platform.InstallPath
			ok, err := s.files.Exists(platform.StoreIdentifier)
			st.Installed = err == nil && ok
			if !st.Installed {
				st.Problems = append(st.Problems, "executable not found: "+platform.StoreIdentifier)
			}
		}
	}

	profile, err := s.profiles.Active(gameID)
	if err != nil {
		st.Problems = append(st.Problems, err.Error())
	} else {
		st.Profile = profile
		if path, ok := logwatch.LogPath(game, profile); ok {
			st.LogPath = path
			exists, err := s.files.Exists(path)
			st.LogAvailable = err == nil && exists
		}
	}

	if launches, err := s.RecentLaunches(gameID, 1); err == nil && len(launches) > 0 {
		st.LastLaunch = &launches[0]
	}

	return st, nil
}

func (s *Service) steamStatus(st *GameStatus, appID string) {
	resolver, err := s.Steam()
	if err != nil {
		st.Problems = append(st.Problems, err.Error())
		return
	}

	dir, err := resolver.SteamDirectory()
	if err != nil {
		st.Problems = append(st.Problems, err.Error())
		return
	}
	st.SteamDir = dir

	app, err := resolver.FindApp(appID)
	if err != nil {
		st.Problems = append(st.Problems, err.Error())
		return
	}
	st.Installed = true
	st.InstallPath = app.InstallPath

	proton, err := resolver.ProtonStatus(appID)
	if err != nil {
		st.Problems = append(st.Problems, "proton status: "+err.Error())
		return
	}
	st.Proton = proton.Proton
	st.ProtonReason = proton.Reason
	if !proton.Proton {
		return
	}

	regPath, err := resolver.UserRegPath(appID)
	if err != nil {
		st.Problems = append(st.Problems, err.Error())
		return
	}
	data, err := s.files.ReadFile(regPath)
	if err != nil {
		// No user.reg yet: Proton creates it on the first run
		return
	}
	value, ok, err := winereg.Lookup(string(data), winereg.DllOverridesSection, winereg.WinHTTPKey)
	if err != nil && !errors.Is(err, winereg.ErrSectionNotFound) {
		st.Problems = append(st.Problems, err.Error())
		return
	}
	st.WinHTTPOverride = ok && value == winereg.NativeBuiltin
}
