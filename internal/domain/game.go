package domain

// ModLoader identifies which mod loader a game uses
type ModLoader int

const (
	LoaderUnknown     ModLoader = iota
	LoaderBepInEx               // BepInEx (doorstop based)
	LoaderMelonLoader           // MelonLoader
)

func (l ModLoader) String() string {
	switch l {
	case LoaderBepInEx:
		return "bepinex"
	case LoaderMelonLoader:
		return "melonloader"
	default:
		return "unknown"
	}
}

// ParseModLoader converts a string to ModLoader
func ParseModLoader(s string) ModLoader {
	switch s {
	case "bepinex", "BepInEx":
		return LoaderBepInEx
	case "melonloader", "MelonLoader":
		return LoaderMelonLoader
	default:
		return LoaderUnknown
	}
}

// Store identifies how a game is started
type Store int

const (
	StoreSteam  Store = iota // Started through the Steam client
	StoreDirect              // Executable started directly (DRM-free installs)
)

func (s Store) String() string {
	switch s {
	case StoreSteam:
		return "steam"
	case StoreDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// ParseStore converts a string to Store. The second return is false for unknown stores.
func ParseStore(s string) (Store, bool) {
	switch s {
	case "steam":
		return StoreSteam, true
	case "direct":
		return StoreDirect, true
	default:
		return 0, false
	}
}

// Platform is one way a game can be obtained and launched
type Platform struct {
	Store           Store
	StoreIdentifier string // Steam App ID, or executable path for direct installs
	InstallPath     string // Optional: game install directory
}

// Game represents a supported title
type Game struct {
	ID        string     // Unique slug, e.g. "risk-of-rain-2"
	Name      string     // Display name
	ModLoader ModLoader  // Loader injected for modded launches
	Platforms []Platform // First entry is the active platform
	Hooks     LaunchHooks
}

// ActivePlatform returns the platform used for launching
func (g *Game) ActivePlatform() (Platform, error) {
	if len(g.Platforms) == 0 {
		return Platform{}, ErrNoPlatform
	}
	return g.Platforms[0], nil
}
