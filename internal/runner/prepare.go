package runner

import (
	"context"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/winereg"

	"github.com/rs/zerolog/log"
)

// Preparer readies the platform environment before a modded launch
type Preparer interface {
	Prepare(ctx context.Context, game *domain.Game, appID string) error
}

// WineDLLOverride makes the Proton prefix load the mod loader's winhttp proxy
// instead of Wine's builtin DLL.
type WineDLLOverride struct {
	fs    fsys.FS
	steam SteamResolver
}

// NewWineDLLOverride creates the Proton preparation step
func NewWineDLLOverride(fs fsys.FS, steam SteamResolver) *WineDLLOverride {
	return &WineDLLOverride{fs: fs, steam: steam}
}

// Prepare sets winhttp to native,builtin in the prefix's user.reg. Filesystem
// errors are returned as-is.
func (w *WineDLLOverride) Prepare(_ context.Context, game *domain.Game, appID string) error {
	userReg, err := w.steam.UserRegPath(appID)
	if err != nil {
		return &domain.PlatformDetectionError{Op: "compatdata directory", Err: err}
	}

	changed, err := winereg.Ensure(w.fs, userReg, winereg.DllOverridesSection, winereg.WinHTTPKey, winereg.NativeBuiltin)
	if err != nil {
		return err
	}
	if changed {
		log.Info().Str("game", game.ID).Str("path", userReg).Msg("enabled winhttp override, backup written")
	}
	return nil
}
