package core

import (
	"github.com/DonovanMods/linux-mod-launcher/internal/capability"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/runner"
	"github.com/DonovanMods/linux-mod-launcher/internal/source/steam"

	"github.com/jonboulle/clockwork"
)

// SettingsStore persists launch settings and the launch history
type SettingsStore interface {
	runner.SettingsReader
	SetLaunchParameters(gameID, params string) error
	RecordLaunch(rec *domain.LaunchRecord) error
	RecentLaunches(gameID string, limit int) ([]domain.LaunchRecord, error)
}

// Capability keys bound by NewService. Anything bound in ServiceConfig.Container
// before NewService runs is kept.
var (
	FSKey       = capability.NewKey[fsys.FS]("fs")
	ClockKey    = capability.NewKey[clockwork.Clock]("clock")
	ExecutorKey = capability.NewKey[runner.Executor]("executor")
	SteamKey    = capability.NewKey[*steam.Resolver]("steam")
	SettingsKey = capability.NewKey[SettingsStore]("settings")
	RunnerKey   = capability.NewKey[runner.Runner]("runner")
)
