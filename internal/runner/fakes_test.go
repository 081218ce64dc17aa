package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

// recorder collects the order in which collaborators are called
type recorder struct {
	events []string
}

func (r *recorder) add(e string) { r.events = append(r.events, e) }

type fakeExecutor struct {
	rec      *recorder
	cmdlines []string
	err      error
}

func (f *fakeExecutor) Start(_ context.Context, cmdline string) error {
	f.rec.add("exec")
	f.cmdlines = append(f.cmdlines, cmdline)
	return f.err
}

type fakeSteam struct {
	rec       *recorder
	dir       string
	dirErr    error
	proton    bool
	protonErr error
	userReg   string
}

func (f *fakeSteam) SteamDirectory() (string, error) {
	f.rec.add("steam dir")
	return f.dir, f.dirErr
}

func (f *fakeSteam) IsProtonGame(string) (bool, error) {
	f.rec.add("proton")
	return f.proton, f.protonErr
}

func (f *fakeSteam) UserRegPath(string) (string, error) {
	return f.userReg, nil
}

type fakeSettings struct {
	params string
	err    error
}

func (f *fakeSettings) GetLaunchSettings(gameID string) (*domain.LaunchSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.LaunchSettings{GameID: gameID, LaunchParameters: f.params}, nil
}

// spyFS records every filesystem call made through it
type spyFS struct {
	fsys.FS
	rec   *recorder
	calls int
}

func (s *spyFS) note(op string) {
	s.calls++
	s.rec.add("fs " + op)
}

func (s *spyFS) Exists(path string) (bool, error) {
	s.note("exists")
	return s.FS.Exists(path)
}

func (s *spyFS) ReadFile(path string) ([]byte, error) {
	s.note("read")
	return s.FS.ReadFile(path)
}

func (s *spyFS) WriteFile(path string, data []byte) error {
	s.note("write")
	return s.FS.WriteFile(path, data)
}

func (s *spyFS) CopyFile(src, dst string) error {
	s.note("copy")
	return s.FS.CopyFile(src, dst)
}

func (s *spyFS) Stat(path string) (fsys.FileInfo, error) {
	s.note("stat")
	return s.FS.Stat(path)
}

const (
	testSteamDir   = "/home/deck/.steam/steam"
	testUserReg    = "/home/deck/.steam/steam/steamapps/compatdata/632360/pfx/user.reg"
	testUserRegDoc = "WINE REGISTRY Version 2\n\n[Software\\\\Wine\\\\DllOverrides] 1700000000\n#time=1d9\n\"d3d11\"=\"native\"\n\n"
)

type fixture struct {
	rec      *recorder
	mem      *fsys.AferoFS
	fs       *spyFS
	steam    *fakeSteam
	settings *fakeSettings
	exec     *fakeExecutor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &recorder{}
	mem := fsys.NewMemory()
	require.NoError(t, mem.Mkdirs("/home/deck/.steam/steam/steamapps/compatdata/632360/pfx"))
	require.NoError(t, mem.WriteFile(testUserReg, []byte(testUserRegDoc)))

	return &fixture{
		rec:      rec,
		mem:      mem,
		fs:       &spyFS{FS: mem, rec: rec},
		steam:    &fakeSteam{rec: rec, dir: testSteamDir, userReg: testUserReg},
		settings: &fakeSettings{},
		exec:     &fakeExecutor{rec: rec},
	}
}

func (f *fixture) deps() Deps {
	return Deps{FS: f.fs, Steam: f.steam, Settings: f.settings, Exec: f.exec}
}

func steamGame(loader domain.ModLoader) *domain.Game {
	return &domain.Game{
		ID:        "risk-of-rain-2",
		Name:      "Risk of Rain 2",
		ModLoader: loader,
		Platforms: []domain.Platform{{Store: domain.StoreSteam, StoreIdentifier: "632360"}},
	}
}

func testProfile() *domain.Profile {
	return &domain.Profile{GameID: "risk-of-rain-2", Name: "Default", Path: "/data/profiles/risk-of-rain-2/Default"}
}

// captureSeverities swaps the global logger and returns a func listing the
// severity field of every line logged since
func captureSeverities(t *testing.T) func() []string {
	t.Helper()
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	buf := new(bytes.Buffer)
	log.Logger = zerolog.New(buf).Level(zerolog.DebugLevel)

	return func() []string {
		var out []string
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if line == "" {
				continue
			}
			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
			if sev, ok := entry["severity"].(string); ok {
				out = append(out, sev)
			}
		}
		return out
	}
}
