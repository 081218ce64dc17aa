package steam

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const home = "/home/deck"

var steamRoot = filepath.Join(home, ".steam", "steam")

func writeFile(t *testing.T, fs fsys.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.Mkdirs(filepath.Dir(path)))
	require.NoError(t, fs.WriteFile(path, []byte(content)))
}

func writeManifest(t *testing.T, fs fsys.FS, library, appID, name string) {
	t.Helper()
	writeFile(t, fs, filepath.Join(library, "steamapps", "appmanifest_"+appID+".acf"), fmt.Sprintf(`
"AppState"
{
	"appid"		"%s"
	"name"		"%s"
	"installdir"		"%s"
}
`, appID, name, name))
}

func writeLibraryFolders(t *testing.T, fs fsys.FS, paths ...string) {
	t.Helper()
	content := "\"libraryfolders\"\n{\n"
	for i, p := range paths {
		content += fmt.Sprintf("\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t}\n", i, p)
	}
	content += "}\n"
	writeFile(t, fs, filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf"), content)
}

func newResolver(fs fsys.FS, opts Options) *Resolver {
	if opts.Home == "" {
		opts.Home = home
	}
	return NewResolver(fs, opts)
}

func TestResolver_Candidates(t *testing.T) {
	r := newResolver(fsys.NewMemory(), Options{EnvRoot: "/env/steam", ExtraPaths: []string{"/extra/steam"}})

	assert.Equal(t, []string{
		"/env/steam",
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		"/extra/steam",
		filepath.Join(home, ".var", "app", FlatpakSteamID, ".steam", "steam"),
		filepath.Join(home, "snap", "steam", "common", ".steam", "steam"),
		"/usr/games/steam",
		"/opt/steam",
	}, r.Candidates())
}

func TestResolver_SteamDirectory(t *testing.T) {
	tests := []struct {
		name  string
		dirs  []string
		opts  Options
		want  string
		errIs error
	}{
		{
			name: "standard location",
			dirs: []string{steamRoot},
			want: steamRoot,
		},
		{
			name: "local share",
			dirs: []string{filepath.Join(home, ".local", "share", "Steam")},
			want: filepath.Join(home, ".local", "share", "Steam"),
		},
		{
			name: "flatpak",
			dirs: []string{filepath.Join(home, ".var", "app", FlatpakSteamID, ".steam", "steam")},
			want: filepath.Join(home, ".var", "app", FlatpakSteamID, ".steam", "steam"),
		},
		{
			name: "configured directory wins",
			dirs: []string{steamRoot, "/games/steam"},
			opts: Options{SteamDir: "/games/steam"},
			want: "/games/steam",
		},
		{
			name: "missing configured directory falls back",
			dirs: []string{steamRoot},
			opts: Options{SteamDir: "/missing"},
			want: steamRoot,
		},
		{
			name:  "nothing installed",
			errIs: domain.ErrSteamNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := fsys.NewMemory()
			for _, d := range tt.dirs {
				require.NoError(t, fs.Mkdirs(d))
			}

			got, err := newResolver(fs, tt.opts).SteamDirectory()
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_SteamDirectory_IgnoresFiles(t *testing.T) {
	fs := fsys.NewMemory()
	writeFile(t, fs, steamRoot, "not a directory")

	_, err := newResolver(fs, Options{}).SteamDirectory()
	assert.ErrorIs(t, err, domain.ErrSteamNotFound)
}

func TestResolver_LibraryPaths(t *testing.T) {
	fs := fsys.NewMemory()
	require.NoError(t, fs.Mkdirs(steamRoot))
	r := newResolver(fs, Options{})

	paths, err := r.LibraryPaths(steamRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{steamRoot}, paths, "root alone without libraryfolders.vdf")

	writeLibraryFolders(t, fs, steamRoot, "/mnt/games/steam")
	paths, err = r.LibraryPaths(steamRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{steamRoot, "/mnt/games/steam"}, paths)
}

// failingFS fails every read of one path
type failingFS struct {
	fsys.FS
	path string
}

func (f *failingFS) ReadFile(path string) ([]byte, error) {
	if path == f.path {
		return nil, &fsys.Error{Op: "read", Path: path, Err: fs.ErrPermission}
	}
	return f.FS.ReadFile(path)
}

func TestResolver_LibraryPaths_ReadError(t *testing.T) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	mem := fsys.NewMemory()
	writeLibraryFolders(t, mem, steamRoot)

	_, err := newResolver(&failingFS{FS: mem, path: vdfPath}, Options{}).LibraryPaths(steamRoot)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestResolver_FindApp(t *testing.T) {
	fs := fsys.NewMemory()
	require.NoError(t, fs.Mkdirs(steamRoot))
	writeLibraryFolders(t, fs, steamRoot, "/mnt/games/steam")
	writeManifest(t, fs, "/mnt/games/steam", "632360", "Risk of Rain 2")
	r := newResolver(fs, Options{})

	app, err := r.FindApp("632360")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/games/steam", app.Library)
	assert.Equal(t, "Risk of Rain 2", app.Manifest.Name)
	assert.Equal(t, "/mnt/games/steam/steamapps/common/Risk of Rain 2", app.InstallPath)
	assert.Equal(t, "/mnt/games/steam/steamapps/compatdata/632360", CompatDataDir(app))

	_, err = r.FindApp("1")
	assert.ErrorIs(t, err, domain.ErrAppNotInstalled)
}

func TestResolver_FindApp_MalformedManifest(t *testing.T) {
	fs := fsys.NewMemory()
	writeFile(t, fs, filepath.Join(steamRoot, "steamapps", "appmanifest_10.acf"), "invalid vdf content {{{")

	_, err := newResolver(fs, Options{}).FindApp("10")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAppNotInstalled)
}

func TestResolver_ProtonStatus(t *testing.T) {
	const appID = "632360"

	tests := []struct {
		name   string
		setup  func(t *testing.T, fs fsys.FS)
		want   bool
		reason string
	}{
		{
			name: "native game",
			want: false,
		},
		{
			name: "compat tool mapping",
			setup: func(t *testing.T, fs fsys.FS) {
				writeFile(t, fs, filepath.Join(steamRoot, "config", "config.vdf"), `
"InstallConfigStore"
{
	"Software"
	{
		"Valve"
		{
			"Steam"
			{
				"CompatToolMapping"
				{
					"632360"
					{
						"name"		"proton_9"
						"config"		""
						"priority"		"250"
					}
				}
			}
		}
	}
}
`)
			},
			want:   true,
			reason: "compat tool proton_9",
		},
		{
			name: "platform override",
			setup: func(t *testing.T, fs fsys.FS) {
				writeFile(t, fs, filepath.Join(steamRoot, "steamapps", "appmanifest_"+appID+".acf"), `
"AppState"
{
	"appid"		"632360"
	"installdir"		"Risk of Rain 2"
	"MountedConfig"
	{
		"platform_override_source"		"windows"
	}
}
`)
			},
			want:   true,
			reason: "platform override",
		},
		{
			name: "existing prefix",
			setup: func(t *testing.T, fs fsys.FS) {
				require.NoError(t, fs.Mkdirs(filepath.Join(steamRoot, "steamapps", "compatdata", appID, "pfx")))
			},
			want:   true,
			reason: "compatdata prefix",
		},
		{
			name: "native override beats leftover prefix",
			setup: func(t *testing.T, fs fsys.FS) {
				writeFile(t, fs, filepath.Join(steamRoot, "steamapps", "appmanifest_"+appID+".acf"), `
"AppState"
{
	"appid"		"632360"
	"installdir"		"Risk of Rain 2"
	"UserConfig"
	{
		"platform_override_source"		"linux"
	}
}
`)
				require.NoError(t, fs.Mkdirs(filepath.Join(steamRoot, "steamapps", "compatdata", appID, "pfx")))
			},
			want:   false,
			reason: "native platform override",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := fsys.NewMemory()
			require.NoError(t, fs.Mkdirs(steamRoot))
			writeManifest(t, fs, steamRoot, appID, "Risk of Rain 2")
			if tt.setup != nil {
				tt.setup(t, fs)
			}
			r := newResolver(fs, Options{})

			status, err := r.ProtonStatus(appID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.Proton)
			assert.Equal(t, tt.reason, status.Reason)

			proton, err := r.IsProtonGame(appID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, proton)
		})
	}
}

func TestResolver_IsProtonGame_Errors(t *testing.T) {
	t.Run("no steam", func(t *testing.T) {
		_, err := newResolver(fsys.NewMemory(), Options{}).IsProtonGame("1")
		assert.ErrorIs(t, err, domain.ErrSteamNotFound)
	})

	t.Run("not installed", func(t *testing.T) {
		fs := fsys.NewMemory()
		require.NoError(t, fs.Mkdirs(steamRoot))
		_, err := newResolver(fs, Options{}).IsProtonGame("1")
		assert.ErrorIs(t, err, domain.ErrAppNotInstalled)
	})

	t.Run("unreadable config", func(t *testing.T) {
		mem := fsys.NewMemory()
		writeManifest(t, mem, steamRoot, "1", "Game")
		configPath := filepath.Join(steamRoot, "config", "config.vdf")
		writeFile(t, mem, configPath, "")

		_, err := newResolver(&failingFS{FS: mem, path: configPath}, Options{}).IsProtonGame("1")
		assert.ErrorIs(t, err, fs.ErrPermission)
	})

	t.Run("unreadable manifest", func(t *testing.T) {
		mem := fsys.NewMemory()
		writeManifest(t, mem, steamRoot, "1", "Game")
		manifest := filepath.Join(steamRoot, "steamapps", "appmanifest_1.acf")

		_, err := newResolver(&failingFS{FS: mem, path: manifest}, Options{}).IsProtonGame("1")
		assert.ErrorIs(t, err, fs.ErrPermission)
	})
}

func TestResolver_UserRegPath(t *testing.T) {
	fs := fsys.NewMemory()
	writeManifest(t, fs, steamRoot, "1592190", "BONELAB")

	path, err := newResolver(fs, Options{}).UserRegPath("1592190")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(steamRoot, "steamapps", "compatdata", "1592190", "pfx", "user.reg"), path)
}

func TestResolver_Detect(t *testing.T) {
	fs := fsys.NewMemory()
	writeManifest(t, fs, steamRoot, "632360", "Risk of Rain 2")
	require.NoError(t, fs.Mkdirs(filepath.Join(steamRoot, "steamapps", "compatdata", "632360", "pfx")))
	r := newResolver(fs, Options{})

	games := []domain.Game{
		{ID: "risk-of-rain-2", Platforms: []domain.Platform{{Store: domain.StoreSteam, StoreIdentifier: "632360"}}},
		{ID: "bonelab", Platforms: []domain.Platform{{Store: domain.StoreSteam, StoreIdentifier: "1592190"}}},
		{ID: "drm-free", Platforms: []domain.Platform{{Store: domain.StoreDirect, StoreIdentifier: "/games/x"}}},
	}

	found, err := r.Detect(context.Background(), games)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "risk-of-rain-2", found[0].GameID)
	assert.Equal(t, filepath.Join(steamRoot, "steamapps", "common", "Risk of Rain 2"), found[0].InstallPath)
	assert.True(t, found[0].Proton)
}

func TestResolver_Detect_NoSteam(t *testing.T) {
	found, err := newResolver(fsys.NewMemory(), Options{}).Detect(context.Background(), []domain.Game{{ID: "x"}})
	require.NoError(t, err)
	assert.Empty(t, found)
}
