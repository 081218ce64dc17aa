package runner

import (
	"context"
	"testing"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		store   domain.Store
		goos    string
		want    any
		wantErr bool
	}{
		{"steam on linux", domain.StoreSteam, "linux", &SteamLinux{}, false},
		{"steam on darwin", domain.StoreSteam, "darwin", nil, true},
		{"direct on linux", domain.StoreDirect, "linux", &Direct{}, false},
		{"direct on windows", domain.StoreDirect, "windows", &Direct{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Select(domain.Platform{Store: tt.store}, tt.goos, newFixture(t).deps())
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestHost_RoutesByActivePlatform(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mem.WriteFile("/games/valheim/valheim.x86_64", []byte("elf")))
	h := NewHost("linux", f.deps())
	ctx := context.Background()

	require.NoError(t, h.StartVanilla(ctx, steamGame(domain.LoaderBepInEx), nil))
	require.NoError(t, h.StartVanilla(ctx, directGame(), nil))

	require.Len(t, f.exec.cmdlines, 2)
	assert.Contains(t, f.exec.cmdlines[0], "steam.sh")
	assert.Contains(t, f.exec.cmdlines[1], "valheim.x86_64")

	args, err := h.GameArguments(ctx, directGame(), testProfile())
	require.NoError(t, err)
	assert.Contains(t, args, "--doorstop-target")
}

func TestHost_UnsupportedStore(t *testing.T) {
	h := NewHost("darwin", newFixture(t).deps())

	err := h.StartModded(context.Background(), steamGame(domain.LoaderBepInEx), testProfile())
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)

	_, err = h.For(nil)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}
