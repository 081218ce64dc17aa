package db_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/storage/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestNew_RunsMigrations(t *testing.T) {
	database := newDB(t)

	var count int
	assert.NoError(t, database.QueryRow("SELECT COUNT(*) FROM launch_settings").Scan(&count))
	assert.NoError(t, database.QueryRow("SELECT COUNT(*) FROM launch_history").Scan(&count))

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), db.FileName)

	database, err := db.New(path)
	require.NoError(t, err)
	require.NoError(t, database.SetLaunchParameters("valheim", "-console"))
	require.NoError(t, database.Close())

	database, err = db.New(path)
	require.NoError(t, err)
	defer database.Close()

	settings, err := database.GetLaunchSettings("valheim")
	require.NoError(t, err)
	assert.Equal(t, "-console", settings.LaunchParameters)
}

func TestLaunchSettings(t *testing.T) {
	database := newDB(t)

	settings, err := database.GetLaunchSettings("bonelab")
	require.NoError(t, err)
	assert.Equal(t, "bonelab", settings.GameID)
	assert.Empty(t, settings.LaunchParameters)

	require.NoError(t, database.SetLaunchParameters("bonelab", "--melonloader.hideconsole"))
	settings, err = database.GetLaunchSettings("bonelab")
	require.NoError(t, err)
	assert.Equal(t, "--melonloader.hideconsole", settings.LaunchParameters)

	require.NoError(t, database.SetLaunchParameters("bonelab", ""))
	settings, err = database.GetLaunchSettings("bonelab")
	require.NoError(t, err)
	assert.Empty(t, settings.LaunchParameters)
}

func TestRecordLaunch(t *testing.T) {
	database := newDB(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	first := &domain.LaunchRecord{GameID: "valheim", Profile: "Default", Mode: domain.LaunchModded, StartedAt: base}
	require.NoError(t, database.RecordLaunch(first))
	_, err := uuid.Parse(first.ID)
	assert.NoError(t, err, "ID is a generated UUID")

	require.NoError(t, database.RecordLaunch(&domain.LaunchRecord{
		GameID: "valheim", Profile: "Default", Mode: domain.LaunchVanilla,
		StartedAt: base.Add(time.Hour), Error: "Error starting Steam: exit status 1",
	}))
	require.NoError(t, database.RecordLaunch(&domain.LaunchRecord{
		GameID: "bonelab", Profile: "Fun", StartedAt: base.Add(2 * time.Hour),
	}))

	records, err := database.RecentLaunches("valheim", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.LaunchVanilla, records[0].Mode)
	assert.False(t, records[0].Succeeded())
	assert.Equal(t, first.ID, records[1].ID)
	assert.True(t, records[1].Succeeded())
	assert.True(t, base.Equal(records[1].StartedAt))

	all, err := database.RecentLaunches("", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bonelab", all[0].GameID)
}

func TestRecentLaunches_Empty(t *testing.T) {
	records, err := newDB(t).RecentLaunches("valheim", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
