package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCmd_Structure(t *testing.T) {
	assert.Equal(t, "profile", profileCmd.Use)
	assert.NotEmpty(t, profileCmd.Short)

	var subCmds []string
	for _, cmd := range profileCmd.Commands() {
		subCmds = append(subCmds, cmd.Name())
	}

	assert.Contains(t, subCmds, "list")
	assert.Contains(t, subCmds, "create")
	assert.Contains(t, subCmds, "delete")
	assert.Contains(t, subCmds, "use")
	assert.Contains(t, subCmds, "path")
}

func TestProfileListCmd_NoGame(t *testing.T) {
	useTempDirs(t)

	_, err := runCommand(t, profileCmd, "profile", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no game specified")
}

func TestProfileCreateCmd_NoName(t *testing.T) {
	gameID = "valheim"
	t.Cleanup(func() { gameID = "" })

	_, err := runCommand(t, profileCmd, "profile", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestProfileCreateCmd_UnknownGame(t *testing.T) {
	useTempDirs(t)
	gameID = "no-such-game"

	_, err := runCommand(t, profileCmd, "profile", "create", "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game not found")
}

func TestProfile_Lifecycle(t *testing.T) {
	useTempDirs(t)
	gameID = "valheim"

	out, err := runCommand(t, profileCmd, "profile", "create", "default")
	require.NoError(t, err)
	assert.Contains(t, out, "Created profile: default")
	assert.Contains(t, out, "Active: yes")
	assert.DirExists(t, filepath.Join(dataDir, "profiles", "valheim", "default"))

	out, err = runCommand(t, profileCmd, "profile", "create", "testing")
	require.NoError(t, err)
	assert.NotContains(t, out, "Active: yes")

	_, err = runCommand(t, profileCmd, "profile", "create", "testing")
	assert.Error(t, err, "duplicate name")

	out, err = runCommand(t, profileCmd, "profile", "create", "copy", "--from", "default")
	t.Cleanup(func() { profileCreateFrom = "" })
	require.NoError(t, err)
	assert.Contains(t, out, "Created profile: copy")
	profileCreateFrom = ""

	out, err = runCommand(t, profileCmd, "profile", "use", "testing")
	require.NoError(t, err)
	assert.Contains(t, out, "Active profile: testing")

	out, err = runCommand(t, profileCmd, "profile", "delete", "default")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted profile: default")
	assert.NoDirExists(t, filepath.Join(dataDir, "profiles", "valheim", "default"))

	_, err = runCommand(t, profileCmd, "profile", "use", "default")
	assert.Error(t, err)
}
