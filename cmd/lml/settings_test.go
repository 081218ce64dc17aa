package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Structure(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)

	var subCmds []string
	for _, cmd := range settingsCmd.Commands() {
		subCmds = append(subCmds, cmd.Name())
	}
	assert.Contains(t, subCmds, "get-params")
	assert.Contains(t, subCmds, "set-params")
}

func TestSettings_NoGame(t *testing.T) {
	useTempDirs(t)

	_, err := runCommand(t, settingsCmd, "settings", "get-params")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no game specified")
}

func TestSettings_SetAndClearParams(t *testing.T) {
	useTempDirs(t)
	gameID = "valheim"

	out, err := runCommand(t, settingsCmd, "settings", "get-params")
	require.NoError(t, err)
	assert.Contains(t, out, "No launch parameters set")

	out, err = runCommand(t, settingsCmd, "settings", "set-params", "--", "-windowed", "-console")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch parameters: -windowed -console")

	svc, err := initService()
	require.NoError(t, err)
	settings, err := svc.LaunchSettings("valheim")
	require.NoError(t, err)
	assert.Equal(t, "-windowed -console", settings.LaunchParameters)
	require.NoError(t, svc.Close())

	out, err = runCommand(t, settingsCmd, "settings", "set-params")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared launch parameters")
}

func TestSettings_UnknownGame(t *testing.T) {
	useTempDirs(t)
	gameID = "no-such-game"

	_, err := runCommand(t, settingsCmd, "settings", "set-params", "x")
	assert.Error(t, err)
}
