package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Per-game launch settings",
}

var settingsGetParamsCmd = &cobra.Command{
	Use:   "get-params",
	Short: "Show the extra launch parameters",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGetParams,
}

var settingsSetParamsCmd = &cobra.Command{
	Use:   "set-params [params...]",
	Short: "Set the extra launch parameters",
	Long: `Set the parameters appended to every launch of a game. Run without
parameters to clear them. Use -- before parameters that start with a dash.

Examples:
  lml settings set-params --game valheim -- -windowed -console
  lml settings set-params --game valheim`,
	Args: cobra.ArbitraryArgs,
	RunE: runSettingsSetParams,
}

func init() {
	settingsCmd.AddCommand(settingsGetParamsCmd)
	settingsCmd.AddCommand(settingsSetParamsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsGetParams(cmd *cobra.Command, args []string) error {
	service, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer service.Close()

	settings, err := service.LaunchSettings(game.ID)
	if err != nil {
		return err
	}

	if settings.LaunchParameters == "" {
		cmd.Println("No launch parameters set")
		return nil
	}
	fmt.Println(settings.LaunchParameters)
	return nil
}

func runSettingsSetParams(cmd *cobra.Command, args []string) error {
	service, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer service.Close()

	params := strings.Join(args, " ")
	if err := service.SetLaunchParameters(game.ID, params); err != nil {
		return fmt.Errorf("saving launch parameters: %w", err)
	}

	if params == "" {
		cmd.Println("Cleared launch parameters")
	} else {
		cmd.Printf("Launch parameters: %s\n", params)
	}
	return nil
}
