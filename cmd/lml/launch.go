package main

import (
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/spf13/cobra"
)

var (
	launchVanilla   bool
	launchPrintArgs bool
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch a game",
	Long: `Launch a game with the mods of its active profile, or without mods.

For Steam games running under Proton the Wine prefix is patched so the mod
loader's winhttp.dll is loaded; user.reg is backed up to user.reg.bak first.

Examples:
  lml launch --game valheim
  lml launch --game valheim --vanilla
  lml launch --game valheim --print`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchVanilla, "vanilla", false, "launch without mods")
	launchCmd.Flags().BoolVar(&launchPrintArgs, "print", false, "print the mod loader arguments instead of launching")
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	service, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer service.Close()

	if launchPrintArgs {
		gameArgs, err := service.GameArguments(cmd.Context(), game.ID)
		if err != nil {
			return err
		}
		cmd.Println(gameArgs)
		return nil
	}

	mode := domain.LaunchModded
	if launchVanilla {
		mode = domain.LaunchVanilla
	}

	rec, err := service.Launch(cmd.Context(), game.ID, mode)
	if err != nil {
		return err
	}

	if rec.Profile != "" {
		cmd.Printf("Launched %s (%s, profile %s)\n", game.Name, rec.Mode, rec.Profile)
	} else {
		cmd.Printf("Launched %s (%s)\n", game.Name, rec.Mode)
	}
	return nil
}
