package main

import (
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/logwatch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for the mod loader log",
	Long: `Report whether the active profile's mod loader log exists, and print every
change until interrupted. The log appearing is the first sign that the mod
loader was picked up by the game.

Examples:
  lml watch --game valheim`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	service, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer service.Close()

	w, err := service.NewLogWatcher(game.ID)
	if err != nil {
		return err
	}
	defer w.Disconnect()

	ctx := cmd.Context()
	w.Start(ctx)

	if profile, err := service.Profiles().Active(game.ID); err == nil {
		if path, ok := logwatch.LogPath(game, profile); ok {
			cmd.Printf("Watching %s\n", path)
		}
	}
	printLogState(cmd, w.Exists())

	for {
		select {
		case <-ctx.Done():
			return nil
		case exists, ok := <-w.Changes():
			if !ok {
				return nil
			}
			printLogState(cmd, exists)
		}
	}
}

func printLogState(cmd *cobra.Command, exists bool) {
	cmd.Printf("%s  log %s\n", time.Now().Format("15:04:05"), availability(exists))
}
