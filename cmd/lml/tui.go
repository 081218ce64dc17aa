package main

import (
	"github.com/DonovanMods/linux-mod-launcher/internal/core"
	"github.com/DonovanMods/linux-mod-launcher/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive launcher",
	Args:  cobra.NoArgs,
	RunE: serviceCommand(func(_ *cobra.Command, _ []string, svc *core.Service) error {
		return tui.Run(tui.FromService(svc), svc.Config().Keybindings)
	}),
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
