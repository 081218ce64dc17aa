package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/spf13/cobra"
)

var profileCreateFrom string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Manage mod profiles for a game.

A profile is a directory holding one mod loader setup (for example a BepInEx
folder with its plugins). The active profile is the one a modded launch uses.`,
}

func init() {
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the profiles of a game",
		Args:    cobra.NoArgs,
		RunE:    runProfileList,
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile",
		Long: `Create an empty profile. The first profile of a game becomes its active
profile. With --from the new profile starts as a copy of an existing one.

Examples:
  lml profile create survival --game valheim
  lml profile create testing --from survival --game valheim`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileCreate,
	}
	create.Flags().StringVar(&profileCreateFrom, "from", "", "copy the files of an existing profile")

	remove := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a profile and everything in its directory",
		Args:    cobra.ExactArgs(1),
		RunE:    runProfileDelete,
	}

	use := &cobra.Command{
		Use:     "use <name>",
		Aliases: []string{"switch"},
		Short:   "Make a profile the one modded launches use",
		Args:    cobra.ExactArgs(1),
		RunE:    runProfileUse,
	}

	path := &cobra.Command{
		Use:   "path [name]",
		Short: "Print the directory of a profile, or of the active one",
		Long: `Print the directory of a profile, or of the active profile when no name is given.

Examples:
  cd "$(lml profile path --game valheim)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProfilePath,
	}

	profileCmd.AddCommand(list, create, remove, use, path)
	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	svc, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	profiles, err := svc.Profiles().List(game.ID)
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	if jsonOutput {
		return printJSON(profiles)
	}
	if len(profiles) == 0 {
		cmd.Printf("No profiles for %s.\n\nUse 'lml profile create <name> --game %s' to create one.\n", game.Name, game.ID)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tACTIVE\tPATH")
	for _, p := range profiles {
		marker := ""
		if p.IsActive {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, marker, p.Path)
	}
	return w.Flush()
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	svc, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	var profile *domain.Profile
	if profileCreateFrom != "" {
		profile, err = svc.Profiles().Clone(game.ID, profileCreateFrom, args[0])
	} else {
		profile, err = svc.Profiles().Create(game.ID, args[0])
	}
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	cmd.Printf("Created profile: %s\n  Path: %s\n", profile.Name, profile.Path)
	if profile.IsActive {
		cmd.Println("  Active: yes")
	}
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	svc, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Profiles().Delete(game.ID, args[0]); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	cmd.Printf("Deleted profile: %s\n", args[0])
	return nil
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	svc, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Profiles().Activate(game.ID, args[0]); err != nil {
		return fmt.Errorf("switching profile: %w", err)
	}
	cmd.Printf("Active profile: %s\n", args[0])
	return nil
}

func runProfilePath(cmd *cobra.Command, args []string) error {
	svc, game, err := gameService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	var profile *domain.Profile
	if len(args) == 1 {
		profile, err = svc.Profiles().Get(game.ID, args[0])
	} else {
		profile, err = svc.Profiles().Active(game.ID)
	}
	if err != nil {
		return err
	}
	cmd.Println(profile.Path)
	return nil
}
