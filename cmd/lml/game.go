package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/DonovanMods/linux-mod-launcher/internal/core"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/spf13/cobra"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "List, detect and import games",
}

func init() {
	gameCmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List every game in the catalog, built-in and imported",
			Args:    cobra.NoArgs,
			RunE:    serviceCommand(runGameList),
		},
		&cobra.Command{
			Use:   "detect",
			Short: "Scan Steam libraries and direct installs for catalog games",
			Args:  cobra.NoArgs,
			RunE:  serviceCommand(runGameDetect),
		},
		&cobra.Command{
			Use:     "set-default <game-id>",
			Short:   "Set the game used when --game is omitted",
			Example: `  lml game set-default valheim`,
			Args:    cobra.ExactArgs(1),
			RunE:    serviceCommand(runGameSetDefault),
		},
		&cobra.Command{
			Use:   "show-default",
			Short: "Show the default game",
			Args:  cobra.NoArgs,
			RunE:  serviceCommand(runGameShowDefault),
		},
		&cobra.Command{
			Use:   "clear-default",
			Short: "Clear the default game",
			Args:  cobra.NoArgs,
			RunE:  serviceCommand(runGameClearDefault),
		},
		&cobra.Command{
			Use:   "import <games.yaml>",
			Short: "Import game definitions into the user catalog",
			Long: `Import game definitions from a YAML file into the user catalog.
Imported games override built-in games with the same ID.`,
			Example: `  lml game import ~/Downloads/games.yaml`,
			Args:    cobra.ExactArgs(1),
			RunE:    serviceCommand(runGameImport),
		},
	)
	rootCmd.AddCommand(gameCmd)
}

type gameJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ModLoader string `json:"mod_loader"`
	Store     string `json:"store,omitempty"`
	StoreID   string `json:"store_id,omitempty"`
	Default   bool   `json:"default"`
}

func runGameList(cmd *cobra.Command, _ []string, svc *core.Service) error {
	games := svc.ListGames()
	defaultGame := svc.Config().DefaultGame

	rows := make([]gameJSON, 0, len(games))
	for _, g := range games {
		row := gameJSON{ID: g.ID, Name: g.Name, ModLoader: g.ModLoader.String(), Default: g.ID == defaultGame}
		if p, err := g.ActivePlatform(); err == nil {
			row.Store, row.StoreID = p.Store.String(), p.StoreIdentifier
		}
		rows = append(rows, row)
	}

	if jsonOutput {
		return printJSON(rows)
	}
	if len(rows) == 0 {
		cmd.Println("No games known.\n\nUse 'lml game import <games.yaml>' to add games.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOADER\tSTORE")
	for _, r := range rows {
		id, store := r.ID, "-"
		if r.Default {
			id += " *"
		}
		if r.Store != "" {
			store = fmt.Sprintf("%s (%s)", r.Store, truncate(r.StoreID, 30))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, r.Name, r.ModLoader, store)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("\nTotal: %d game(s)\n", len(rows))
	return nil
}

type detectedJSON struct {
	GameID      string `json:"game_id"`
	Store       string `json:"store"`
	StoreID     string `json:"store_id"`
	InstallPath string `json:"install_path"`
	Proton      bool   `json:"proton"`
}

func runGameDetect(cmd *cobra.Command, _ []string, svc *core.Service) error {
	found, err := svc.DetectGames(cmd.Context())
	if err != nil {
		return fmt.Errorf("detecting games: %w", err)
	}

	if jsonOutput {
		out := make([]detectedJSON, 0, len(found))
		for _, d := range found {
			out = append(out, detectedJSON{
				GameID:      d.GameID,
				Store:       d.Store.String(),
				StoreID:     d.StoreIdentifier,
				InstallPath: d.InstallPath,
				Proton:      d.Proton,
			})
		}
		return printJSON(out)
	}
	if len(found) == 0 {
		cmd.Println("No installed games from the catalog were found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tSTORE\tPROTON\tPATH")
	for _, d := range found {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.GameID, d.Store, yesNo(d.Proton), truncate(d.InstallPath, 60))
	}
	return w.Flush()
}

func runGameSetDefault(cmd *cobra.Command, args []string, svc *core.Service) error {
	game, err := svc.GetGame(args[0])
	if err != nil {
		return fmt.Errorf("game not found: %s", args[0])
	}
	if err := svc.SetDefaultGame(game.ID); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Default game set to: %s (%s)\n", game.Name, game.ID)
	return nil
}

func runGameShowDefault(cmd *cobra.Command, _ []string, svc *core.Service) error {
	id := svc.Config().DefaultGame
	switch game, err := svc.GetGame(id); {
	case id == "":
		cmd.Println("No default game set\nUse 'lml game set-default <game-id>' to set one")
	case err != nil:
		cmd.Printf("Default game: %s\n", id)
	default:
		cmd.Printf("Default game: %s (%s)\n", game.Name, id)
	}
	return nil
}

func runGameClearDefault(cmd *cobra.Command, _ []string, svc *core.Service) error {
	cfg := svc.Config()
	previous := cfg.DefaultGame
	if previous == "" {
		cmd.Println("No default game was set")
		return nil
	}

	cfg.DefaultGame = ""
	if err := svc.SaveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Cleared default game (was: %s)\n", previous)
	return nil
}

func runGameImport(cmd *cobra.Command, args []string, svc *core.Service) error {
	ids, err := svc.ImportGames(args[0])
	for _, id := range ids {
		name := id
		if g, gerr := svc.GetGame(id); gerr == nil {
			name = describeGame(g)
		}
		cmd.Printf("Imported: %s\n", name)
	}
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		cmd.Println("No games found in file.")
	}
	return nil
}

func describeGame(g *domain.Game) string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.ID, g.ModLoader)
}
