package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/DonovanMods/linux-mod-launcher/internal/core"

	"github.com/spf13/cobra"
)

const statusHistoryLimit = 5

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show launch readiness",
	Long: `Show what a launch would find: Steam directory, install location, Proton,
the winhttp override in the Wine prefix, the active profile, the mod loader log
and the latest launches. Nothing is changed.

Without --game (and no default game) a one-line summary per game is shown.

Examples:
  lml status
  lml status --game valheim --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent launches",
	Long: `Show recent launches of a game, or of every game when no game is given.

Examples:
  lml history
  lml history --game valheim --limit 20`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of launches to show")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
}

type statusJSON struct {
	GameID          string             `json:"game_id"`
	Name            string             `json:"name"`
	SteamDir        string             `json:"steam_dir,omitempty"`
	Installed       bool               `json:"installed"`
	InstallPath     string             `json:"install_path,omitempty"`
	Proton          bool               `json:"proton"`
	ProtonReason    string             `json:"proton_reason,omitempty"`
	WinHTTPOverride bool               `json:"winhttp_override"`
	Profile         string             `json:"profile,omitempty"`
	LogPath         string             `json:"log_path,omitempty"`
	LogAvailable    bool               `json:"log_available"`
	Problems        []string           `json:"problems,omitempty"`
	Launches        []launchRecordJSON `json:"launches,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	if gameID == "" {
		// A default game is optional here
		_ = requireGame(cmd)
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if gameID != "" {
		return showGameStatus(cmd, service, gameID)
	}
	return showStatusSummary(service)
}

func showStatusSummary(service *core.Service) error {
	games := service.ListGames()

	var out []statusJSON
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if !jsonOutput {
		fmt.Fprintln(w, "GAME\tINSTALLED\tPROTON\tPROFILE\tPROBLEMS")
		fmt.Fprintln(w, "----\t---------\t------\t-------\t--------")
	}
	for _, g := range games {
		st, err := service.Status(g.ID)
		if err != nil {
			return err
		}
		if jsonOutput {
			out = append(out, toStatusJSON(st))
			continue
		}
		profile := "-"
		if st.Profile != nil {
			profile = st.Profile.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", g.ID, yesNo(st.Installed), yesNo(st.Proton), profile, len(st.Problems))
	}

	if jsonOutput {
		return printJSON(out)
	}
	return w.Flush()
}

func showGameStatus(cmd *cobra.Command, service *core.Service, id string) error {
	st, err := service.Status(id)
	if err != nil {
		return fmt.Errorf("game not found: %s", id)
	}
	launches, err := service.RecentLaunches(id, statusHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading launch history: %w", err)
	}

	if jsonOutput {
		out := toStatusJSON(st)
		for _, rec := range launches {
			out.Launches = append(out.Launches, toLaunchRecordJSON(rec))
		}
		return printJSON(out)
	}

	game := st.Game
	fmt.Printf("Game: %s\n", game.Name)
	fmt.Printf("  ID: %s\n", game.ID)
	fmt.Printf("  Mod Loader: %s\n", game.ModLoader)
	if p, err := game.ActivePlatform(); err == nil {
		fmt.Printf("  Platform: %s (%s)\n", p.Store, p.StoreIdentifier)
	}
	if st.SteamDir != "" {
		fmt.Printf("  Steam: %s\n", st.SteamDir)
	}
	fmt.Printf("  Installed: %s\n", yesNo(st.Installed))
	if st.InstallPath != "" {
		fmt.Printf("  Install Path: %s\n", st.InstallPath)
	}
	if st.SteamDir != "" {
		if st.Proton {
			fmt.Printf("  Proton: yes (%s)\n", st.ProtonReason)
			fmt.Printf("  winhttp override: %s\n", yesNo(st.WinHTTPOverride))
		} else {
			fmt.Println("  Proton: no")
		}
	}
	if !game.Hooks.IsEmpty() {
		fmt.Println("  Hooks:")
		if game.Hooks.BeforeLaunch != "" {
			fmt.Printf("    before_launch: %s\n", game.Hooks.BeforeLaunch)
		}
		if game.Hooks.AfterLaunch != "" {
			fmt.Printf("    after_launch: %s\n", game.Hooks.AfterLaunch)
		}
	}
	fmt.Println()

	if st.Profile != nil {
		fmt.Printf("Active Profile: %s\n", st.Profile.Name)
		fmt.Printf("  Path: %s\n", st.Profile.Path)
		if st.LogPath != "" {
			fmt.Printf("  Log: %s (%s)\n", st.LogPath, availability(st.LogAvailable))
		}
	} else {
		fmt.Println("No active profile.")
	}

	if len(launches) > 0 {
		fmt.Println("\nRecent Launches:")
		printLaunches(launches, false)
	}

	if len(st.Problems) > 0 {
		fmt.Println("\nProblems:")
		for _, p := range st.Problems {
			cmd.Printf("  - %s\n", p)
		}
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if gameID == "" {
		_ = requireGame(cmd)
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	launches, err := service.RecentLaunches(gameID, historyLimit)
	if err != nil {
		return fmt.Errorf("reading launch history: %w", err)
	}

	if jsonOutput {
		out := make([]launchRecordJSON, 0, len(launches))
		for _, rec := range launches {
			out = append(out, toLaunchRecordJSON(rec))
		}
		return printJSON(out)
	}

	if len(launches) == 0 {
		cmd.Println("No launches recorded.")
		return nil
	}
	printLaunches(launches, gameID == "")
	return nil
}

func toStatusJSON(st *core.GameStatus) statusJSON {
	out := statusJSON{
		GameID:          st.Game.ID,
		Name:            st.Game.Name,
		SteamDir:        st.SteamDir,
		Installed:       st.Installed,
		InstallPath:     st.InstallPath,
		Proton:          st.Proton,
		ProtonReason:    st.ProtonReason,
		WinHTTPOverride: st.WinHTTPOverride,
		LogPath:         st.LogPath,
		LogAvailable:    st.LogAvailable,
		Problems:        st.Problems,
	}
	if st.Profile != nil {
		out.Profile = st.Profile.Name
	}
	return out
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "not written yet"
}
