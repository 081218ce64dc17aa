package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
)

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// printLaunchError writes the user-facing parts of a launch failure
func printLaunchError(w io.Writer, le *domain.LaunchError) {
	fmt.Fprintf(w, "Error: %s\n", le.Title)
	if le.Detail != "" {
		fmt.Fprintf(w, "  %s\n", le.Detail)
	}
	if le.Hint != "" {
		fmt.Fprintf(w, "  Hint: %s\n", le.Hint)
	}
}

// truncate shortens s to maxLen, marking the cut with "..."
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// yesNo renders a flag for tables
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// launchRecordJSON is the --json shape of a launch history entry
type launchRecordJSON struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Profile   string    `json:"profile,omitempty"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"started_at"`
	Error     string    `json:"error,omitempty"`
}

func toLaunchRecordJSON(rec domain.LaunchRecord) launchRecordJSON {
	return launchRecordJSON{
		ID:        rec.ID,
		GameID:    rec.GameID,
		Profile:   rec.Profile,
		Mode:      rec.Mode.String(),
		StartedAt: rec.StartedAt,
		Error:     rec.Error,
	}
}

// printLaunches writes a launch history table to stdout
func printLaunches(launches []domain.LaunchRecord, withGame bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if withGame {
		fmt.Fprint(w, "GAME\t")
	}
	fmt.Fprintln(w, "STARTED\tMODE\tPROFILE\tRESULT")
	for _, rec := range launches {
		if withGame {
			fmt.Fprintf(w, "%s\t", rec.GameID)
		}
		result := "ok"
		if !rec.Succeeded() {
			result = truncate(rec.Error, 60)
		}
		profile := rec.Profile
		if profile == "" {
			profile = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatTime(rec.StartedAt), rec.Mode, profile, result)
	}
	w.Flush()
}
