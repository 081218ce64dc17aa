package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
)

// GetLaunchSettings returns the launch settings of a game. A game without a
// stored row gets empty settings.
func (d *DB) GetLaunchSettings(gameID string) (*domain.LaunchSettings, error) {
	settings := &domain.LaunchSettings{GameID: gameID}
	err := d.QueryRow(`
		SELECT launch_parameters FROM launch_settings WHERE game_id = ?
	`, gameID).Scan(&settings.LaunchParameters)

	if errors.Is(err, sql.ErrNoRows) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting launch settings: %w", err)
	}
	return settings, nil
}

// SetLaunchParameters stores the extra launch parameters of a game
func (d *DB) SetLaunchParameters(gameID, params string) error {
	_, err := d.Exec(`
		INSERT INTO launch_settings (game_id, launch_parameters, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(game_id) DO UPDATE SET
			launch_parameters = excluded.launch_parameters,
			updated_at = CURRENT_TIMESTAMP
	`, gameID, params)
	if err != nil {
		return fmt.Errorf("saving launch parameters: %w", err)
	}
	return nil
}
