package db

import (
	"fmt"
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/google/uuid"
)

// RecordLaunch appends a launch to the history. An empty ID is assigned a new UUID.
func (d *DB) RecordLaunch(rec *domain.LaunchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	_, err := d.Exec(`
		INSERT INTO launch_history (id, game_id, profile_name, mode, started_at, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.GameID, rec.Profile, int(rec.Mode), rec.StartedAt.UnixMilli(), rec.Error)
	if err != nil {
		return fmt.Errorf("recording launch: %w", err)
	}
	return nil
}

// RecentLaunches returns up to limit launches, newest first. An empty gameID
// returns launches of every game.
func (d *DB) RecentLaunches(gameID string, limit int) ([]domain.LaunchRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.Query(`
		SELECT id, game_id, profile_name, mode, started_at, error
		FROM launch_history
		WHERE ? = '' OR game_id = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, gameID, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying launches: %w", err)
	}
	defer rows.Close()

	var records []domain.LaunchRecord
	for rows.Next() {
		var (
			rec     domain.LaunchRecord
			mode    int
			started int64
		)
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.Profile, &mode, &started, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning launch: %w", err)
		}
		rec.Mode = domain.LaunchMode(mode)
		rec.StartedAt = time.UnixMilli(started)
		records = append(records, rec)
	}

	return records, rows.Err()
}
