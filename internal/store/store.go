// Package store persists tremor readings and freeze episodes to sqlite.
// The detection core performs no I/O; this package is the collaborator that
// records what it emits.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/stridesense/gaitwatch/internal/motion"
)

// DB wraps the sqlite handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the sqlite database at path and applies
// any pending migrations.
func Open(path string) (*DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{handle}
	if err := db.MigrateUp(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

// TremorRow is a persisted tremor reading.
type TremorRow struct {
	ID              int64   `json:"id"`
	Status          string  `json:"status"`
	Magnitude       float64 `json:"magnitude"`
	Frequency       float64 `json:"frequency"`
	TimestampMillis int64   `json:"timestamp_ms"`
}

// EpisodeRow is a persisted freeze episode. EndedMillis and DurationMillis
// are nil while the episode is still open.
type EpisodeRow struct {
	EpisodeID      string `json:"episode_id"`
	StartedMillis  int64  `json:"started_ms"`
	EndedMillis    *int64 `json:"ended_ms,omitempty"`
	DurationMillis *int64 `json:"duration_ms,omitempty"`
}

// RecordTremorReading stores one burst analysis result.
func (db *DB) RecordTremorReading(r motion.TremorReading) error {
	_, err := db.Exec(
		`INSERT INTO tremor_readings (status, magnitude, frequency, timestamp_ms) VALUES (?, ?, ?, ?)`,
		string(r.Status), r.Magnitude, r.Frequency, r.TimestampMillis,
	)
	if err != nil {
		return fmt.Errorf("failed to record tremor reading: %w", err)
	}
	return nil
}

// BeginFreezeEpisode opens a new episode and returns its id.
func (db *DB) BeginFreezeEpisode(startedMillis int64) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO freeze_episodes (episode_id, started_ms) VALUES (?, ?)`,
		id, startedMillis,
	)
	if err != nil {
		return "", fmt.Errorf("failed to begin freeze episode: %w", err)
	}
	return id, nil
}

// EndFreezeEpisode closes an open episode with its measured duration.
func (db *DB) EndFreezeEpisode(episodeID string, endedMillis int64, duration time.Duration) error {
	res, err := db.Exec(
		`UPDATE freeze_episodes SET ended_ms = ?, duration_ms = ? WHERE episode_id = ? AND ended_ms IS NULL`,
		endedMillis, duration.Milliseconds(), episodeID,
	)
	if err != nil {
		return fmt.Errorf("failed to end freeze episode: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check episode update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no open freeze episode with id %s", episodeID)
	}
	return nil
}

// RecentTremorReadings returns up to limit readings, newest first.
func (db *DB) RecentTremorReadings(limit int) ([]TremorRow, error) {
	rows, err := db.Query(
		`SELECT id, status, magnitude, frequency, timestamp_ms
		 FROM tremor_readings ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tremor readings: %w", err)
	}
	defer rows.Close()

	var out []TremorRow
	for rows.Next() {
		var r TremorRow
		if err := rows.Scan(&r.ID, &r.Status, &r.Magnitude, &r.Frequency, &r.TimestampMillis); err != nil {
			return nil, fmt.Errorf("failed to scan tremor reading: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentEpisodes returns up to limit freeze episodes, newest first.
func (db *DB) RecentEpisodes(limit int) ([]EpisodeRow, error) {
	rows, err := db.Query(
		`SELECT episode_id, started_ms, ended_ms, duration_ms
		 FROM freeze_episodes ORDER BY started_ms DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query freeze episodes: %w", err)
	}
	defer rows.Close()

	var out []EpisodeRow
	for rows.Next() {
		var r EpisodeRow
		if err := rows.Scan(&r.EpisodeID, &r.StartedMillis, &r.EndedMillis, &r.DurationMillis); err != nil {
			return nil, fmt.Errorf("failed to scan freeze episode: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
