// Package store persists the timeline of a session in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heimdex/shotmanager/internal/timeline"
)

// State is everything a session needs to resume: the model and the
// navigation indices.
type State struct {
	Snapshot          timeline.Snapshot
	CurrentShotIndex  int
	SelectedShotIndex int
}

type Repository interface {
	// SaveState replaces the stored timeline with state.
	SaveState(ctx context.Context, state State) error
	// LoadState returns the stored state, nil when nothing was saved yet.
	LoadState(ctx context.Context) (*State, error)

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveState(ctx context.Context, state State) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM shots"); err != nil {
		return fmt.Errorf("clear shots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM takes"); err != nil {
		return fmt.Errorf("clear takes: %w", err)
	}

	for ti, take := range state.Snapshot.Takes {
		if _, err := tx.ExecContext(ctx, "INSERT INTO takes (position, name) VALUES (?, ?)", ti, take.Name); err != nil {
			return fmt.Errorf("insert take %q: %w", take.Name, err)
		}
		for si, s := range take.Shots {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shots (id, take_position, position, name, start_frame, end_frame, enabled, camera, color_r, color_g, color_b, color_a)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, s.ID, ti, si, s.Name, s.Start, s.End, boolToInt(s.Enabled), string(s.Camera), s.Color.R, s.Color.G, s.Color.B, s.Color.A)
			if err != nil {
				return fmt.Errorf("insert shot %q: %w", s.Name, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE session_state
		SET active_take_name = ?, edit_start_frame = ?, current_shot_index = ?, selected_shot_index = ?, updated_at = datetime('now')
		WHERE id = 1
	`, state.Snapshot.ActiveTakeName, state.Snapshot.EditStartFrame, state.CurrentShotIndex, state.SelectedShotIndex)
	if err != nil {
		return fmt.Errorf("update session state: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepository) LoadState(ctx context.Context) (*State, error) {
	takes, err := r.loadTakes(ctx)
	if err != nil {
		return nil, err
	}
	if len(takes) == 0 {
		return nil, nil
	}

	state := &State{Snapshot: timeline.Snapshot{Takes: takes}}
	err = r.db.QueryRowContext(ctx, `
		SELECT active_take_name, edit_start_frame, current_shot_index, selected_shot_index
		FROM session_state WHERE id = 1
	`).Scan(&state.Snapshot.ActiveTakeName, &state.Snapshot.EditStartFrame, &state.CurrentShotIndex, &state.SelectedShotIndex)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	return state, nil
}

func (r *SQLiteRepository) loadTakes(ctx context.Context) ([]timeline.TakeRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT position, name FROM takes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load takes: %w", err)
	}
	defer rows.Close()

	var takes []timeline.TakeRecord
	positions := make(map[int]int)
	for rows.Next() {
		var pos int
		var name string
		if err := rows.Scan(&pos, &name); err != nil {
			return nil, err
		}
		positions[pos] = len(takes)
		takes = append(takes, timeline.TakeRecord{Name: name, Shots: []timeline.ShotRecord{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	shotRows, err := r.db.QueryContext(ctx, `
		SELECT id, take_position, name, start_frame, end_frame, enabled, camera, color_r, color_g, color_b, color_a
		FROM shots ORDER BY take_position, position
	`)
	if err != nil {
		return nil, fmt.Errorf("load shots: %w", err)
	}
	defer shotRows.Close()

	for shotRows.Next() {
		var s timeline.ShotRecord
		var takePos, enabled int
		var camera string
		if err := shotRows.Scan(&s.ID, &takePos, &s.Name, &s.Start, &s.End, &enabled, &camera,
			&s.Color.R, &s.Color.G, &s.Color.B, &s.Color.A); err != nil {
			return nil, err
		}
		s.Enabled = enabled == 1
		s.Camera = timeline.CameraRef(camera)

		idx, ok := positions[takePos]
		if !ok {
			continue
		}
		takes[idx].Shots = append(takes[idx].Shots, s)
	}
	return takes, shotRows.Err()
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
	`, key, value)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
