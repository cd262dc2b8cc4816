// Package storage provides SQLite-based persistence for world generation
// save slots. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/scrollgen/internal/worldgen"
)

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sql.DB
}

// SaveEntry is one named save slot. The full run state is stored as JSON;
// the summary columns exist so listings never have to deserialize it.
type SaveEntry struct {
	ID         int64
	Slot       string
	SeedValue  uint64
	FrameIndex int
	Difficulty float64
	IsEndless  bool
	LevelID    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL UNIQUE,
			state TEXT NOT NULL,
			seed_value INTEGER NOT NULL,
			frame_index INTEGER NOT NULL,
			difficulty REAL NOT NULL,
			is_endless INTEGER NOT NULL,
			level_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saves_slot ON saves(slot);
		CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSlot stores a run state under a named slot, replacing any previous
// save in that slot.
func (s *Store) SaveSlot(slot string, state worldgen.WorldGenState) error {
	if slot == "" {
		return fmt.Errorf("storage: slot name must not be empty")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("storage: cannot serialize state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (slot, state, seed_value, frame_index, difficulty, is_endless, level_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		 	state = excluded.state,
		 	seed_value = excluded.seed_value,
		 	frame_index = excluded.frame_index,
		 	difficulty = excluded.difficulty,
		 	is_endless = excluded.is_endless,
		 	level_id = excluded.level_id,
		 	updated_at = CURRENT_TIMESTAMP`,
		slot,
		string(data),
		int64(state.SeedMetadata.SeedValue),
		state.CurrentFrameIndex,
		state.CurrentDifficulty,
		state.SeedMetadata.IsEndless,
		state.SeedMetadata.LevelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %s: %w", slot, err)
	}
	return nil
}

// LoadSlot retrieves the run state stored under a slot.
// Returns false when the slot does not exist.
func (s *Store) LoadSlot(slot string) (worldgen.WorldGenState, bool, error) {
	var state worldgen.WorldGenState
	var data string

	err := s.db.QueryRow(
		"SELECT state FROM saves WHERE slot = ?",
		slot,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return state, false, nil
	}
	if err != nil {
		return state, false, fmt.Errorf("storage: cannot query slot %s: %w", slot, err)
	}

	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return state, false, fmt.Errorf("storage: cannot deserialize slot %s: %w", slot, err)
	}
	return state, true, nil
}

// ListSlots retrieves every save slot, most recently updated first.
func (s *Store) ListSlots() ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, slot, seed_value, frame_index, difficulty, is_endless, level_id, created_at, updated_at
		 FROM saves
		 ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var seed int64
		var createdAt, updatedAt any
		if err := rows.Scan(&e.ID, &e.Slot, &seed, &e.FrameIndex, &e.Difficulty, &e.IsEndless, &e.LevelID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.SeedValue = uint64(seed)
		e.CreatedAt = parseTimestamp(createdAt)
		e.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSlot removes a save slot. Deleting a missing slot is not an error;
// the bool reports whether anything was removed.
func (s *Store) DeleteSlot(slot string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete slot %s: %w", slot, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// parseTimestamp handles the datetime forms the driver may return.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
