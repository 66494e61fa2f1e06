// Package storage provides SQLite-based persistence for player records:
// level results, best scores and the highest unlocked level.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer keys records of local play.
const DefaultPlayer = "local"

// ErrNoRecord is returned when a player has no result for a level.
var ErrNoRecord = errors.New("storage: no record")

// Store manages the SQLite database connection for player records.
type Store struct {
	db *sql.DB
}

// Result is one finished level attempt.
type Result struct {
	ID        int64
	SessionID string
	Player    string
	LevelID   int
	Won       bool
	Score     int
	TurnsLeft int
	CreatedAt time.Time
}

// LevelStat aggregates a player's results on one level.
type LevelStat struct {
	LevelID   int
	Wins      int
	Losses    int
	BestScore int
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			won INTEGER NOT NULL,
			score INTEGER NOT NULL,
			turns_left INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player, level_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS progress (
			player TEXT PRIMARY KEY,
			latest_level INTEGER NOT NULL DEFAULT 1
		);
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

// RecordResult stores a finished attempt. Winning the player's latest
// unlocked level unlocks the next one; unlocked reports whether that
// happened. An empty SessionID gets a fresh one and an empty Player is
// recorded as DefaultPlayer.
func (s *Store) RecordResult(r Result) (id int64, unlocked bool, err error) {
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
	if r.Player == "" {
		r.Player = DefaultPlayer
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO results (session_id, player, level_id, won, score, turns_left)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Player, r.LevelID, boolToInt(r.Won), r.Score, r.TurnsLeft,
	)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if r.Won {
		latest, err := latestLevel(tx, r.Player)
		if err != nil {
			return 0, false, err
		}
		if r.LevelID == latest {
			_, err := tx.Exec(
				`INSERT INTO progress (player, latest_level) VALUES (?, ?)
				 ON CONFLICT(player) DO UPDATE SET latest_level = excluded.latest_level`,
				r.Player, latest+1,
			)
			if err != nil {
				return 0, false, fmt.Errorf("storage: cannot unlock level: %w", err)
			}
			unlocked = true
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return id, unlocked, nil
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func latestLevel(q queryRower, player string) (int, error) {
	var latest int
	err := q.QueryRow("SELECT latest_level FROM progress WHERE player = ?", player).Scan(&latest)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return latest, nil
}

// LatestLevel returns the highest level the player may start.
// New players start at level 1.
func (s *Store) LatestLevel(player string) (int, error) {
	return latestLevel(s.db, player)
}

// BestScore returns the player's best score on a level, or ErrNoRecord.
func (s *Store) BestScore(player string, levelID int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE player = ? AND level_id = ?",
		player, levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, ErrNoRecord
	}
	return int(score.Int64), nil
}

// LevelStats returns win, loss and best score totals per level for a
// player, ordered by level.
func (s *Store) LevelStats(player string) ([]LevelStat, error) {
	rows, err := s.db.Query(
		`SELECT level_id, SUM(won), SUM(1 - won), MAX(score)
		 FROM results
		 WHERE player = ?
		 GROUP BY level_id
		 ORDER BY level_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStat
	for rows.Next() {
		var st LevelStat
		if err := rows.Scan(&st.LevelID, &st.Wins, &st.Losses, &st.BestScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// TopScores retrieves the top N results on a level across all players.
// Results are ordered by score descending.
func (s *Store) TopScores(levelID, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, session_id, player, level_id, won, score, turns_left, created_at
		 FROM results
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
}

// RecentResults retrieves a player's most recent results.
func (s *Store) RecentResults(player string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT id, session_id, player, level_id, won, score, turns_left, created_at
		 FROM results
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
}

// ClearPlayer deletes a player's results and progress.
func (s *Store) ClearPlayer(player string) error {
	if _, err := s.db.Exec("DELETE FROM results WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM progress WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var won int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Player, &r.LevelID, &won, &r.Score, &r.TurnsLeft, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
