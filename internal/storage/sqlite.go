// Package storage provides SQLite-based persistence for match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/match"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one player's final territory in one match.
type ScoreEntry struct {
	MatchID   string
	GameID    string
	Name      string
	Color     core.Color
	Score     int
	Kills     int
	Rank      int
	CreatedAt time.Time
}

// PlayerRecord aggregates every stored match of one player name.
type PlayerRecord struct {
	Name    string
	Matches int
	Wins    int
	Best    int
	Total   int64
	Kills   int
	Deaths  int
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
		CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			winner_id INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS match_players (
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			player_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			colour INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			best INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			place INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, player_id)
		);
		CREATE INDEX IF NOT EXISTS idx_match_players_score ON match_players(score DESC);
		CREATE INDEX IF NOT EXISTS idx_match_players_name ON match_players(name);
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

// SaveMatchResult implements match.ResultSaver.
// The match row and its player rows are written in one transaction.
func (s *Store) SaveMatchResult(result match.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	created := result.StartedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = tx.Exec(
		`INSERT INTO matches (id, game_id, end_reason, winner_id, ticks, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.GameID,
		result.Reason.String(),
		int(result.Winner),
		int64(result.Ticks),
		result.Duration.Milliseconds(),
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match %s: %w", result.MatchID, err)
	}

	for _, p := range result.Players {
		_, err = tx.Exec(
			`INSERT INTO match_players
			 (match_id, player_id, name, colour, score, best, kills, deaths, place)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.MatchID, int(p.ID), p.Name, int(p.Color),
			p.Score, p.Best, p.Kills, p.Deaths, p.Rank,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save player %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

// TopScores retrieves the best N player scores from completed matches of the given game.
// Results are ordered by score descending, oldest first on ties.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT m.id, m.game_id, p.name, p.colour, p.score, p.kills, p.place, m.created_at
		 FROM match_players p
		 JOIN matches m ON m.id = p.match_id
		 WHERE m.game_id = ? AND m.end_reason = 'completed'
		 ORDER BY p.score DESC, m.created_at ASC, p.player_id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var colour int
		var createdAt any
		if err := rows.Scan(&e.MatchID, &e.GameID, &e.Name, &colour, &e.Score, &e.Kills, &e.Rank, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Color = core.Color(colour)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the largest final territory of a completed match of the given game.
// Returns 0 if no matches exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(p.score)
		 FROM match_players p
		 JOIN matches m ON m.id = p.match_id
		 WHERE m.game_id = ? AND m.end_reason = 'completed'`,
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// MatchByID retrieves a match and its players.
// Returns nil, nil when the match does not exist.
func (s *Store) MatchByID(matchID string) (*match.Result, error) {
	var result match.Result
	var reason string
	var winner int
	var ticks, durationMS int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, end_reason, winner_id, ticks, duration_ms, created_at
		 FROM matches WHERE id = ?`,
		matchID,
	).Scan(&result.MatchID, &result.GameID, &reason, &winner, &ticks, &durationMS, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	result.Reason = match.ParseEndReason(reason)
	result.Winner = core.PlayerID(winner)
	result.Ticks = uint64(ticks)
	result.Duration = time.Duration(durationMS) * time.Millisecond
	result.StartedAt = parseTime(createdAt)

	players, err := s.matchPlayers(matchID)
	if err != nil {
		return nil, err
	}
	result.Players = players

	return &result, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// An empty gameID matches every game.
func (s *Store) RecentMatches(gameID string, limit int) ([]match.Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id FROM matches
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	results := make([]match.Result, 0, len(ids))
	for _, id := range ids {
		r, err := s.MatchByID(id)
		if err != nil {
			return nil, err
		}
		if r != nil {
			results = append(results, *r)
		}
	}

	return results, nil
}

func (s *Store) matchPlayers(matchID string) ([]match.PlayerResult, error) {
	rows, err := s.db.Query(
		`SELECT player_id, name, colour, score, best, kills, deaths, place
		 FROM match_players
		 WHERE match_id = ?
		 ORDER BY place ASC, player_id ASC`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match players: %w", err)
	}
	defer rows.Close()

	var players []match.PlayerResult
	for rows.Next() {
		var p match.PlayerResult
		var id, colour int
		if err := rows.Scan(&id, &p.Name, &colour, &p.Score, &p.Best, &p.Kills, &p.Deaths, &p.Rank); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.ID = core.PlayerID(id)
		p.Color = core.Color(colour)
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return players, nil
}

// Leaderboard aggregates completed matches per player name for the given
// game, ordered by wins, then best territory.
func (s *Store) Leaderboard(gameID string, limit int) ([]PlayerRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT p.name,
		        COUNT(*),
		        SUM(CASE WHEN m.winner_id = p.player_id AND m.winner_id != 0 THEN 1 ELSE 0 END),
		        MAX(p.best),
		        SUM(p.score),
		        SUM(p.kills),
		        SUM(p.deaths)
		 FROM match_players p
		 JOIN matches m ON m.id = p.match_id
		 WHERE m.game_id = ? AND m.end_reason = 'completed'
		 GROUP BY p.name
		 ORDER BY 3 DESC, 4 DESC, p.name ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var records []PlayerRecord
	for rows.Next() {
		var r PlayerRecord
		if err := rows.Scan(&r.Name, &r.Matches, &r.Wins, &r.Best, &r.Total, &r.Kills, &r.Deaths); err != nil {
			return nil, fmt.Errorf("storage: cannot scan leaderboard row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearScores deletes all matches for the given game.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`DELETE FROM match_players WHERE match_id IN (SELECT id FROM matches WHERE game_id = ?)`,
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear players: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Matches    int
	HighScore  int
	AvgTicks   float64
	LastPlayed time.Time
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT m.game_id, COUNT(*), AVG(m.ticks), MAX(m.created_at),
		        (SELECT COALESCE(MAX(p.score), 0)
		         FROM match_players p JOIN matches x ON x.id = p.match_id
		         WHERE x.game_id = m.game_id)
		 FROM matches m
		 GROUP BY m.game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.Matches, &gs.AvgTicks, &lastPlayed, &gs.HighScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both driver-decoded times and raw SQLite strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
