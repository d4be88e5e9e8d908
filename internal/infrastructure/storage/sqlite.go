// Package storage persists sessions and game records in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"svw.info/playsudoku/internal/domain"
)

// Store handles all database access. It implements both ports.GameStore
// and ports.SessionStore.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		last_seen INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		name TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		clues INTEGER NOT NULL,
		puzzle TEXT NOT NULL,
		solution TEXT NOT NULL,
		board TEXT NOT NULL,
		conflicts TEXT NOT NULL DEFAULT '[]',
		hint TEXT,
		started_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_games_session ON games(session_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// --- sessions ---

func (s *Store) CreateSession(ctx context.Context, sess *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, last_seen) VALUES (?, ?, ?)`,
		sess.ID, sess.CreatedAt.Unix(), sess.LastSeen.Unix())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) Session(ctx context.Context, id string) (*domain.Session, error) {
	var sess domain.Session
	var created, seen int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, last_seen FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &created, &seen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	sess.CreatedAt = time.Unix(created, 0)
	sess.LastSeen = time.Unix(seen, 0)
	return &sess, nil
}

func (s *Store) TouchSession(ctx context.Context, id string, seen time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET last_seen = ? WHERE id = ?`, seen.Unix(), id)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

// --- games ---

func (s *Store) SaveGame(ctx context.Context, g *domain.Game) error {
	puzzle, err := json.Marshal(g.Puzzle)
	if err != nil {
		return fmt.Errorf("marshal puzzle: %w", err)
	}
	solution, err := json.Marshal(g.Solution)
	if err != nil {
		return fmt.Errorf("marshal solution: %w", err)
	}
	board, err := json.Marshal(g.Board)
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	conflicts, err := json.Marshal(g.Conflicts)
	if err != nil {
		return fmt.Errorf("marshal conflicts: %w", err)
	}
	var hint sql.NullString
	if g.Hint != nil {
		h, err := json.Marshal(g.Hint)
		if err != nil {
			return fmt.Errorf("marshal hint: %w", err)
		}
		hint = sql.NullString{String: string(h), Valid: true}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, session_id, name, mode, status, clues,
			puzzle, solution, board, conflicts, hint,
			started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			board = excluded.board,
			conflicts = excluded.conflicts,
			hint = excluded.hint,
			started_at = excluded.started_at,
			updated_at = excluded.updated_at`,
		g.ID, g.SessionID, g.Name, string(g.Mode), string(g.Status), g.Clues,
		string(puzzle), string(solution), string(board), string(conflicts), hint,
		g.StartedAt.Unix(), g.CreatedAt.Unix(), g.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}

func (s *Store) Game(ctx context.Context, id string) (*domain.Game, error) {
	var g domain.Game
	var mode, status, puzzle, solution, board, conflicts string
	var hint sql.NullString
	var started, created, updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, name, mode, status, clues,
			puzzle, solution, board, conflicts, hint,
			started_at, created_at, updated_at
		FROM games WHERE id = ?`, id).
		Scan(&g.ID, &g.SessionID, &g.Name, &mode, &status, &g.Clues,
			&puzzle, &solution, &board, &conflicts, &hint,
			&started, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select game: %w", err)
	}
	g.Mode = domain.Mode(mode)
	g.Status = domain.Status(status)
	if err := json.Unmarshal([]byte(puzzle), &g.Puzzle); err != nil {
		return nil, fmt.Errorf("unmarshal puzzle: %w", err)
	}
	if err := json.Unmarshal([]byte(solution), &g.Solution); err != nil {
		return nil, fmt.Errorf("unmarshal solution: %w", err)
	}
	if err := json.Unmarshal([]byte(board), &g.Board); err != nil {
		return nil, fmt.Errorf("unmarshal board: %w", err)
	}
	if err := json.Unmarshal([]byte(conflicts), &g.Conflicts); err != nil {
		return nil, fmt.Errorf("unmarshal conflicts: %w", err)
	}
	if hint.Valid {
		var h domain.CellCoord
		if err := json.Unmarshal([]byte(hint.String), &h); err != nil {
			return nil, fmt.Errorf("unmarshal hint: %w", err)
		}
		g.Hint = &h
	}
	g.StartedAt = time.Unix(started, 0)
	g.CreatedAt = time.Unix(created, 0)
	g.UpdatedAt = time.Unix(updated, 0)
	return &g, nil
}

func (s *Store) GamesBySession(ctx context.Context, sessionID string) ([]domain.GameMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, mode, status, clues, created_at
		FROM games WHERE session_id = ? ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()
	var out []domain.GameMeta
	for rows.Next() {
		var m domain.GameMeta
		var mode, status string
		var created int64
		if err := rows.Scan(&m.ID, &m.Name, &mode, &status, &m.Clues, &created); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		m.Mode = domain.Mode(mode)
		m.Status = domain.Status(status)
		m.CreatedAt = time.Unix(created, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
