package ports

import (
	"context"
	"time"

	"svw.info/playsudoku/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver completes boards and counts completions.
type Solver interface {
	Solve(ctx context.Context, g domain.Grid) (domain.Grid, Stats, error)
	// CountSolutions returns min(actual solution count, limit). The grid
	// is mutated during search but fully restored before returning.
	CountSolutions(g domain.Grid, limit int) (int, Stats)
}

// Generator produces a puzzle with exactly one completion plus the
// solution it was dug from.
type Generator interface {
	Generate(ctx context.Context, seed int64, mode domain.Mode) (puzzle, solution domain.Grid, stats Stats, err error)
}

// Validator reports every cell participating in a row/col/box duplicate.
type Validator interface {
	Conflicts(g domain.Grid) []domain.CellCoord
}

// Hinter picks a cell with a single viable candidate, if one exists.
type Hinter interface {
	Hint(g domain.Grid) (domain.CellCoord, bool)
}

// GameStore persists game records.
type GameStore interface {
	SaveGame(ctx context.Context, g *domain.Game) error
	Game(ctx context.Context, id string) (*domain.Game, error)
	GamesBySession(ctx context.Context, sessionID string) ([]domain.GameMeta, error)
	DeleteGame(ctx context.Context, id string) error
}

// SessionStore persists browser sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	Session(ctx context.Context, id string) (*domain.Session, error)
	TouchSession(ctx context.Context, id string, seen time.Time) error
}
