package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/hint"
	"svw.info/playsudoku/internal/namegen"
	"svw.info/playsudoku/internal/ports"
	"svw.info/playsudoku/internal/validator"
)

var solved6 = domain.Grid{
	{1, 2, 3, 4, 5, 6},
	{4, 5, 6, 1, 2, 3},
	{2, 3, 4, 5, 6, 1},
	{5, 6, 1, 2, 3, 4},
	{3, 4, 5, 6, 1, 2},
	{6, 1, 2, 3, 4, 5},
}

// fixedGenerator returns a canned puzzle/solution pair so tests control
// exactly which cells are clues.
type fixedGenerator struct {
	puzzle   domain.Grid
	solution domain.Grid
}

func (f *fixedGenerator) Generate(ctx context.Context, seed int64, mode domain.Mode) (domain.Grid, domain.Grid, ports.Stats, error) {
	return f.puzzle.Clone(), f.solution.Clone(), ports.Stats{}, nil
}

type memStore struct {
	games map[string]*domain.Game
}

func newMemStore() *memStore { return &memStore{games: make(map[string]*domain.Game)} }

func (m *memStore) SaveGame(ctx context.Context, g *domain.Game) error {
	m.games[g.ID] = g
	return nil
}

func (m *memStore) Game(ctx context.Context, id string) (*domain.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (m *memStore) GamesBySession(ctx context.Context, sessionID string) ([]domain.GameMeta, error) {
	var out []domain.GameMeta
	for _, g := range m.games {
		if g.SessionID == sessionID {
			out = append(out, domain.GameMeta{ID: g.ID, Name: g.Name, Mode: g.Mode, Status: g.Status, Clues: g.Clues, CreatedAt: g.CreatedAt})
		}
	}
	return out, nil
}

func (m *memStore) DeleteGame(ctx context.Context, id string) error {
	if _, ok := m.games[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.games, id)
	return nil
}

// newTestService wires a service around a puzzle that is solved6 with
// the given cells blanked out.
func newTestService(t *testing.T, holes ...domain.CellCoord) (*Service, *domain.Game) {
	t.Helper()
	puzzle := solved6.Clone()
	for _, h := range holes {
		puzzle[h.Row][h.Col] = 0
	}
	v := validator.New()
	svc := NewService(
		&fixedGenerator{puzzle: puzzle, solution: solved6},
		v,
		hint.NewSingles(v),
		nil,
		newMemStore(),
		namegen.New(rand.New(rand.NewSource(1))),
	)
	g, err := svc.NewGame(context.Background(), "sess-1", domain.ModeEasy)
	require.NoError(t, err)
	return svc, g
}

func TestNewGameState(t *testing.T) {
	_, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})
	require.Equal(t, domain.StatusPlaying, g.Status)
	require.Equal(t, 35, g.Clues)
	require.Equal(t, g.Puzzle, g.Board)
	require.Empty(t, g.Conflicts)
	require.Nil(t, g.Hint)
	require.NotEmpty(t, g.Name)
}

func TestUpdateCellCompletesGame(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	g, changed, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, "1")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, domain.StatusCompleted, g.Status)
	require.Empty(t, g.Conflicts)
	require.Equal(t, 0, g.Board.Empties())

	// completed games ignore further edits
	g, changed, err = svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, "")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, 1, g.Board[0][0])
}

func TestUpdateCellWrongValueConflicts(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	// 2 duplicates (0,1): both cells flagged, game not completed
	g, changed, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, "2")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, domain.StatusPlaying, g.Status)
	require.True(t, validator.Contains(g.Conflicts, domain.CellCoord{Row: 0, Col: 0}))
	require.True(t, validator.Contains(g.Conflicts, domain.CellCoord{Row: 0, Col: 1}))

	// clearing the cell clears the conflicts
	g, changed, err = svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, "")
	require.NoError(t, err)
	require.True(t, changed)
	require.Empty(t, g.Conflicts)
}

func TestClueCellsAreImmutable(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	g, changed, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 2, 3, "6")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, solved6[2][3], g.Board[2][3])
}

func TestMalformedEditsAreNoOps(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	for _, raw := range []string{"x", "0", "7", "-1", "1.5", "99"} {
		got, changed, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, raw)
		require.NoError(t, err, "raw=%q", raw)
		require.False(t, changed, "raw=%q", raw)
		require.Equal(t, 0, got.Board[0][0], "raw=%q", raw)
	}

	// out-of-range coordinates
	_, changed, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 6, 0, "1")
	require.NoError(t, err)
	require.False(t, changed)
	_, changed, err = svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, -1, "1")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestEditClearsHint(t *testing.T) {
	svc, g := newTestService(t,
		domain.CellCoord{Row: 0, Col: 0},
		domain.CellCoord{Row: 5, Col: 5},
	)

	g, err := svc.Hint(context.Background(), "sess-1", g.ID)
	require.NoError(t, err)
	require.NotNil(t, g.Hint)
	require.Equal(t, domain.CellCoord{Row: 0, Col: 0}, *g.Hint)

	g, changed, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 5, 5, "5")
	require.NoError(t, err)
	require.True(t, changed)
	require.Nil(t, g.Hint, "any accepted edit invalidates the hint")
}

func TestHintNoCandidateIsNormal(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	// fill the only hole wrongly: no empty cell remains, so no hint
	g, _, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, "2")
	require.NoError(t, err)
	g, err = svc.Hint(context.Background(), "sess-1", g.ID)
	require.NoError(t, err)
	require.Nil(t, g.Hint)
}

func TestReset(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	g, _, err := svc.UpdateCell(context.Background(), "sess-1", g.ID, 0, 0, "2")
	require.NoError(t, err)
	require.NotEmpty(t, g.Conflicts)

	g, err = svc.Reset(context.Background(), "sess-1", g.ID)
	require.NoError(t, err)
	require.Equal(t, g.Puzzle, g.Board)
	require.Empty(t, g.Conflicts)
	require.Nil(t, g.Hint)
	require.Equal(t, domain.StatusPlaying, g.Status)
}

func TestSessionOwnership(t *testing.T) {
	svc, g := newTestService(t, domain.CellCoord{Row: 0, Col: 0})

	_, err := svc.Game(context.Background(), "other-session", g.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.UpdateCell(context.Background(), "other-session", g.ID, 0, 0, "1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), "other-session", g.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
