package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"svw.info/playsudoku/internal/domain"
)

// A classic, solvable 9×9 (0 = empty).
var sample9 = domain.Grid{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

// A fully solved 6×6 with 2×3 boxes.
var solved6 = domain.Grid{
	{1, 2, 3, 4, 5, 6},
	{4, 5, 6, 1, 2, 3},
	{2, 3, 4, 5, 6, 1},
	{5, 6, 1, 2, 3, 4},
	{3, 4, 5, 6, 1, 2},
	{6, 1, 2, 3, 4, 5},
}

func TestIsAllowed(t *testing.T) {
	g := domain.NewGrid(6)
	g[1][0] = 4

	require.False(t, IsAllowed(g, 0, 2, 4), "4 already in the 2×3 box")
	require.False(t, IsAllowed(g, 4, 0, 4), "4 already in column 0")
	require.False(t, IsAllowed(g, 1, 5, 4), "4 already in row 1")
	require.True(t, IsAllowed(g, 0, 3, 4), "adjacent box is clear")
	require.True(t, IsAllowed(g, 2, 1, 4), "box below is clear")
}

func TestIsAllowedScansWholeGroups(t *testing.T) {
	// Every occupied row, column, and box member must veto the value.
	g := solved6.Clone()
	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g[r][c]
			g[r][c] = 0
			for cand := 1; cand <= n; cand++ {
				if cand == v {
					require.True(t, IsAllowed(g, r, c, cand), "r=%d c=%d v=%d", r, c, cand)
				} else {
					require.False(t, IsAllowed(g, r, c, cand), "r=%d c=%d v=%d", r, c, cand)
				}
			}
			g[r][c] = v
		}
	}
}

func TestCountSolutionsExactWhenBelowLimit(t *testing.T) {
	s := NewBacktracking()

	full := solved6.Clone()
	count, _ := s.CountSolutions(full, 2)
	require.Equal(t, 1, count, "complete grid has exactly one completion")

	oneHole := solved6.Clone()
	oneHole[3][4] = 0
	count, _ = s.CountSolutions(oneHole, 2)
	require.Equal(t, 1, count)

	// Cell (0,5) needs 6 but 6 sits in its column: zero completions.
	dead := domain.NewGrid(6)
	copy(dead[0], []int{1, 2, 3, 4, 5, 0})
	dead[2][5] = 6
	count, _ = s.CountSolutions(dead, 2)
	require.Equal(t, 0, count)
}

func TestCountSolutionsNeverExceedsLimit(t *testing.T) {
	s := NewBacktracking()
	empty := domain.NewGrid(6)
	for _, limit := range []int{1, 2, 3, 5} {
		count, _ := s.CountSolutions(empty, limit)
		require.Equal(t, limit, count, "empty grid has far more than %d completions", limit)
	}
}

func TestCountSolutionsRestoresGrid(t *testing.T) {
	s := NewBacktracking()
	g := solved6.Clone()
	g[0][0] = 0
	g[2][3] = 0
	g[5][5] = 0
	before := g.Clone()
	_, _ = s.CountSolutions(g, 2)
	require.Equal(t, before, g, "every placement must be undone")
}

func TestSolveSample9(t *testing.T) {
	s := NewBacktracking()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, st, err := s.Solve(ctx, sample9)
	require.NoError(t, err, "nodes=%d dur=%v", st.Nodes, st.Duration)
	require.Equal(t, 0, out.Empties())
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if sample9[r][c] != 0 {
				require.Equal(t, sample9[r][c], out[r][c], "clue moved at r=%d c=%d", r, c)
			}
		}
	}
	// completion is internally consistent
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v := out[r][c]
			out[r][c] = 0
			require.True(t, IsAllowed(out, r, c, v))
			out[r][c] = v
		}
	}
}

func TestSolveUnsolvable(t *testing.T) {
	s := NewBacktracking()
	dead := domain.NewGrid(6)
	copy(dead[0], []int{1, 2, 3, 4, 5, 0})
	dead[2][5] = 6
	_, _, err := s.Solve(context.Background(), dead)
	require.Error(t, err)
}
