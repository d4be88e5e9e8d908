package solver

import "svw.info/playsudoku/internal/domain"

// Backtracking is a recursive depth-first solver over dynamic board sizes.
type Backtracking struct{}

func NewBacktracking() *Backtracking { return &Backtracking{} }

// IsAllowed reports whether v can be placed at (r, c) without duplicating
// a value in the cell's row, column, or box. The box shape comes from the
// fixed per-size table in domain.BoxDims.
func IsAllowed(g domain.Grid, r, c, v int) bool {
	n := g.Size()
	for i := 0; i < n; i++ {
		if g[r][i] == v || g[i][c] == v {
			return false
		}
	}
	br, bc, ok := domain.BoxDims(n)
	if !ok {
		return false
	}
	r0, c0 := r-r%br, c-c%bc
	for dr := 0; dr < br; dr++ {
		for dc := 0; dc < bc; dc++ {
			if g[r0+dr][c0+dc] == v {
				return false
			}
		}
	}
	return true
}

// findEmpty returns the first zero cell in row-major order.
func findEmpty(g domain.Grid) (int, int, bool) {
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
