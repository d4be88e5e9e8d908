package solver

import (
	"time"

	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/ports"
)

// CountSolutions counts distinct completions of g, stopping as soon as
// limit is reached; the return value is min(actual count, limit).
// Search only ever writes into empty cells and every placement is undone
// before the enclosing call returns, so g is bit-for-bit unchanged on exit.
func (s *Backtracking) CountSolutions(g domain.Grid, limit int) (int, ports.Stats) {
	start := time.Now()
	n := g.Size()
	count := 0
	nodes := 0

	// dfs returns true once the limit is reached, which unwinds the
	// whole search without ad hoc break flags.
	var dfs func() bool
	dfs = func() bool {
		r, c, ok := findEmpty(g)
		if !ok {
			count++
			return count >= limit
		}
		for v := 1; v <= n; v++ {
			nodes++
			if IsAllowed(g, r, c, v) {
				g[r][c] = v
				stop := dfs()
				g[r][c] = 0
				if stop {
					return true
				}
			}
		}
		return false
	}
	if limit > 0 {
		_ = dfs()
	}
	return count, ports.Stats{Nodes: nodes, Duration: time.Since(start)}
}
