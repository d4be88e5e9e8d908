package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/ports"
)

// Solve fills the empty cells of g and returns the completed board.
// The input grid is not modified.
func (s *Backtracking) Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	start := time.Now()
	grid := g.Clone()
	n := grid.Size()
	nodes := 0
	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := findEmpty(grid)
		if !ok {
			return true
		}
		for v := 1; v <= n; v++ {
			nodes++
			if IsAllowed(grid, r, c, v) {
				grid[r][c] = v
				if dfs() {
					return true
				}
				grid[r][c] = 0
			}
		}
		return false
	}
	if !dfs() {
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, errors.New("unsolvable or canceled")
	}
	return grid, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
