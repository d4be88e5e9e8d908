package generator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/ports"
)

// Unique builds puzzles that keep exactly one completion, using the
// provided Solver for bounded solution counting.
type Unique struct {
	Solver ports.Solver
}

func NewUnique(s ports.Solver) *Unique { return &Unique{Solver: s} }

// Generate fills a fresh solution from seed and digs it down toward the
// mode's clue target. The same seed always yields the same puzzle.
func (g *Unique) Generate(ctx context.Context, seed int64, mode domain.Mode) (domain.Grid, domain.Grid, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	solution := domain.NewGrid(mode.Size())
	if !fillRandom(ctx, rng, solution) {
		if err := ctx.Err(); err != nil {
			return nil, nil, ports.Stats{}, err
		}
		return nil, nil, ports.Stats{}, errors.New("could not fill solution grid")
	}
	puzzle, nodes := g.Dig(solution, mode.TargetClues(), rng)
	return puzzle, solution, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// Dig removes values from a copy of solution in a single randomized pass,
// keeping a removal only while the board still has exactly one completion.
// Digging stops once size²-clues cells are gone; running out of removable
// cells first is accepted and simply leaves more clues.
func (g *Unique) Dig(solution domain.Grid, clues int, rng *rand.Rand) (domain.Grid, int) {
	n := solution.Size()
	puzzle := solution.Clone()

	order := make([]int, n*n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	target := n*n - clues
	removed := 0
	nodes := 0
	for _, pos := range order {
		if removed >= target {
			break
		}
		r, c := pos/n, pos%n
		if puzzle[r][c] == 0 {
			continue
		}
		old := puzzle[r][c]
		puzzle[r][c] = 0
		count, st := g.Solver.CountSolutions(puzzle.Clone(), 2)
		nodes += st.Nodes
		if count == 1 {
			removed++
		} else {
			puzzle[r][c] = old
		}
	}
	return puzzle, nodes
}

// fillRandom completes an empty grid into a full valid solution, trying
// candidate values in random order so each seed gives a distinct board.
func fillRandom(ctx context.Context, rng *rand.Rand, grid domain.Grid) bool {
	n := grid.Size()
	nums := make([]int, n)
	for i := range nums {
		nums[i] = i + 1
	}
	var dfs func(r, c int) bool
	dfs = func(r, c int) bool {
		if ctx.Err() != nil {
			return false
		}
		if r == n {
			return true
		}
		nr, nc := r, c+1
		if nc == n {
			nr, nc = r+1, 0
		}
		rng.Shuffle(n, func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
		for _, v := range nums {
			if allowed(grid, r, c, v) {
				grid[r][c] = v
				if dfs(nr, nc) {
					return true
				}
				grid[r][c] = 0
			}
		}
		return false
	}
	return dfs(0, 0)
}

// allowed mirrors the solver's row/col/box check locally for the fill.
func allowed(g domain.Grid, r, c, v int) bool {
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
