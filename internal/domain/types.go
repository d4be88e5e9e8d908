package domain

import (
	"errors"
	"time"
)

// Grid is a square board; 0 marks an empty cell, values run 1..Size().
type Grid [][]int

// NewGrid allocates an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]int, size)
	}
	return g
}

// Size returns the board dimension.
func (g Grid) Size() int { return len(g) }

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i := range g {
		out[i] = make([]int, len(g[i]))
		copy(out[i], g[i])
	}
	return out
}

// Empties counts zero cells.
func (g Grid) Empties() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

// Clues counts nonzero cells.
func (g Grid) Clues() int { return len(g)*len(g) - g.Empties() }

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// BoxDims maps a board size to its block shape. Only the listed sizes
// are playable; the shape is fixed per size, never derived.
func BoxDims(size int) (rows, cols int, ok bool) {
	switch size {
	case 6:
		return 2, 3, true
	case 9:
		return 3, 3, true
	default:
		return 0, 0, false
	}
}

// Session is an anonymous browser session that owns games.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Game is a persisted play record: the immutable puzzle and solution
// plus the mutable working board and its derived state.
type Game struct {
	ID        string      `json:"id"`
	SessionID string      `json:"-"`
	Name      string      `json:"name"`
	Mode      Mode        `json:"mode"`
	Status    Status      `json:"status"`
	Puzzle    Grid        `json:"puzzle"`
	Solution  Grid        `json:"-"`
	Board     Grid        `json:"board"`
	Conflicts []CellCoord `json:"conflicts"`
	Hint      *CellCoord  `json:"hint,omitempty"`
	Clues     int         `json:"clues"`
	StartedAt time.Time   `json:"startedAt"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// IsClue reports whether (r, c) was given in the initial puzzle.
func (g *Game) IsClue(r, c int) bool { return g.Puzzle[r][c] != 0 }

// Elapsed is the play time since the game started or was last reset.
func (g *Game) Elapsed(now time.Time) time.Duration { return now.Sub(g.StartedAt) }

// GameMeta is a lightweight listing entry.
type GameMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mode      Mode      `json:"mode"`
	Status    Status    `json:"status"`
	Clues     int       `json:"clues"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned for unknown or foreign-session records.
var ErrNotFound = errors.New("not found")
