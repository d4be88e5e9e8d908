package validator

import (
	"sort"

	"svw.info/playsudoku/internal/domain"
)

// Conflict scans the whole board and reports every cell participating in
// a row, column, or box duplicate. Membership is a set: a cell conflicting
// in both its row and its box appears once.
type Conflict struct{}

func New() *Conflict { return &Conflict{} }

func (v *Conflict) Conflicts(g domain.Grid) []domain.CellCoord {
	n := g.Size()
	marked := make(map[domain.CellCoord]struct{})

	mark := func(cells []domain.CellCoord) {
		for _, c := range cells {
			marked[c] = struct{}{}
		}
	}
	// bucket holds the positions of each nonzero value within one group;
	// any value seen more than once marks all of its occupants.
	flush := func(bucket map[int][]domain.CellCoord) {
		for _, cells := range bucket {
			if len(cells) > 1 {
				mark(cells)
			}
		}
	}

	// rows
	for r := 0; r < n; r++ {
		bucket := make(map[int][]domain.CellCoord)
		for c := 0; c < n; c++ {
			if val := g[r][c]; val != 0 {
				bucket[val] = append(bucket[val], domain.CellCoord{Row: r, Col: c})
			}
		}
		flush(bucket)
	}
	// cols
	for c := 0; c < n; c++ {
		bucket := make(map[int][]domain.CellCoord)
		for r := 0; r < n; r++ {
			if val := g[r][c]; val != 0 {
				bucket[val] = append(bucket[val], domain.CellCoord{Row: r, Col: c})
			}
		}
		flush(bucket)
	}
	// boxes
	br, bc, ok := domain.BoxDims(n)
	if !ok {
		return nil
	}
	for r0 := 0; r0 < n; r0 += br {
		for c0 := 0; c0 < n; c0 += bc {
			bucket := make(map[int][]domain.CellCoord)
			for dr := 0; dr < br; dr++ {
				for dc := 0; dc < bc; dc++ {
					if val := g[r0+dr][c0+dc]; val != 0 {
						bucket[val] = append(bucket[val], domain.CellCoord{Row: r0 + dr, Col: c0 + dc})
					}
				}
			}
			flush(bucket)
		}
	}

	out := make([]domain.CellCoord, 0, len(marked))
	for c := range marked {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Contains reports whether cell is in the conflict list.
func Contains(conflicts []domain.CellCoord, cell domain.CellCoord) bool {
	for _, c := range conflicts {
		if c == cell {
			return true
		}
	}
	return false
}
