package hint

import (
	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/ports"
	"svw.info/playsudoku/internal/validator"
)

// Singles suggests the first empty cell (row-major) that has exactly one
// candidate value not conflicting at that cell. First qualifying cell
// wins; no ranking by constraint tightness.
type Singles struct {
	Validator ports.Validator
}

func NewSingles(v ports.Validator) *Singles { return &Singles{Validator: v} }

func (h *Singles) Hint(g domain.Grid) (domain.CellCoord, bool) {
	n := g.Size()
	trial := g.Clone()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if trial[r][c] != 0 {
				continue
			}
			cell := domain.CellCoord{Row: r, Col: c}
			viable := 0
			for v := 1; v <= n; v++ {
				trial[r][c] = v
				conflicting := validator.Contains(h.Validator.Conflicts(trial), cell)
				trial[r][c] = 0
				if !conflicting {
					viable++
					if viable > 1 {
						break
					}
				}
			}
			if viable == 1 {
				return cell, true
			}
		}
	}
	return domain.CellCoord{}, false
}
