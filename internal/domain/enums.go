package domain

// Mode selects board size and clue count.
type Mode string

const (
	ModeEasy   Mode = "easy"   // 6×6, 18 clues
	ModeNormal Mode = "normal" // 9×9, 30 clues
)

// Size returns the board dimension for the mode.
func (m Mode) Size() int {
	if m == ModeEasy {
		return 6
	}
	return 9
}

// TargetClues returns how many givens the digger aims to keep.
func (m Mode) TargetClues() int {
	if m == ModeEasy {
		return 18
	}
	return 30
}

// Valid reports whether m is a playable mode.
func (m Mode) Valid() bool { return m == ModeEasy || m == ModeNormal }

// Status is a game's lifecycle state.
type Status string

const (
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
)
