package board

// CellState describes what the player can see of a single cell.
type CellState int8

const (
	Covered CellState = iota
	Flagged
	Uncovered
)

func (s CellState) String() string {
	switch s {
	case Covered:
		return "C"
	case Flagged:
		return "F"
	case Uncovered:
		return "U"
	default:
		return "!"
	}
}

// GameState is the whole-board outcome, distinct from per-cell state.
type GameState int8

const (
	Continue GameState = iota
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case Continue:
		return "continue"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "!"
	}
}

// Cell is one grid position. Mine is fixed at board creation and never
// changes afterwards; State is mutated only by Board.Open and Board.Flag.
type Cell struct {
	State CellState
	Mine  bool
}

// Cell implements [fmt.Stringer]: state letter + mine letter, e.g. "CX"
// for a covered mine or "UO" for an uncovered safe cell.
func (c Cell) String() string {
	m := "O"
	if c.Mine {
		m = "X"
	}
	return c.State.String() + m
}

// Point is a pair of board coordinates.
type Point struct {
	X, Y int
}
