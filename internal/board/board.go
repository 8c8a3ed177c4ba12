package board

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// MaxDim bounds board dimensions. The presentation layer addresses cells
// with 8-bit coordinates, so anything wider would wrap on its side.
const MaxDim = 255

// MineChance is the denominator of the per-cell mine probability: each
// cell is independently a mine with probability 1/4. No minimum or
// maximum mine count is guaranteed; a board may legally contain zero
// mines or consist of nothing but mines.
const MineChance = 4

// Board owns a rectangular grid of cells, the mine layout and the overall
// game state. It is not safe for concurrent use; callers that share a
// Board across goroutines must wrap it behind a single mutex.
type Board struct {
	width, height int
	cells         []Cell
	state         GameState
}

// New creates a board with every cell covered and mined by an independent
// 1-in-[MineChance] trial drawn from r. Passing a seeded r makes the
// layout reproducible.
func New(width, height int, r *rand.Rand) (*Board, error) {
	if width < 1 || width > MaxDim {
		return nil, fmt.Errorf("board width must be in [1, %d], got %d", MaxDim, width)
	}
	if height < 1 || height > MaxDim {
		return nil, fmt.Errorf("board height must be in [1, %d], got %d", MaxDim, height)
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{State: Covered, Mine: r.IntN(MineChance) == 0}
	}
	return &Board{
		width:  width,
		height: height,
		cells:  cells,
		state:  Continue,
	}, nil
}

func (b *Board) Width() int       { return b.width }
func (b *Board) Height() int      { return b.height }
func (b *Board) State() GameState { return b.state }

func (b *Board) cell(x, y int) (*Cell, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return nil, false
	}
	return &b.cells[y*b.width+x], true
}

// CellState reports the state of the cell at x:y. ok is false iff the
// coordinates are out of bounds.
func (b *Board) CellState(x, y int) (state CellState, ok bool) {
	c, ok := b.cell(x, y)
	if !ok {
		return 0, false
	}
	return c.State, true
}

// HasMine reports whether the cell at x:y is mined. ok is false iff the
// coordinates are out of bounds.
func (b *Board) HasMine(x, y int) (mine bool, ok bool) {
	c, ok := b.cell(x, y)
	if !ok {
		return false, false
	}
	return c.Mine, true
}

// AdjacentMines counts mined neighbors of the cell at x:y. It is defined
// for mined cells too, which full-reveal displays rely on. ok is false
// iff the coordinates are out of bounds.
func (b *Board) AdjacentMines(x, y int) (count int, ok bool) {
	if _, ok := b.cell(x, y); !ok {
		return 0, false
	}
	for _, p := range b.Neighbors(x, y) {
		if b.cells[p.Y*b.width+p.X].Mine {
			count++
		}
	}
	return count, true
}

// Mines counts all mined cells on the board.
func (b *Board) Mines() (count int) {
	for _, c := range b.cells {
		if c.Mine {
			count++
		}
	}
	return
}

// Flagged counts all cells currently flagged.
func (b *Board) Flagged() (count int) {
	for _, c := range b.cells {
		if c.State == Flagged {
			count++
		}
	}
	return
}

// Neighbors returns the up-to-8 in-bounds neighbors of x:y in row-major
// order within the 3x3 block. Returns nil for out-of-bounds coordinates.
// Corner cells have 3 neighbors, edge cells 5, interior cells 8.
func (b *Board) Neighbors(x, y int) []Point {
	if _, ok := b.cell(x, y); !ok {
		return nil
	}
	adjacent := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if xx >= 0 && xx < b.width && yy >= 0 && yy < b.height {
				adjacent = append(adjacent, Point{xx, yy})
			}
		}
	}
	return adjacent
}

// Open reveals the cell at x:y. Opening a mine loses the game on the spot
// and reveals nothing else; revealing the rest of the mines for display
// is the caller's business via [Board.HasMine]. Opening a safe cell
// cascades through the zero-adjacent-mines region around it and then
// re-checks the win condition. Out-of-bounds coordinates and finished
// games are no-ops.
func (b *Board) Open(x, y int) {
	c, ok := b.cell(x, y)
	if !ok || b.state != Continue {
		return
	}

	Log.WithFields(logrus.Fields{"x": x, "y": y, "cell": c}).Trace("open")

	if c.Mine {
		b.state = Lost
		return
	}

	b.reveal(x, y)

	// Won iff no safe cell remains covered. This scan is the only place
	// the board can transition to Won.
	for _, c := range b.cells {
		if c.State == Covered && !c.Mine {
			return
		}
	}
	b.state = Won
}

// reveal floods outwards from a known-safe origin. An explicit stack
// stands in for recursion so that arbitrarily large safe regions cannot
// blow the call stack; the visited slice guards against cycles.
func (b *Board) reveal(x, y int) {
	visited := make([]bool, len(b.cells))
	stack := []Point{{x, y}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i := p.Y*b.width + p.X
		if visited[i] {
			continue
		}
		visited[i] = true
		b.cells[i].State = Uncovered

		adjacent := b.Neighbors(p.X, p.Y)
		mines := 0
		for _, n := range adjacent {
			if b.cells[n.Y*b.width+n.X].Mine {
				mines++
			}
		}

		Log.WithFields(logrus.Fields{
			"cell":  b.cells[i],
			"mines": mines,
		}).Trace("visit")

		if mines > 0 {
			// A numbered cell halts the cascade.
			continue
		}
		for _, n := range adjacent {
			if b.cells[n.Y*b.width+n.X].State != Uncovered {
				stack = append(stack, n)
			}
		}
	}
}

// Flag toggles the cell at x:y between Covered and Flagged. flagged
// reports the state after the toggle. ok is false, with no mutation, if
// the coordinates are out of bounds or the cell is already uncovered.
func (b *Board) Flag(x, y int) (flagged bool, ok bool) {
	c, ok := b.cell(x, y)
	if !ok {
		return false, false
	}
	switch c.State {
	case Covered:
		c.State = Flagged
		return true, true
	case Flagged:
		c.State = Covered
		return false, true
	default:
		return false, false
	}
}
