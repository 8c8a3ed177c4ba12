package board

import (
	"fmt"
	"strings"
)

// Board implements [fmt.Stringer]. The dump is a debug aid, not part of
// the engine contract: a column header, then one row per line with the
// two-letter cell code followed by its adjacent mine count.
//
//	   0   1
//	0 CO1 CX0
//	1 CO1 CO1
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprint(&sb, "  ")
	for x := range b.width {
		fmt.Fprintf(&sb, " %-3d", x)
	}
	fmt.Fprint(&sb, "\n")
	for y := range b.height {
		fmt.Fprintf(&sb, "%d ", y)
		for x := range b.width {
			n, _ := b.AdjacentMines(x, y)
			fmt.Fprintf(&sb, "%s%d ", b.cells[y*b.width+x], n)
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}

// Player renders what the player is allowed to see: covered cells as
// dots, flags as asterisks, uncovered cells as their adjacency digit.
// After the game is over every mine is shown as an X.
func (b *Board) Player() string {
	over := b.state != Continue
	var sb strings.Builder
	for y := range b.height {
		for x := range b.width {
			c := b.cells[y*b.width+x]
			var ch string
			switch {
			case over && c.Mine:
				ch = "X"
			case c.State == Flagged:
				ch = "*"
			case c.State == Covered:
				ch = "."
			default:
				n, _ := b.AdjacentMines(x, y)
				ch = fmt.Sprint(n)
			}
			fmt.Fprint(&sb, ch+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
