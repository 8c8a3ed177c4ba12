package session

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"minefield/internal/board"
)

// Session couples one live board with its timing metadata. The embedded
// mutex is the single mutual-exclusion boundary around the board: the
// engine itself is synchronous, so serializing whole operations here is
// all the locking the grid sizes involved ever need.
type Session struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time

	mu    sync.Mutex
	board *board.Board
}

// Do runs f with exclusive access to the session's board. When the game
// has just finished, the end timestamp is recorded once.
func (s *Session) Do(f func(*board.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.board)
	if s.board.State() != board.Continue && s.EndedAt.IsZero() {
		s.EndedAt = time.Now().UTC()
	}
}

// Open reveals a cell, Flag toggles a flag marker. Thin locked wrappers
// over the board operations of the same name.
func (s *Session) Open(x, y int) {
	s.Do(func(b *board.Board) { b.Open(x, y) })
}

func (s *Session) Flag(x, y int) (flagged bool, ok bool) {
	s.Do(func(b *board.Board) { flagged, ok = b.Flag(x, y) })
	return
}

// Snapshot is the wire form of a session. The grid holds one string per
// row with one rune per cell: '.' covered, '*' flagged, '0'..'8' the
// adjacency digit of an uncovered cell, and 'X' for every mine once the
// game is over.
type Snapshot struct {
	SessionID string   `json:"session_id"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	State     string   `json:"state"`
	MinesLeft int      `json:"mines_left"`
	Flagged   int      `json:"flagged"`
	Grid      []string `json:"grid"`
	StartedAt int64    `json:"started_at"`
	EndedAt   *int64   `json:"ended_at,omitempty"`
}

// Snapshot renders the player-visible view using only the board's public
// queries; in particular, mines become visible after the game ends by
// asking HasMine for every cell rather than by mutating the board.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board
	over := b.State() != board.Continue

	grid := make([]string, b.Height())
	for y := range b.Height() {
		var row strings.Builder
		for x := range b.Width() {
			mine, _ := b.HasMine(x, y)
			state, _ := b.CellState(x, y)
			switch {
			case over && mine:
				row.WriteByte('X')
			case state == board.Flagged:
				row.WriteByte('*')
			case state == board.Covered:
				row.WriteByte('.')
			default:
				n, _ := b.AdjacentMines(x, y)
				row.WriteString(strconv.Itoa(n))
			}
		}
		grid[y] = row.String()
	}

	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}

	return Snapshot{
		SessionID: strconv.FormatInt(s.ID, 10),
		Width:     b.Width(),
		Height:    b.Height(),
		State:     b.State().String(),
		MinesLeft: b.Mines() - b.Flagged(),
		Flagged:   b.Flagged(),
		Grid:      grid,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

// Session implements [json.Marshaler]
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}
