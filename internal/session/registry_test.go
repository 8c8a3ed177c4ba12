package session

import (
	"math/rand/v2"
	"sync"
	"testing"

	"minefield/internal/board"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(2, 2, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRegistryGetMissing(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get(42); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestRegistryCreateAndGet(t *testing.T) {
	reg := NewRegistry()

	a := reg.Create(testBoard(t))
	b := reg.Create(testBoard(t))
	if a.ID == b.ID {
		t.Fatalf("sessions share id %d", a.ID)
	}
	if a.StartedAt.IsZero() {
		t.Error("session has no start time")
	}

	got, err := reg.Get(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("have %v, want %v", got, a)
	}
	if reg.Count() != 2 {
		t.Fatalf("count: have %d, want 2", reg.Count())
	}
}

func TestRegistryDelete(t *testing.T) {
	reg := NewRegistry()
	s := reg.Create(testBoard(t))

	reg.Delete(s.ID)
	if _, err := reg.Get(s.ID); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}

	// Deleting a missing session is not an error
	reg.Delete(s.ID)
	if reg.Count() != 0 {
		t.Fatalf("count: have %d, want 0", reg.Count())
	}
}

func TestRegistryConcurrentCreate(t *testing.T) {
	const n = 32
	reg := NewRegistry()

	boards := make([]*board.Board, n)
	for i := range boards {
		boards[i] = testBoard(t)
	}

	var wg sync.WaitGroup
	for _, b := range boards {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Create(b)
		}()
	}
	wg.Wait()

	if reg.Count() != n {
		t.Fatalf("count: have %d, want %d", reg.Count(), n)
	}
	for id := int64(1); id <= n; id++ {
		if _, err := reg.Get(id); err != nil {
			t.Errorf("session %d: %v", id, err)
		}
	}
}
