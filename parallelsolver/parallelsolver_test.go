package parallelsolver

import (
	"testing"
	"time"

	"github.com/sudokuacs/solver/board"
)

const easyPuzzle = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func TestCoordinatorSolvesEasyPuzzleSingleColony(t *testing.T) {
	b, err := board.New(easyPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	if b.FixedCellCount() != b.CellCount() {
		t.Fatalf("expected propagation alone to solve the easy puzzle")
	}

	c := NewCoordinator(1, 10, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	solved, sol := c.Solve(b, 5*time.Second)
	if !solved {
		t.Fatalf("Coordinator.Solve did not solve an already-propagated puzzle")
	}
	if !b.CheckSolution(sol) {
		t.Errorf("returned solution fails CheckSolution")
	}
	if c.CommunicationOccurred() {
		t.Errorf("a single sub-colony should never reach a communication barrier")
	}
}

func TestCoordinatorSolvesEasyPuzzleMultiColony(t *testing.T) {
	b, err := board.New(easyPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}

	c := NewCoordinator(3, 5, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	solved, sol := c.Solve(b, 5*time.Second)
	if !solved {
		t.Fatalf("Coordinator.Solve did not solve an already-propagated puzzle")
	}
	if !b.CheckSolution(sol) {
		t.Errorf("returned solution fails CheckSolution")
	}
	if c.IterationsCompleted() < 1 {
		t.Errorf("IterationsCompleted() = %d, want >= 1", c.IterationsCompleted())
	}
}

func TestCoordinatorRespectsTimeout(t *testing.T) {
	// A puzzle with no clues at all cannot realistically be solved by a
	// handful of ants in a handful of iterations, so this exercises the
	// timeout path rather than the solved path.
	blank := stringOfDots(81)
	b, err := board.New(blank)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}

	c := NewCoordinator(2, 2, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	start := time.Now()
	_, _ = c.Solve(b, 150*time.Millisecond)
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Errorf("Solve took %v, expected to honor the short timeout", elapsed)
	}
}

func TestGenerateMatchArrayIsAPermutation(t *testing.T) {
	c := NewCoordinator(5, 1, 0.9, 0.9, 0.01, 0.005, 1)
	arr := c.generateMatchArray()
	seen := make(map[int]bool)
	for _, v := range arr {
		if v < 0 || v >= 5 || seen[v] {
			t.Fatalf("generateMatchArray produced an invalid permutation: %v", arr)
		}
		seen[v] = true
	}
}

func stringOfDots(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = '.'
	}
	return string(s)
}
