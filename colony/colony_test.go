package colony

import (
	"testing"
	"time"

	"github.com/sudokuacs/solver/board"
)

const easyPuzzle = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func TestSingleColonySolvesEasyPuzzle(t *testing.T) {
	b, err := board.New(easyPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	// Propagation alone should already have solved this puzzle, so the
	// colony only needs one iteration to confirm it.
	if b.FixedCellCount() != b.CellCount() {
		t.Fatalf("expected propagation alone to solve the easy puzzle")
	}

	c := NewSingleColony(10, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	solved, sol := c.Solve(b, 5*time.Second)
	if !solved {
		t.Fatalf("SingleColony.Solve did not solve an already-propagated puzzle")
	}
	if !b.CheckSolution(sol) {
		t.Errorf("returned solution fails CheckSolution")
	}
	if c.IterationsCompleted() < 1 {
		t.Errorf("IterationsCompleted() = %d, want >= 1", c.IterationsCompleted())
	}
}

func TestPheromoneStaysNonNegativeAfterLocalUpdate(t *testing.T) {
	b, err := board.New(easyPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	c := NewSingleColony(1, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	c.initPheromone(b.CellCount(), b.GetNumUnits())

	before := c.Pher(0, 0)
	c.LocalPheromoneUpdate(0, 0)
	after := c.Pher(0, 0)

	if after < 0 {
		t.Errorf("pheromone went negative: %v", after)
	}
	lo, hi := before, c.pher0
	if lo > hi {
		lo, hi = hi, lo
	}
	if after < lo || after > hi {
		t.Errorf("LocalPheromoneUpdate result %v outside [%v, %v]", after, lo, hi)
	}
}

func TestSubColonyCommunicationUpdateTouchesOnlyContributedCells(t *testing.T) {
	b, err := board.New(easyPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	s := NewSubColony(0, 5, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	s.Initialize(b)
	s.RunIteration(b)

	// No peer solutions received yet: received scores are 0, so only the
	// local iteration-best should contribute.
	s.UpdatePheromoneWithCommunication()

	if s.iterationBestScore == 0 {
		t.Fatalf("expected a non-trivial iteration-best score")
	}
	for i := 0; i < s.numCells; i++ {
		touched := s.iterationBest.GetCell(i).Index()
		for j := 0; j < s.numUnits; j++ {
			if j != touched && s.pher[i][j] != s.pher0 {
				t.Errorf("pher[%d][%d] = %v changed although no source fixes that value", i, j, s.pher[i][j])
			}
		}
	}
}

func TestReceiveSlotsRecordScore(t *testing.T) {
	b, err := board.New(easyPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	s := NewSubColony(0, 5, 0.9, 0.9, 1.0/float64(b.CellCount()), 0.005, 1)
	s.Initialize(b)

	peer := b.Copy()
	s.ReceiveIterationBest(peer)
	if s.receivedIterationBestScore != peer.FixedCellCount() {
		t.Errorf("receivedIterationBestScore = %d, want %d", s.receivedIterationBestScore, peer.FixedCellCount())
	}

	s.ReceiveBestSol(peer)
	if s.receivedBestSolScore != peer.FixedCellCount() {
		t.Errorf("receivedBestSolScore = %d, want %d", s.receivedBestSolScore, peer.FixedCellCount())
	}
}
