package ant

import (
	"testing"

	"github.com/sudokuacs/solver/board"
)

// fakeColony is a minimal deterministic Colony used to drive Ant in tests
// without depending on the colony package.
type fakeColony struct {
	q0      float64
	draws   []float64
	draw    int
	pher    map[[2]int]float64
	updates [][2]int
}

func newFakeColony(numCells, numUnits int, q0 float64) *fakeColony {
	return &fakeColony{q0: q0, pher: make(map[[2]int]float64)}
}

func (c *fakeColony) Q0() float64 { return c.q0 }

func (c *fakeColony) Random() float64 {
	if c.draw < len(c.draws) {
		v := c.draws[c.draw]
		c.draw++
		return v
	}
	return 0.5
}

func (c *fakeColony) Pher(cell, value int) float64 {
	if v, ok := c.pher[[2]int{cell, value}]; ok {
		return v
	}
	return 1.0
}

func (c *fakeColony) LocalPheromoneUpdate(cell, value int) {
	c.updates = append(c.updates, [2]int{cell, value})
}

func TestAntNeverAssignsAConflictingValue(t *testing.T) {
	b, err := board.New(wikipediaPuzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}

	colony := newFakeColony(b.CellCount(), b.GetNumUnits(), 1.0) // always greedy
	a := New(colony)
	a.InitSolution(b, 0)

	for i := 0; i < b.CellCount(); i++ {
		a.StepSolution()
	}

	sol := a.GetSolution()
	if a.NumCellsFilled()+countUnfixed(sol) != sol.CellCount() {
		t.Fatalf("NumCellsFilled()=%d inconsistent with unfixed cell count", a.NumCellsFilled())
	}
	// Whatever the ant filled must not contradict a peer's fixed value: a
	// complete check_solution pass only makes sense if every cell filled,
	// but partial progress must still respect uniqueness within each unit.
	for i := 0; i < sol.CellCount(); i++ {
		if !sol.GetCell(i).Fixed() {
			continue
		}
		row, col, box := sol.RowForCell(i), sol.ColForCell(i), sol.BoxForCell(i)
		for j := 0; j < sol.GetNumUnits(); j++ {
			for _, k := range []int{sol.RowCell(row, j), sol.ColCell(col, j), sol.BoxCell(box, j)} {
				if k != i && sol.GetCell(k).Fixed() && sol.GetCell(k).Index() == sol.GetCell(i).Index() {
					t.Errorf("cells %d and %d share a unit and both hold value %d", i, k, sol.GetCell(i).Index()+1)
				}
			}
		}
	}
}

const wikipediaPuzzle = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func countUnfixed(b board.Board) int {
	n := 0
	for i := 0; i < b.CellCount(); i++ {
		if !b.GetCell(i).Fixed() {
			n++
		}
	}
	return n
}

func TestAntDoesNotFailAlreadyFixedCell(t *testing.T) {
	// Row 0 has 1..8 as clues, so propagation fixes cell (0,8) to 9. An ant
	// stepping onto that already-fixed cell must just advance, without
	// counting it as failed.
	puzzle := "12345678." + stringOfDots(72)
	b, err := board.New(puzzle)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	if !b.GetCell(8).Fixed() {
		// Constraint propagation alone should have solved this single cell.
		t.Fatalf("expected cell 8 to already be fixed by propagation")
	}

	colony := newFakeColony(b.CellCount(), b.GetNumUnits(), 1.0)
	a := New(colony)
	a.InitSolution(b, 8)
	a.StepSolution() // cell already fixed: should just advance, not fail

	if a.NumCellsFilled() != b.CellCount() {
		t.Errorf("NumCellsFilled() = %d, want %d", a.NumCellsFilled(), b.CellCount())
	}
}

func stringOfDots(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = '.'
	}
	return string(out)
}
