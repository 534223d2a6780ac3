// Package colony implements C5 (single-colony ACS) and C6 (SubColony):
// the pheromone matrix, ant population, and the iteration loop that
// constructs and reinforces candidate Sudoku solutions.
package colony

import (
	"math/rand"

	"github.com/sudokuacs/solver/ant"
	"github.com/sudokuacs/solver/board"
)

// core holds the machinery shared by SingleColony and SubColony: the
// pheromone matrix, the ant population, and the colony-owned RNG that ants
// borrow through the ant.Colony capability interface. Ants depend only on
// this small interface rather than on a concrete colony type, per the
// spec's guidance to avoid modeling SubColony as "SingleColony plus extra
// fields" through inheritance.
type core struct {
	numCells int
	numUnits int
	q0       float64
	rho      float64
	pher0    float64
	pher     [][]float64
	ants     []*ant.Ant
	rng      *rand.Rand
}

func newCore(numAnts int, q0, rho, pher0 float64, seed int64) *core {
	c := &core{
		q0:    q0,
		rho:   rho,
		pher0: pher0,
		rng:   rand.New(rand.NewSource(seed)),
	}
	c.ants = make([]*ant.Ant, numAnts)
	for i := range c.ants {
		c.ants[i] = ant.New(c)
	}
	return c
}

// initPheromone (re)allocates the pheromone matrix, uniformly seeded to
// pher0 = 1/numCells.
func (c *core) initPheromone(numCells, numUnits int) {
	c.numCells = numCells
	c.numUnits = numUnits
	c.pher = make([][]float64, numCells)
	for i := range c.pher {
		row := make([]float64, numUnits)
		for j := range row {
			row[j] = c.pher0
		}
		c.pher[i] = row
	}
}

// Q0 returns the exploitation probability.
func (c *core) Q0() float64 { return c.q0 }

// Random returns a uniform sample in [0, 1).
func (c *core) Random() float64 { return c.rng.Float64() }

// Pher returns the pheromone level for assigning value (0-based) to cell.
func (c *core) Pher(cell, value int) float64 { return c.pher[cell][value] }

// LocalPheromoneUpdate applies the ACS local update rule after an ant
// commits to a value: τ(cell,value) ← 0.9·τ(cell,value) + 0.1·pher0,
// computed as τ + 0.1·(pher0 − τ) so that the rounded result stays between
// the old value and pher0.
func (c *core) LocalPheromoneUpdate(cell, value int) {
	c.pher[cell][value] += 0.1 * (c.pher0 - c.pher[cell][value])
}

// PherAdd computes the pheromone deposit amount for a solution with
// numCellsFixed cells filled: numCells / (numCells - numCellsFixed).
func (c *core) PherAdd(numCellsFixed int) float64 {
	return float64(c.numCells) / float64(c.numCells-numCellsFixed)
}

// constructSolutions runs one round of ant construction (spec §4.5 steps
// 1-2): every ant starts from a random cell and steps through the whole
// puzzle, then the best-filled ant's index and fill count are returned.
func (c *core) constructSolutions(puzzle board.Board) (bestIdx, bestVal int) {
	for _, a := range c.ants {
		a.InitSolution(puzzle, c.rng.Intn(c.numCells))
	}
	for i := 0; i < c.numCells; i++ {
		for _, a := range c.ants {
			a.StepSolution()
		}
	}
	for i, a := range c.ants {
		if a.NumCellsFilled() > bestVal {
			bestVal = a.NumCellsFilled()
			bestIdx = i
		}
	}
	return bestIdx, bestVal
}
