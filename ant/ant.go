// Package ant implements C4: a single ant that constructs one candidate
// Sudoku solution cell-by-cell, guided by its parent colony's pheromone
// matrix and exploitation parameter.
package ant

import (
	"github.com/sudokuacs/solver/board"
	"github.com/sudokuacs/solver/valueset"
)

// Colony is the capability set an Ant needs from whatever colony owns it:
// the exploitation probability, a source of uniform randomness, pheromone
// readout, and the local pheromone update rule. Modeling this as an
// interface (rather than concrete inheritance from a base colony type)
// lets both SingleColony and SubColony serve ants identically.
type Colony interface {
	Q0() float64
	Random() float64
	Pher(cell, value int) float64
	LocalPheromoneUpdate(cell, value int)
}

// Ant holds a working board built up cell-by-cell from an initial
// propagated puzzle, a cursor over cells still to visit, and a count of
// cells it could not consistently fill.
type Ant struct {
	sol       board.Board
	iCell     int
	failCells int
	numCells  int
	numUnits  int
	parent    Colony
}

// New creates an ant bound to parent. Call InitSolution before use.
func New(parent Colony) *Ant {
	return &Ant{parent: parent}
}

// InitSolution deep-copies puzzle into the ant's working board and resets
// its cursor to startCell.
func (a *Ant) InitSolution(puzzle board.Board, startCell int) {
	a.sol = puzzle.Copy()
	a.iCell = startCell
	a.failCells = 0
	a.numCells = puzzle.CellCount()
	a.numUnits = puzzle.GetNumUnits()
}

// GetSolution returns the ant's current working board.
func (a *Ant) GetSolution() board.Board {
	return a.sol
}

// NumCellsFilled returns the total cell count minus the cells this ant has
// marked failed; cells not yet visited count as filled.
func (a *Ant) NumCellsFilled() int {
	return a.sol.CellCount() - a.failCells
}

// StepSolution advances the ant by one cell: it fills a.iCell (if not
// already fixed) with a pheromone-guided consistent value, or marks it
// failed if no consistent value exists, then advances the cursor.
func (a *Ant) StepSolution() {
	cell := a.sol.GetCell(a.iCell)
	if cell.Fixed() {
		a.advance()
		return
	}

	consistent := a.consistentCandidates(cell)
	if len(consistent) == 0 {
		a.failCells++
		a.advance()
		return
	}

	choice := a.choose(consistent)

	a.sol.SetCellDirect(a.iCell, valueset.Singleton(a.numUnits, choice+1))
	a.sol.IncrementFixedCells()
	a.parent.LocalPheromoneUpdate(a.iCell, choice)

	a.advance()
}

func (a *Ant) advance() {
	a.iCell = (a.iCell + 1) % a.numCells
}

// consistentCandidates returns, among cell's remaining candidate values,
// the 0-based ones not already held by a fixed peer in the same row,
// column, or box. Unfixed peers never constrain the choice.
func (a *Ant) consistentCandidates(cell valueset.ValueSet) []int {
	iRow := a.sol.RowForCell(a.iCell)
	iCol := a.sol.ColForCell(a.iCell)
	iBox := a.sol.BoxForCell(a.iCell)

	taken := valueset.Init(a.numUnits)
	for j := 0; j < a.numUnits; j++ {
		if k := a.sol.RowCell(iRow, j); k != a.iCell && a.sol.GetCell(k).Fixed() {
			taken = taken.Union(a.sol.GetCell(k))
		}
		if k := a.sol.ColCell(iCol, j); k != a.iCell && a.sol.GetCell(k).Fixed() {
			taken = taken.Union(a.sol.GetCell(k))
		}
		if k := a.sol.BoxCell(iBox, j); k != a.iCell && a.sol.GetCell(k).Fixed() {
			taken = taken.Union(a.sol.GetCell(k))
		}
	}

	consistentSet := cell.Minus(taken)
	var consistent []int
	for v := 1; v <= a.numUnits; v++ {
		if consistentSet.Has(v) {
			consistent = append(consistent, v-1)
		}
	}
	return consistent
}

// choose picks one of the (0-based) consistent candidate values per the
// ACS q0-greedy / roulette-wheel rule.
func (a *Ant) choose(consistent []int) int {
	if a.parent.Random() < a.parent.Q0() {
		best := consistent[0]
		bestPher := a.parent.Pher(a.iCell, best)
		for _, v := range consistent[1:] {
			if p := a.parent.Pher(a.iCell, v); p > bestPher {
				bestPher = p
				best = v
			}
		}
		return best
	}

	total := 0.0
	for _, v := range consistent {
		total += a.parent.Pher(a.iCell, v)
	}
	if total <= 0 {
		return consistent[0]
	}
	target := a.parent.Random() * total
	cumulative := 0.0
	for _, v := range consistent {
		cumulative += a.parent.Pher(a.iCell, v)
		if cumulative >= target {
			return v
		}
	}
	return consistent[len(consistent)-1]
}
