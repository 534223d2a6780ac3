package board

import (
	"sync/atomic"
	"time"

	"github.com/sudokuacs/solver/valueset"
)

// CP timing instrumentation (spec §4.3). Process-wide, reset per solve
// request via ResetCPTiming. initialCPMicros/antCPMicros accumulate wall
// clock time spent inside Rule1/Rule2 bodies (excluding recursion) as
// atomic integer microseconds, since Go has no atomic float type — the
// same translation the spec's design notes call for.
var (
	initialCPMicros atomic.Int64
	antCPMicros     atomic.Int64
	cpCallCount     atomic.Int32
	inInitialCP     atomic.Bool
)

// ResetCPTiming zeroes all CP timing counters. Call before a fresh solve.
func ResetCPTiming() {
	initialCPMicros.Store(0)
	antCPMicros.Store(0)
	cpCallCount.Store(0)
	inInitialCP.Store(false)
}

// GetInitialCPTime returns time spent in constraint propagation during
// initial board construction.
func GetInitialCPTime() time.Duration {
	return time.Duration(initialCPMicros.Load()) * time.Microsecond
}

// GetAntCPTime returns time spent in constraint propagation triggered by
// ant construction.
func GetAntCPTime() time.Duration {
	return time.Duration(antCPMicros.Load()) * time.Microsecond
}

// GetCPCallCount returns the number of SetCellAndPropagate calls made
// outside the initial-construction phase.
func GetCPCallCount() int {
	return int(cpCallCount.Load())
}

func beginInitialCP() { inInitialCP.Store(true) }
func endInitialCP()   { inInitialCP.Store(false) }

func addCPTime(d time.Duration) {
	micros := d.Microseconds()
	if inInitialCP.Load() {
		initialCPMicros.Add(micros)
	} else {
		antCPMicros.Add(micros)
	}
}

// Rule1Elimination implements the elimination rule (spec §4.3): removes
// from the target cell every value already fixed in its row, column, or
// box. If exactly one value remains, the cell is fixed and propagation
// cascades via SetCellAndPropagate. Returns true iff the cell was fixed by
// this call.
func Rule1Elimination(b *Board, cellIndex int) bool {
	start := time.Now()
	cell := b.GetCell(cellIndex)

	if cell.Empty() || cell.Fixed() {
		addCPTime(time.Since(start))
		return false
	}

	numUnits := b.GetNumUnits()
	iBox := b.BoxForCell(cellIndex)
	iCol := b.ColForCell(cellIndex)
	iRow := b.RowForCell(cellIndex)

	rowFixed := valueset.Init(numUnits)
	colFixed := valueset.Init(numUnits)
	boxFixed := valueset.Init(numUnits)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != cellIndex && b.GetCell(k).Fixed() {
			boxFixed = boxFixed.Union(b.GetCell(k))
		}
		if k := b.ColCell(iCol, j); k != cellIndex && b.GetCell(k).Fixed() {
			colFixed = colFixed.Union(b.GetCell(k))
		}
		if k := b.RowCell(iRow, j); k != cellIndex && b.GetCell(k).Fixed() {
			rowFixed = rowFixed.Union(b.GetCell(k))
		}
	}

	fixedUnion := rowFixed.Union(colFixed).Union(boxFixed)
	remaining := fixedUnion.Complement().Intersect(cell)

	addCPTime(time.Since(start))

	if remaining.Fixed() {
		SetCellAndPropagate(b, cellIndex, remaining)
		return true
	}
	b.SetCellDirect(cellIndex, remaining)
	return false
}

// Rule2HiddenSingle implements the hidden single rule (spec §4.3): if any
// candidate value of the target cell can appear nowhere else in its row,
// column, or box, the cell is fixed to that value. Row is tried first,
// then column, then box. Returns true iff the cell was fixed by this call.
func Rule2HiddenSingle(b *Board, cellIndex int) bool {
	start := time.Now()
	cell := b.GetCell(cellIndex)

	if cell.Empty() || cell.Fixed() {
		addCPTime(time.Since(start))
		return false
	}

	numUnits := b.GetNumUnits()
	iBox := b.BoxForCell(cellIndex)
	iCol := b.ColForCell(cellIndex)
	iRow := b.RowForCell(cellIndex)

	rowAll := valueset.Init(numUnits)
	colAll := valueset.Init(numUnits)
	boxAll := valueset.Init(numUnits)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != cellIndex {
			boxAll = boxAll.Union(b.GetCell(k))
		}
		if k := b.ColCell(iCol, j); k != cellIndex {
			colAll = colAll.Union(b.GetCell(k))
		}
		if k := b.RowCell(iRow, j); k != cellIndex {
			rowAll = rowAll.Union(b.GetCell(k))
		}
	}

	addCPTime(time.Since(start))

	if v := cell.Minus(rowAll); v.Fixed() {
		SetCellAndPropagate(b, cellIndex, v)
		return true
	}
	if v := cell.Minus(colAll); v.Fixed() {
		SetCellAndPropagate(b, cellIndex, v)
		return true
	}
	if v := cell.Minus(boxAll); v.Fixed() {
		SetCellAndPropagate(b, cellIndex, v)
		return true
	}
	return false
}

// PropagateConstraints applies Rule1 then Rule2 to cellIndex, and marks the
// cell infeasible if it ends up empty.
func PropagateConstraints(b *Board, cellIndex int) {
	cell := b.GetCell(cellIndex)
	if cell.Empty() || cell.Fixed() {
		return
	}
	if Rule1Elimination(b, cellIndex) {
		return
	}
	Rule2HiddenSingle(b, cellIndex)
	if b.GetCell(cellIndex).Empty() {
		b.IncrementInfeasible()
	}
}

// SetCellAndPropagate sets cell i to value and cascades PropagateConstraints
// to every other cell sharing its row, column, or box. A no-op if the cell
// is already fixed.
func SetCellAndPropagate(b *Board, i int, value valueset.ValueSet) {
	if b.GetCell(i).Fixed() {
		return
	}

	b.SetCellDirect(i, value)
	b.IncrementFixedCells()

	if !inInitialCP.Load() {
		cpCallCount.Add(1)
	}

	numUnits := b.GetNumUnits()
	iBox := b.BoxForCell(i)
	iCol := b.ColForCell(i)
	iRow := b.RowForCell(i)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != i {
			PropagateConstraints(b, k)
		}
		if k := b.ColCell(iCol, j); k != i {
			PropagateConstraints(b, k)
		}
		if k := b.RowCell(iRow, j); k != i {
			PropagateConstraints(b, k)
		}
	}
}
