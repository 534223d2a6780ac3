// Package board implements the Sudoku grid model (C2) and the constraint
// propagation preprocessor (C3): a bitset-per-cell board with geometry
// helpers, puzzle-string parsing, and the Rule1/Rule2 logical deduction
// cascade that narrows candidate sets before the ant colony search begins.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sudokuacs/solver/valueset"
)

// ErrInvalidPuzzleSize is returned when a puzzle string's length does not
// correspond to a supported order (81, 256, 625, 1296, 2401, 4096).
var ErrInvalidPuzzleSize = errors.New("board: invalid puzzle size")

// ErrInvalidClue is returned when a puzzle string contains a character
// outside the alphabet for its detected order.
var ErrInvalidClue = errors.New("board: invalid clue character for puzzle order")

// orderForLength maps a puzzle string length to its Sudoku order.
func orderForLength(n int) (int, error) {
	switch n {
	case 81:
		return 3, nil
	case 256:
		return 4, nil
	case 625:
		return 5, nil
	case 1296:
		return 6, nil
	case 2401:
		return 7, nil
	case 4096:
		return 8, nil
	default:
		return 0, ErrInvalidPuzzleSize
	}
}

// Board is the grid of cells (ValueSets), its geometry, and the counters
// maintained by the propagator. Board has value semantics: Copy performs a
// deep copy, and a Board should be treated as read-only once handed to a
// solver except through explicit mutation entry points.
type Board struct {
	cells         []valueset.ValueSet
	order         int
	numUnits      int
	numCells      int
	numFixedCells int
	numInfeasible int
}

// New parses a puzzle string into a Board, running constraint propagation
// (SetCellAndPropagate) on every clue as it is installed.
func New(puzzleString string) (Board, error) {
	order, err := orderForLength(len(puzzleString))
	if err != nil {
		return Board{}, err
	}

	numUnits := order * order
	numCells := numUnits * numUnits

	b := Board{
		cells:    make([]valueset.ValueSet, numCells),
		order:    order,
		numUnits: numUnits,
		numCells: numCells,
	}
	full := valueset.Full(numUnits)
	for i := range b.cells {
		b.cells[i] = full
	}

	beginInitialCP()
	defer endInitialCP()

	for i := 0; i < numCells; i++ {
		c := puzzleString[i]
		if c == '.' {
			continue
		}
		value, err := decodeClue(order, numUnits, c)
		if err != nil {
			return Board{}, err
		}
		clue := valueset.Singleton(numUnits, value)
		if b.cells[i].Intersect(clue).Empty() {
			// Propagation from earlier clues has already ruled this value
			// out for cell i: the clues contradict each other.
			b.IncrementInfeasible()
		}
		SetCellAndPropagate(&b, i, clue)
	}
	return b, nil
}

// decodeClue converts a puzzle-string character to a 1-based value per the
// per-order alphabet: order 3 uses '1'..'9'; order 4 uses '0'..'9' then
// 'a'..'f'; order >= 5 uses sequential bytes starting at 'a' (this is the
// arithmetic rule the original parser applies; for order >= 6 the alphabet
// extends past printable ASCII, which only matters for round-tripping
// through String/DebugString, not for correctness of the solve).
func decodeClue(order, numUnits int, c byte) (int, error) {
	switch order {
	case 3:
		if c < '1' || c > '9' {
			return 0, ErrInvalidClue
		}
		return int(c - '0'), nil
	case 4:
		if c >= '0' && c <= '9' {
			return 1 + int(c-'0'), nil
		}
		if c >= 'a' && c <= 'f' {
			return 11 + int(c-'a'), nil
		}
		return 0, ErrInvalidClue
	default:
		v := 1 + int(c-'a')
		if v < 1 || v > numUnits {
			return 0, ErrInvalidClue
		}
		return v, nil
	}
}

func alphabetFor(order, numUnits int) string {
	switch order {
	case 3:
		return "123456789"
	case 4:
		return "0123456789abcdef"
	default:
		b := make([]byte, numUnits)
		for i := 0; i < numUnits; i++ {
			b[i] = byte('a' + i)
		}
		return string(b)
	}
}

// Copy returns a deep copy of the board.
func (b Board) Copy() Board {
	cells := make([]valueset.ValueSet, len(b.cells))
	copy(cells, b.cells)
	return Board{
		cells:         cells,
		order:         b.order,
		numUnits:      b.numUnits,
		numCells:      b.numCells,
		numFixedCells: b.numFixedCells,
		numInfeasible: b.numInfeasible,
	}
}

// GetCell returns cell i's candidate set.
func (b Board) GetCell(i int) valueset.ValueSet { return b.cells[i] }

// CellCount returns the total number of cells.
func (b Board) CellCount() int { return b.numCells }

// GetNumUnits returns the number of units (rows, columns, or boxes).
func (b Board) GetNumUnits() int { return b.numUnits }

// FixedCellCount returns the number of cells with a uniquely determined value.
func (b Board) FixedCellCount() int { return b.numFixedCells }

// InfeasibleCellCount returns the number of infeasible cells found: cells
// left with no possible values, and clue cells whose clue propagation had
// already ruled out.
func (b Board) InfeasibleCellCount() int { return b.numInfeasible }

// RowCell returns the index of the k'th cell in row r.
func (b Board) RowCell(r, k int) int { return r*b.numUnits + k }

// ColCell returns the index of the k'th cell in column c.
func (b Board) ColCell(c, k int) int { return k*b.numUnits + c }

// BoxCell returns the index of the k'th cell in box.
func (b Board) BoxCell(box, k int) int {
	boxCol := box % b.order
	boxRow := box / b.order
	topCorner := boxCol*b.order + boxRow*b.order*b.order*b.order
	return topCorner + k%b.order + (k/b.order)*b.order*b.order
}

// RowForCell returns the row index containing cell i.
func (b Board) RowForCell(i int) int { return i / b.numUnits }

// ColForCell returns the column index containing cell i.
func (b Board) ColForCell(i int) int { return i % b.numUnits }

// BoxForCell returns the box index containing cell i.
func (b Board) BoxForCell(i int) int {
	return b.order*(i/(b.order*b.order*b.order)) + (i%(b.order*b.order))/b.order
}

// SetCellDirect replaces cell i's candidate set without triggering
// propagation. Used internally by the propagator.
func (b *Board) SetCellDirect(i int, c valueset.ValueSet) {
	b.cells[i] = c
}

// IncrementFixedCells bumps the fixed-cell counter. Used internally by the
// propagator.
func (b *Board) IncrementFixedCells() {
	b.numFixedCells++
}

// IncrementInfeasible bumps the infeasible-cell counter. Used internally by
// the propagator.
func (b *Board) IncrementInfeasible() {
	b.numInfeasible++
}

// CheckSolution reports whether other is a complete, valid, and consistent
// solution to b: every cell of other is fixed, every row/column/box of
// other contains each value exactly once, and every cell fixed in b agrees
// with other.
func (b Board) CheckSolution(other Board) bool {
	if other.CellCount() != b.CellCount() {
		return false
	}
	isSolution := true
	for i := 0; i < other.CellCount(); i++ {
		if !other.GetCell(i).Fixed() {
			isSolution = false
		}
	}

	for i := 0; i < b.numUnits; i++ {
		row := valueset.Init(b.numUnits)
		col := valueset.Init(b.numUnits)
		box := valueset.Init(b.numUnits)
		for j := 0; j < b.numUnits; j++ {
			row = row.Union(other.GetCell(b.RowCell(i, j)))
			col = col.Union(other.GetCell(b.ColCell(i, j)))
			box = box.Union(other.GetCell(b.BoxCell(i, j)))
		}
		if row.Count() != b.numUnits || col.Count() != b.numUnits || box.Count() != b.numUnits {
			isSolution = false
		}
	}

	isConsistent := true
	for i := 0; i < b.CellCount(); i++ {
		if b.GetCell(i).Fixed() {
			if b.GetCell(i).Index() != other.GetCell(i).Index() {
				isConsistent = false
			}
		}
	}

	return isSolution && isConsistent
}

// String renders the board compactly, using the same alphabet as puzzle
// parsing, with unfixed cells shown as '.'. This is the format used by the
// solver API's SolveResult.Solution field.
func (b Board) String() string {
	alphabet := alphabetFor(b.order, b.numUnits)
	var sb strings.Builder
	sb.Grow(b.numCells)
	for i := 0; i < b.numCells; i++ {
		cell := b.cells[i]
		if !cell.Fixed() {
			sb.WriteByte('.')
			continue
		}
		sb.WriteByte(alphabet[cell.Index()])
	}
	return sb.String()
}

// DebugString renders a padded, line-wrapped grid with box separators,
// useful for interactive debugging and tests. Unfixed cells are shown as
// '.'; fixed cells show their 1-based numeric value.
func (b Board) DebugString() string {
	cellStrings := make([]string, b.numCells)
	maxLen := 0
	for i := 0; i < b.numCells; i++ {
		var s string
		if !b.cells[i].Fixed() {
			s = "."
		} else {
			s = fmt.Sprintf("%d", b.cells[i].Index()+1)
		}
		if len(s) > maxLen {
			maxLen = len(s)
		}
		cellStrings[i] = s
	}
	pitch := maxLen + 1

	var sb strings.Builder
	for i := 0; i < b.numCells; i++ {
		fmt.Fprintf(&sb, "%*s ", pitch, cellStrings[i])
		switch {
		case i%b.numUnits == b.numUnits-1:
			if i != b.numCells-1 {
				sb.WriteByte('\n')
			}
		case i%b.order == b.order-1:
			sb.WriteByte('|')
		}
		if i%(b.numUnits*b.order) == b.numUnits*b.order-1 && i != b.numCells-1 {
			for j := 0; j < b.order; j++ {
				for k := 0; k < b.order*(pitch+1); k++ {
					sb.WriteByte('-')
				}
				if j != b.order-1 {
					sb.WriteByte('+')
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
