package colony

import (
	"time"

	"github.com/sudokuacs/solver/board"
)

// SingleColony is C5: a standalone ACS colony that iterates to convergence
// or timeout on its own, equivalent to the original's Algorithm 0.
type SingleColony struct {
	*core
	bestSol             board.Board
	bestPher            float64
	bestEvap            float64
	iterationsCompleted int
	solveTime           time.Duration
}

// NewSingleColony builds a single-colony ACS solver with the given ant
// count and ACS parameters, seeded from seed.
func NewSingleColony(numAnts int, q0, rho, pher0, bestEvap float64, seed int64) *SingleColony {
	return &SingleColony{
		core:     newCore(numAnts, q0, rho, pher0, seed),
		bestEvap: bestEvap,
	}
}

// Solve runs the iteration loop described in spec §4.5 until a complete
// solution is found or maxTime elapses. It returns whether a complete
// solution was found and the best board seen.
func (s *SingleColony) Solve(puzzle board.Board, maxTime time.Duration) (bool, board.Board) {
	start := time.Now()
	s.initPheromone(puzzle.CellCount(), puzzle.GetNumUnits())
	s.bestPher = 0
	s.bestSol = puzzle.Copy()

	iter := 0
	solved := false

	for !solved {
		bestIdx, bestVal := s.constructSolutions(puzzle)

		pherToAdd := s.PherAdd(bestVal)
		if pherToAdd > s.bestPher {
			s.bestSol = s.ants[bestIdx].GetSolution()
			s.bestPher = pherToAdd
			if bestVal == s.numCells {
				solved = true
				s.solveTime = time.Since(start)
			}
		}

		s.updatePheromone()
		s.bestPher *= 1 - s.bestEvap
		iter++

		if iter%100 == 0 && time.Since(start) > maxTime {
			break
		}
	}

	s.iterationsCompleted = iter
	if !solved {
		s.solveTime = time.Since(start)
	}
	return solved, s.bestSol
}

// updatePheromone is the ACS global update rule (spec §4.5 step 6),
// reinforcing only the cells fixed in the best-so-far solution.
func (s *SingleColony) updatePheromone() {
	for i := 0; i < s.numCells; i++ {
		cell := s.bestSol.GetCell(i)
		if cell.Fixed() {
			idx := cell.Index()
			s.pher[i][idx] = s.pher[i][idx]*(1-s.rho) + s.rho*s.bestPher
		}
	}
}

// IterationsCompleted returns the number of iterations the last Solve call ran.
func (s *SingleColony) IterationsCompleted() int { return s.iterationsCompleted }

// SolveTime returns the wall-clock duration of the last Solve call.
func (s *SingleColony) SolveTime() time.Duration { return s.solveTime }
