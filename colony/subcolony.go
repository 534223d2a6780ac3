package colony

import (
	"github.com/sudokuacs/solver/board"
)

// SubColony is C6: a SingleColony-equivalent colony augmented with two
// solution slots written by the parallel coordinator during communication
// exchanges, and a three-source pheromone update that blends its own
// iteration-best against the received solutions.
type SubColony struct {
	*core

	iterationBest         board.Board
	bestSol               board.Board
	receivedIterationBest board.Board
	receivedBestSol       board.Board

	iterationBestScore         int
	bestSolScore               int
	receivedIterationBestScore int
	receivedBestSolScore       int

	BestPher float64
	bestEvap float64

	// CurrentIteration is set by the owning worker goroutine every
	// iteration; exposed for the coordinator's end-of-run reporting.
	CurrentIteration int

	contributions   []float64
	hasContribution []bool
}

// NewSubColony builds a sub-colony with the given ant count and ACS
// parameters, seeded uniquely per colony (id folded into the seed ensures
// distinct streams across colonies sharing a base seed).
func NewSubColony(id, numAnts int, q0, rho, pher0, bestEvap float64, seed int64) *SubColony {
	return &SubColony{
		core:     newCore(numAnts, q0, rho, pher0, seed+int64(id)),
		bestEvap: bestEvap,
	}
}

// Initialize resets the colony for a fresh puzzle: clears the pheromone
// matrix, seeds all four solution slots from puzzle, and zeroes counters.
func (s *SubColony) Initialize(puzzle board.Board) {
	s.initPheromone(puzzle.CellCount(), puzzle.GetNumUnits())

	s.contributions = make([]float64, s.numUnits)
	s.hasContribution = make([]bool, s.numUnits)

	s.iterationBest = puzzle.Copy()
	s.bestSol = puzzle.Copy()
	s.receivedIterationBest = puzzle.Copy()
	s.receivedBestSol = puzzle.Copy()

	s.iterationBestScore = puzzle.FixedCellCount()
	s.bestSolScore = puzzle.FixedCellCount()
	s.receivedIterationBestScore = 0
	s.receivedBestSolScore = 0
	s.CurrentIteration = 0
	s.BestPher = 0
}

// RunIteration executes spec §4.6's construction + tracking phase: all
// ants build a solution, the iteration-best is recorded, and the
// best-so-far is updated if the iteration-best's pheromone value improves
// on it (mirroring Algorithm 0's own best-so-far tracking exactly).
func (s *SubColony) RunIteration(puzzle board.Board) {
	bestIdx, bestVal := s.constructSolutions(puzzle)

	s.iterationBest = s.ants[bestIdx].GetSolution()
	s.iterationBestScore = bestVal

	pherToAdd := s.PherAdd(bestVal)
	if pherToAdd > s.BestPher {
		s.bestSol = s.iterationBest
		s.bestSolScore = s.iterationBestScore
		s.BestPher = pherToAdd
	}
}

// UpdatePheromone is the standard single-source ACS global update (spec
// §4.6, same as SingleColony's), used on iterations that do not
// communicate.
func (s *SubColony) UpdatePheromone() {
	for i := 0; i < s.numCells; i++ {
		cell := s.bestSol.GetCell(i)
		if cell.Fixed() {
			idx := cell.Index()
			s.pher[i][idx] = s.pher[i][idx]*(1-s.rho) + s.rho*s.BestPher
		}
	}
}

// DecayBestPher applies the scalar bestPher decay (spec §4.5 step 7),
// performed only on non-communication iterations since BestPher is not
// consulted during communication cycles.
func (s *SubColony) DecayBestPher() {
	s.BestPher *= 1 - s.bestEvap
}

// UpdatePheromoneWithCommunication is the three-source selective update
// (spec §4.6): local iteration-best, received iteration-best (ring), and
// received best-so-far (random topology) each contribute a deposit to the
// (cell, value) pairs they fix; only touched pairs evaporate.
func (s *SubColony) UpdatePheromoneWithCommunication() {
	pherValue1 := 0.0
	if s.iterationBestScore > 0 {
		pherValue1 = s.PherAdd(s.iterationBestScore)
	}
	pherValue2 := 0.0
	if s.receivedIterationBestScore > 0 {
		pherValue2 = s.PherAdd(s.receivedIterationBestScore)
	}
	pherValue3 := 0.0
	if s.receivedBestSolScore > 0 {
		pherValue3 = s.PherAdd(s.receivedBestSolScore)
	}

	for i := 0; i < s.numCells; i++ {
		for j := range s.contributions {
			s.contributions[j] = 0
			s.hasContribution[j] = false
		}

		if s.iterationBestScore > 0 {
			if cell := s.iterationBest.GetCell(i); cell.Fixed() {
				idx := cell.Index()
				s.contributions[idx] += pherValue1
				s.hasContribution[idx] = true
			}
		}
		if s.receivedIterationBestScore > 0 {
			if cell := s.receivedIterationBest.GetCell(i); cell.Fixed() {
				idx := cell.Index()
				s.contributions[idx] += pherValue2
				s.hasContribution[idx] = true
			}
		}
		if s.receivedBestSolScore > 0 {
			if cell := s.receivedBestSol.GetCell(i); cell.Fixed() {
				idx := cell.Index()
				s.contributions[idx] += pherValue3
				s.hasContribution[idx] = true
			}
		}

		for j := 0; j < s.numUnits; j++ {
			if s.hasContribution[j] {
				s.pher[i][j] = s.pher[i][j]*(1-s.rho) + s.rho*s.contributions[j]
			}
		}
	}
}

// ReceiveIterationBest records a peer's iteration-best solution, delivered
// by the coordinator's ring-topology exchange. It is only ever consumed by
// UpdatePheromoneWithCommunication.
func (s *SubColony) ReceiveIterationBest(solution board.Board) {
	s.receivedIterationBest = solution
	s.receivedIterationBestScore = solution.FixedCellCount()
}

// ReceiveBestSol records a peer's best-so-far solution, delivered by the
// coordinator's random-topology exchange.
func (s *SubColony) ReceiveBestSol(solution board.Board) {
	s.receivedBestSol = solution
	s.receivedBestSolScore = solution.FixedCellCount()
}

// GetIterationBest returns this colony's best solution from the current iteration.
func (s *SubColony) GetIterationBest() board.Board { return s.iterationBest }

// GetBestSol returns this colony's best-so-far solution.
func (s *SubColony) GetBestSol() board.Board { return s.bestSol }

// GetBestSolScore returns the number of cells fixed in the best-so-far solution.
func (s *SubColony) GetBestSolScore() int { return s.bestSolScore }

// NumCells returns the puzzle's total cell count.
func (s *SubColony) NumCells() int { return s.numCells }
