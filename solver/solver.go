// Package solver is the public entry point: it parses a puzzle string,
// picks a default timeout when the caller doesn't specify one, dispatches
// to either a single ACS colony or a parallel fleet of communicating
// sub-colonies, and reports the outcome alongside constraint-propagation
// timing statistics.
package solver

import (
	"errors"
	"time"

	"github.com/sudokuacs/solver/board"
	"github.com/sudokuacs/solver/colony"
	"github.com/sudokuacs/solver/parallelsolver"
)

// Algorithm selects the solving strategy.
type Algorithm int

const (
	// SingleColonyACS runs one ACS colony to convergence or timeout.
	SingleColonyACS Algorithm = 0
	// ParallelACS runs SubColonies SubColony instances concurrently,
	// periodically exchanging solutions at a barrier.
	ParallelACS Algorithm = 2
)

// ErrInvalidAlgorithm is returned when Options.Algorithm names neither
// SingleColonyACS nor ParallelACS.
var ErrInvalidAlgorithm = errors.New("solver: invalid algorithm")

// Options configures a Solve call. Zero values select the package
// defaults described on each field.
type Options struct {
	Algorithm Algorithm

	// SubColonies is only consulted when Algorithm is ParallelACS; it
	// defaults to 4 when <= 0.
	SubColonies int

	// Ants is the number of ants per colony; defaults to 10 when <= 0.
	Ants int

	// Q0 is the exploitation probability; defaults to 0.9 when <= 0.
	Q0 float64
	// Rho is the global pheromone evaporation rate; defaults to 0.9 when <= 0.
	Rho float64
	// Evap is the scalar bestPher decay rate; defaults to 0.005 when <= 0.
	Evap float64

	// Timeout bounds the solve. When <= 0, a default is chosen from the
	// puzzle's cell count: 5s for 9x9, 20s for 16x16, 120s otherwise.
	Timeout time.Duration

	// Seed seeds every colony's RNG. Zero is a valid seed; use a
	// time-derived value at the call site for non-deterministic runs.
	Seed int64
}

// Result reports the outcome of a Solve call.
type Result struct {
	Success bool
	// Solution is the compact alphabet-encoded board string (see
	// board.Board.String), valid only when Success is true.
	Solution string

	Time          time.Duration
	Iterations    int
	Communication bool
	CPInitial     time.Duration
	CPAntTotal    time.Duration
	CPCalls       int

	// Error is set when the puzzle could not be parsed or solved at all
	// (invalid size, invalid clue, bad algorithm, or detected
	// infeasibility); Success is false whenever Error is non-empty.
	Error string
}

const (
	defaultSubColonies = 4
	defaultAnts        = 10
	defaultQ0          = 0.9
	defaultRho         = 0.9
	defaultEvap        = 0.005
)

// Solve parses puzzle, validates and propagates its clues, and runs the
// configured algorithm until a complete solution is found or the timeout
// elapses.
func Solve(puzzle string, opts Options) Result {
	if opts.Algorithm != SingleColonyACS && opts.Algorithm != ParallelACS {
		return Result{Error: ErrInvalidAlgorithm.Error()}
	}

	// Reset before New so the construction-time propagation it triggers is
	// the only thing counted as "initial" CP time for this request.
	board.ResetCPTiming()

	b, err := board.New(puzzle)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if b.InfeasibleCellCount() > 0 {
		return Result{Error: "infeasible after propagation"}
	}
	if b.FixedCellCount() == b.CellCount() {
		return Result{
			Success:   true,
			Solution:  b.String(),
			CPInitial: board.GetInitialCPTime(),
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeoutFor(b.CellCount())
	}

	ants := opts.Ants
	if ants <= 0 {
		ants = defaultAnts
	}
	q0 := opts.Q0
	if q0 <= 0 {
		q0 = defaultQ0
	}
	rho := opts.Rho
	if rho <= 0 {
		rho = defaultRho
	}
	evap := opts.Evap
	if evap <= 0 {
		evap = defaultEvap
	}

	var (
		solved     bool
		sol        board.Board
		iterations int
		solveTime  time.Duration
		comm       bool
	)

	switch opts.Algorithm {
	case SingleColonyACS:
		pher0 := 1.0 / float64(b.CellCount())
		c := colony.NewSingleColony(ants, q0, rho, pher0, evap, opts.Seed)
		solved, sol = c.Solve(b, timeout)
		iterations = c.IterationsCompleted()
		solveTime = c.SolveTime()

	case ParallelACS:
		subColonies := opts.SubColonies
		if subColonies <= 0 {
			subColonies = defaultSubColonies
		}
		pher0 := 1.0 / float64(b.CellCount())
		p := parallelsolver.NewCoordinator(subColonies, ants, q0, rho, pher0, evap, opts.Seed)
		solved, sol = p.Solve(b, timeout)
		iterations = p.IterationsCompleted()
		solveTime = p.SolveTime()
		comm = p.CommunicationOccurred()
	}

	result := Result{
		Success:       solved,
		Time:          solveTime,
		Iterations:    iterations,
		Communication: comm,
		CPInitial:     board.GetInitialCPTime(),
		CPAntTotal:    board.GetAntCPTime(),
		CPCalls:       board.GetCPCallCount(),
	}
	if solved {
		result.Solution = sol.String()
	}
	return result
}

func defaultTimeoutFor(numCells int) time.Duration {
	switch numCells {
	case 81:
		return 5 * time.Second
	case 256:
		return 20 * time.Second
	default:
		return 120 * time.Second
	}
}
