// Package parallelsolver implements C7: the parallel ACS coordinator that
// runs N SubColony instances concurrently, periodically synchronizing at a
// barrier to exchange solutions over ring and random communication
// topologies.
package parallelsolver

import (
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sudokuacs/solver/board"
	"github.com/sudokuacs/solver/colony"
)

// Coordinator owns a fleet of SubColonies and drives them to convergence
// (or timeout) across goroutines, periodically exchanging solutions.
type Coordinator struct {
	subColonies []*colony.SubColony

	mu      sync.Mutex
	cv      *sync.Cond
	barrier int

	stopFlag  atomic.Bool
	maxTime   time.Duration
	startTime time.Time

	rng *rand.Rand

	globalBest            board.Board
	globalBestScore       int
	iterationsCompleted   int
	communicationOccurred bool
	solveTime             time.Duration
}

// NewCoordinator builds a coordinator with numSubColonies sub-colonies,
// each running antsPerColony ants under the given ACS parameters.
func NewCoordinator(numSubColonies, antsPerColony int, q0, rho, pher0, bestEvap float64, seed int64) *Coordinator {
	if numSubColonies < 1 {
		numSubColonies = 1
	}
	c := &Coordinator{rng: rand.New(rand.NewSource(seed))}
	c.cv = sync.NewCond(&c.mu)
	for i := 0; i < numSubColonies; i++ {
		c.subColonies = append(c.subColonies, colony.NewSubColony(i, antsPerColony, q0, rho, pher0, bestEvap, seed))
	}
	return c
}

// Solve spawns one worker goroutine per sub-colony, lets them run
// independently with periodic barrier-synchronized communication, and
// returns once every worker has stopped (solution found or timeout).
func (c *Coordinator) Solve(puzzle board.Board, maxTime time.Duration) (bool, board.Board) {
	c.maxTime = maxTime
	c.startTime = time.Now()
	c.stopFlag.Store(false)
	c.barrier = 0
	c.communicationOccurred = false
	c.globalBest = puzzle.Copy()
	c.globalBestScore = puzzle.FixedCellCount()

	// Go's sync.Cond has no timed wait, unlike the original's
	// condition_variable::wait_for(lock, 100ms, predicate). This goroutine
	// reproduces that bounded wake-up by broadcasting every 100ms so a
	// worker parked in waitAsWorker re-checks stopFlag/deadline even absent
	// a real master notification.
	done := make(chan struct{})
	go c.periodicBroadcast(done)
	defer close(done)

	var wg sync.WaitGroup
	for i := range c.subColonies {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.worker(id, puzzle)
		}(i)
	}
	wg.Wait()

	c.iterationsCompleted = 0
	for _, sc := range c.subColonies {
		if sc.GetBestSolScore() > c.globalBestScore {
			c.globalBest = sc.GetBestSol()
			c.globalBestScore = sc.GetBestSolScore()
		}
		if sc.CurrentIteration > c.iterationsCompleted {
			c.iterationsCompleted = sc.CurrentIteration
		}
	}
	c.solveTime = time.Since(c.startTime)

	return c.globalBestScore == puzzle.CellCount(), c.globalBest
}

// IterationsCompleted returns the maximum iteration count reached by any
// sub-colony in the last Solve call.
func (c *Coordinator) IterationsCompleted() int { return c.iterationsCompleted }

// CommunicationOccurred reports whether at least one barrier exchange ran.
func (c *Coordinator) CommunicationOccurred() bool { return c.communicationOccurred }

// SolveTime returns the wall-clock duration of the last Solve call.
func (c *Coordinator) SolveTime() time.Duration { return c.solveTime }

func (c *Coordinator) periodicBroadcast(done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.cv.Broadcast()
			c.mu.Unlock()
		}
	}
}

// worker is the per-sub-colony execution loop (spec §4.7 Worker).
func (c *Coordinator) worker(id int, puzzle board.Board) {
	sc := c.subColonies[id]
	sc.Initialize(puzzle)
	multi := len(c.subColonies) > 1

	iter := 0
	for !c.stopFlag.Load() {
		if c.checkTimeout() {
			break
		}

		iter++
		sc.CurrentIteration = iter

		sc.RunIteration(puzzle)

		shouldCommunicate := false
		if multi {
			if iter < 200 {
				shouldCommunicate = iter%100 == 0
			} else {
				shouldCommunicate = iter%10 == 0
			}
		}

		if shouldCommunicate {
			c.barrierSync(puzzle)
			sc.UpdatePheromoneWithCommunication()
			if c.stopFlag.Load() {
				break
			}
		} else {
			sc.UpdatePheromone()
			sc.DecayBestPher()
		}

		c.reportProgress(id, iter, puzzle)

		if sc.GetBestSolScore() == sc.NumCells() {
			c.signalStop()
			break
		}
	}
}

func (c *Coordinator) checkTimeout() bool {
	if time.Since(c.startTime) >= c.maxTime {
		c.signalStop()
		return true
	}
	return false
}

func (c *Coordinator) signalStop() {
	c.stopFlag.Store(true)
	if len(c.subColonies) > 1 {
		c.mu.Lock()
		c.cv.Broadcast()
		c.mu.Unlock()
	}
}

// reportProgress logs the current global best every 50 iterations, called
// only from colony 0's worker. The GetBestSolScore reads below race with
// every other worker's concurrent writes to its own sub-colony's score;
// this mirrors the original's ReportProgress and is a benign, intentional
// race — at worst it logs a stale best, never a corrupted one, since each
// score is a single int.
func (c *Coordinator) reportProgress(colonyID, iter int, puzzle board.Board) {
	if colonyID != 0 || iter%50 != 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	best := 0
	for _, sc := range c.subColonies {
		if score := sc.GetBestSolScore(); score > best {
			best = score
		}
	}
	log.Printf("parallelsolver: iteration %d, global best-so-far %d/%d", iter, best, puzzle.CellCount())
}

// barrierSync is the classic N-way barrier: the last worker to arrive
// performs the communication phase as master; everyone else waits.
func (c *Coordinator) barrierSync(puzzle board.Board) {
	if c.stopFlag.Load() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopFlag.Load() {
		c.barrier = 0
		c.cv.Broadcast()
		return
	}

	c.barrier++
	if c.barrier == len(c.subColonies) {
		c.runMasterTasks(puzzle)
	} else {
		c.waitAsWorker()
	}
}

// runMasterTasks is executed by the last-arriving worker, holding c.mu.
func (c *Coordinator) runMasterTasks(puzzle board.Board) {
	c.communicationOccurred = true

	matchArray := c.generateMatchArray()
	c.communicateRing()
	c.communicateRandom(matchArray)

	for _, sc := range c.subColonies {
		if sc.GetBestSolScore() == sc.NumCells() {
			c.stopFlag.Store(true)
			break
		}
	}

	c.barrier = 0
	c.cv.Broadcast()
}

// waitAsWorker parks on the barrier condition, holding c.mu. It is woken
// either by the master's Broadcast or by the 100ms periodic broadcaster,
// and re-checks the deadline on every wake.
func (c *Coordinator) waitAsWorker() {
	for c.barrier != 0 && !c.stopFlag.Load() {
		c.cv.Wait()
		if time.Since(c.startTime) >= c.maxTime && !c.stopFlag.Load() {
			c.stopFlag.Store(true)
			c.barrier = 0
			c.cv.Broadcast()
		}
	}
}

func (c *Coordinator) generateMatchArray() []int {
	n := len(c.subColonies)
	arr := make([]int, n)
	for i := range arr {
		arr[i] = i
	}
	c.rng.Shuffle(n, func(i, j int) { arr[i], arr[j] = arr[j], arr[i] })
	return arr
}

// communicateRing delivers each colony's iteration-best to its successor
// in the ring i -> (i+1) mod n.
func (c *Coordinator) communicateRing() {
	n := len(c.subColonies)
	snapshots := make([]board.Board, n)
	for i, sc := range c.subColonies {
		snapshots[i] = sc.GetIterationBest().Copy()
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		c.subColonies[next].ReceiveIterationBest(snapshots[i])
	}
}

// communicateRandom delivers each colony's best-so-far along the random
// permutation matchArray: colony matchArray[i] receives from colony
// matchArray[(i-1+n) mod n], a cyclic-by-permutation pairing.
func (c *Coordinator) communicateRandom(matchArray []int) {
	n := len(c.subColonies)
	snapshots := make([]board.Board, n)
	for i, sc := range c.subColonies {
		snapshots[i] = sc.GetBestSol().Copy()
	}
	for i := 0; i < n; i++ {
		colonyID := matchArray[i]
		fromPos := (i - 1 + n) % n
		fromColonyID := matchArray[fromPos]
		c.subColonies[colonyID].ReceiveBestSol(snapshots[fromColonyID])
	}
}
