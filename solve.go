package yum

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// maxEV is a loose upper bound on any cell's expected value (twelve
// categories at about 30 points each, plus the 35-point bonus), used only
// by the EV invariant check.
const maxEV = 375.0

// evCacheSize is the number of slots in each worker's intra-round
// memoization cache (spec: "reference uses ~1M slots").
const evCacheSize = 1 << 20

// evCache is a fixed-size, direct-mapped memoization cache: the packed
// (state_index, dice_index, turn, round) key (see evCacheKey) selects slot
// key mod size. A collision simply evicts the existing slot; this is a pure performance optimization, and
// [Solver] produces identical results with the cache disabled (spec
// property: memoization transparency).
type evCache struct {
	keys   []uint64
	vals   []float64
	valid  []bool
	hits   uint64
	misses uint64
}

func newEVCache(size int) *evCache {
	return &evCache{
		keys:  make([]uint64, size),
		vals:  make([]float64, size),
		valid: make([]bool, size),
	}
}

func evCacheKey(stateIdx, diceIdx, turn, round int) uint64 {
	return uint64(stateIdx)<<32 | uint64(round)<<16 | uint64(turn)<<8 | uint64(diceIdx)
}

func (c *evCache) get(key uint64) (float64, bool) {
	slot := key % uint64(len(c.keys))
	if c.valid[slot] && c.keys[slot] == key {
		c.hits++
		return c.vals[slot], true
	}
	c.misses++
	return 0, false
}

func (c *evCache) put(key uint64, v float64) {
	slot := key % uint64(len(c.keys))
	c.keys[slot] = key
	c.vals[slot] = v
	c.valid[slot] = true
}

// Solver runs backward induction over the full game-state space using an
// immutable [StateIndex] and [RerollTable].
type Solver struct {
	idx      *StateIndex
	reroll   *RerollTable
	Progress *Progress
	UseCache bool
	Workers  int
}

// NewSolver returns a [Solver] over idx and reroll. Caching and a
// GOMAXPROCS-sized worker pool are enabled by default.
func NewSolver(idx *StateIndex, reroll *RerollTable) *Solver {
	return &Solver{
		idx:      idx,
		reroll:   reroll,
		UseCache: true,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// stateSolver evaluates every (dice, turn) cell for a single state,
// writing into the shared current-round slab. One stateSolver, and its
// cache, is used per worker goroutine; since every cache key includes
// the state index and states are partitioned disjointly across workers,
// no synchronization between stateSolvers is required.
type stateSolver struct {
	idx     *StateIndex
	reroll  *RerollTable
	future  *futureTable
	cur     *slab
	cache   *evCache
	round   int
	useCach bool
}

func (ss *stateSolver) ev(stateIdx, diceIdx, turn int) (float64, error) {
	var key uint64
	if ss.useCach {
		key = evCacheKey(stateIdx, diceIdx, turn, ss.round)
		if v, ok := ss.cache.get(key); ok {
			return v, nil
		}
	}
	var (
		result float64
		action Action
		err    error
	)
	if turn == NumTurns-1 {
		result, action, err = ss.evalFinal(stateIdx, diceIdx)
	} else {
		result, action, err = ss.evalReroll(stateIdx, diceIdx, turn)
	}
	if err != nil {
		return 0, err
	}
	if result < 0 || maxEV < result {
		return 0, ErrInvariantViolation
	}
	ss.cur.set(stateIdx, diceIdx, turn, result, action)
	if ss.useCach {
		ss.cache.put(key, result)
	}
	return result, nil
}

// evalFinal computes V(s,d,3) (turn index 2): the must-score turn.
//
// The ordering constraint on [LowScore]/[HighScore] ("low must beat the
// recorded anchor", "high must exceed it") only makes sense as a
// constraint between two live choices; when one of the pair is the sole
// remaining category, the player has no alternative and must record it
// regardless, so evalFinal falls back to the lone unfilled category when
// [IsValid] rejects every category (possible only when that category is
// [LowScore] or [HighScore] and it is the only one left — every other
// category has no anchor constraint and is valid whenever unfilled).
func (ss *stateSolver) evalFinal(stateIdx, diceIdx int) (float64, Action, error) {
	state, err := ss.idx.State(stateIdx)
	if err != nil {
		return 0, 0, err
	}
	hand, err := DecodeDice(diceIdx)
	if err != nil {
		return 0, 0, err
	}
	bestEV, bestAction, found := 0.0, Action(0), false
	for c := Category(0); c < NumCategories; c++ {
		if !IsValid(state, c, hand) {
			continue
		}
		score := float64(Score(hand, c))
		future := ss.futureFor(state, c, hand)
		ev := score + future
		if !found || ev > bestEV {
			bestEV, bestAction, found = ev, ScoreAction(c), true
		}
	}
	if !found {
		for c := Category(0); c < NumCategories; c++ {
			if !state.Filled(c) {
				bestEV = float64(Score(hand, c)) + ss.futureFor(state, c, hand)
				bestAction = ScoreAction(c)
				found = true
				break
			}
		}
	}
	if !found {
		return 0, 0, ErrInvariantViolation
	}
	return bestEV, bestAction, nil
}

func (ss *stateSolver) futureFor(state State, c Category, hand Hand) float64 {
	next := Apply(state, c, hand)
	nextIdx := ss.idx.Index(next)
	if nextIdx == NotFound {
		return 0
	}
	return ss.future.at(nextIdx)
}

// evalReroll computes V(s,d,t) for t in {1,2} (turn index 0 or 1): the
// max over keep-masks of the expectation over the resulting dice of
// V(s,·,t+1). Masks are tried in ascending order 0..31 so that exact ties
// resolve to the earliest (lowest-index) mask, per spec.
func (ss *stateSolver) evalReroll(stateIdx, diceIdx, turn int) (float64, Action, error) {
	bestEV, bestMask := 0.0, -1
	for mask := 0; mask < NumKeepMasks; mask++ {
		var total float64
		for end := 0; end < NumDiceHands; end++ {
			p := ss.reroll.Prob(diceIdx, mask, end)
			if p <= zeroTolerance {
				continue
			}
			next, err := ss.ev(stateIdx, end, turn+1)
			if err != nil {
				return 0, 0, err
			}
			total += p * next
		}
		if bestMask == -1 || total > bestEV {
			bestEV, bestMask = total, mask
		}
	}
	return bestEV, KeepAction(bestMask), nil
}

// Solve runs backward induction across rounds 12..1, writing each
// round's action (and, if w was built with EVs enabled, EV) codes to w
// in the canonical ordering of spec §6. Returns per-round cache
// statistics. Cancellation via ctx takes effect at round boundaries.
func (sv *Solver) Solve(ctx context.Context, w *ActionWriter) ([]CacheStats, error) {
	numStates := sv.idx.NumStates()
	future := newFutureTable(numStates)
	var stats []CacheStats

	workers := sv.Workers
	if workers < 1 {
		workers = 1
	}

	for round := 12; round >= 1; round-- {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}
		if sv.Progress != nil {
			sv.Progress.Round(round)
		}

		states := sv.idx.StatesFilledCount(round - 1)
		cur := newSlab(numStates)

		jobs := make(chan int, len(states))
		for _, s := range states {
			jobs <- s
		}
		close(jobs)

		var (
			wg          sync.WaitGroup
			totalHits   uint64
			totalMisses uint64
			firstErr    error
			errMu       sync.Mutex
			doneCalcs   uint64
			progressMu  sync.Mutex
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ss := &stateSolver{
					idx:     sv.idx,
					reroll:  sv.reroll,
					future:  future,
					cur:     cur,
					round:   round,
					useCach: sv.UseCache,
				}
				if sv.UseCache {
					ss.cache = newEVCache(evCacheSize)
				}
				for stateIdx := range jobs {
					for diceIdx := 0; diceIdx < NumDiceHands; diceIdx++ {
						for turn := 0; turn < NumTurns; turn++ {
							if _, err := ss.ev(stateIdx, diceIdx, turn); err != nil {
								errMu.Lock()
								if firstErr == nil {
									firstErr = err
								}
								errMu.Unlock()
								return
							}
						}
					}
					atomic.AddUint64(&doneCalcs, uint64(NumDiceHands*NumTurns))
					if sv.Progress != nil {
						progressMu.Lock()
						sv.Progress.Advance(uint64(NumDiceHands * NumTurns))
						progressMu.Unlock()
					}
				}
				if ss.cache != nil {
					atomic.AddUint64(&totalHits, ss.cache.hits)
					atomic.AddUint64(&totalMisses, ss.cache.misses)
				}
			}()
		}
		wg.Wait()

		if firstErr != nil {
			return stats, firstErr
		}

		// Round output, canonical ordering: ascending state index,
		// ascending dice index, ascending turn.
		for _, stateIdx := range states {
			for diceIdx := 0; diceIdx < NumDiceHands; diceIdx++ {
				for turn := 0; turn < NumTurns; turn++ {
					ev, action := cur.get(stateIdx, diceIdx, turn)
					if err := w.WriteCell(action, float32(ev)); err != nil {
						return stats, err
					}
				}
			}
		}
		if err := w.Flush(); err != nil {
			return stats, err
		}

		stats = append(stats, CacheStats{Round: round, Hits: totalHits, Misses: totalMisses})

		if round > 1 {
			future = cur.condense(numStates, states, sv.reroll)
		}
	}
	if sv.Progress != nil {
		sv.Progress.Done()
	}
	return stats, nil
}
