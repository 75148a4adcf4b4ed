package searcher

import (
	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
)

// RandomPathSearcher selects by a uniformly random root-to-leaf walk of
// the binary process tree. Selection is weighted by the branching
// structure actually explored rather than by flat state count, favoring
// newly diverged, less explored regions.
//
// All bookkeeping lives in the engine-owned process tree, so Update is a
// no-op and RemoveState has no effect. Merging policies must not wrap this
// searcher (see MergingSearcher).
type RandomPathSearcher struct {
	engine model.Engine
	rng    *rng.RNG
}

var _ Searcher = (*RandomPathSearcher)(nil)

// NewRandomPathSearcher creates a random path searcher over the engine's
// process tree.
func NewRandomPathSearcher(engine model.Engine, r *rng.RNG) *RandomPathSearcher {
	return &RandomPathSearcher{engine: engine, rng: r}
}

// SelectState implements Searcher.
func (s *RandomPathSearcher) SelectState() model.State {
	return walkTree(s.engine.ProcessTree(), s.rng)
}

// Update implements Searcher. It is a no-op: the engine maintains the
// process tree itself.
func (s *RandomPathSearcher) Update(current model.State, added, removed []model.State) {
}

// Empty implements Searcher. It reflects the engine's global live-state
// count, not a private structure.
func (s *RandomPathSearcher) Empty() bool {
	return s.engine.NumStates() == 0
}
