package searcher

import (
	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
)

// RandomSearcher selects uniformly at random over the flat set of live
// states.
type RandomSearcher struct {
	states []model.State
	rng    *rng.RNG
}

var _ Searcher = (*RandomSearcher)(nil)

// NewRandomSearcher creates a uniform random searcher drawing from r.
func NewRandomSearcher(r *rng.RNG) *RandomSearcher {
	return &RandomSearcher{rng: r}
}

// SelectState implements Searcher.
func (s *RandomSearcher) SelectState() model.State {
	return s.states[s.rng.Intn(len(s.states))]
}

// Update implements Searcher.
func (s *RandomSearcher) Update(current model.State, added, removed []model.State) {
	s.states = append(s.states, added...)

	for _, es := range removed {
		ok := false
		for i, st := range s.states {
			if es == st {
				s.states = append(s.states[:i], s.states[i+1:]...)
				ok = true
				break
			}
		}
		if !ok {
			panicInvalidRemoval(es)
		}
	}
}

// Empty implements Searcher.
func (s *RandomSearcher) Empty() bool {
	return len(s.states) == 0
}
