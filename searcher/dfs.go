package searcher

import "github.com/hupe1980/symgo/model"

// DFSSearcher selects the most recently added state, exploring one path to
// completion before backtracking.
type DFSSearcher struct {
	states []model.State
}

var _ Searcher = (*DFSSearcher)(nil)

// NewDFSSearcher creates a depth-first searcher.
func NewDFSSearcher() *DFSSearcher {
	return &DFSSearcher{}
}

// SelectState implements Searcher.
func (s *DFSSearcher) SelectState() model.State {
	return s.states[len(s.states)-1]
}

// Update implements Searcher. Removing the most recent state is O(1); any
// other removal is a linear scan.
func (s *DFSSearcher) Update(current model.State, added, removed []model.State) {
	s.states = append(s.states, added...)

	for _, es := range removed {
		if es == s.states[len(s.states)-1] {
			s.states = s.states[:len(s.states)-1]
			continue
		}

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
func (s *DFSSearcher) Empty() bool {
	return len(s.states) == 0
}
