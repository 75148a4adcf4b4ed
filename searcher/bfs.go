package searcher

import "github.com/hupe1980/symgo/model"

// BFSSearcher selects the oldest state, keeping exploration depth uniform
// across the live population.
type BFSSearcher struct {
	states []model.State
}

var _ Searcher = (*BFSSearcher)(nil)

// NewBFSSearcher creates a breadth-first searcher.
func NewBFSSearcher() *BFSSearcher {
	return &BFSSearcher{}
}

// SelectState implements Searcher.
func (s *BFSSearcher) SelectState() model.State {
	return s.states[0]
}

// Update implements Searcher.
func (s *BFSSearcher) Update(current model.State, added, removed []model.State) {
	// If new states were added the engine forked, so the current state
	// evolved: it goes to the back of the line to preserve breadth-first
	// fairness across generations.
	if len(added) > 0 && current != nil && !containsState(removed, current) {
		if s.states[0] == current {
			// BFS is the only searcher.
			s.states = s.states[1:]
		} else {
			// Interleaved with another searcher.
			ok := false
			for i, st := range s.states {
				if st == current {
					s.states = append(s.states[:i], s.states[i+1:]...)
					ok = true
					break
				}
			}
			if !ok {
				panicInvalidRemoval(current)
			}
		}
		s.states = append(s.states, current)
	}

	s.states = append(s.states, added...)

	for _, es := range removed {
		if es == s.states[0] {
			s.states = s.states[1:]
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
func (s *BFSSearcher) Empty() bool {
	return len(s.states) == 0
}

func containsState(states []model.State, st model.State) bool {
	for _, es := range states {
		if es == st {
			return true
		}
	}
	return false
}
