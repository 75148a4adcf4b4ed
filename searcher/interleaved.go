package searcher

import "github.com/hupe1980/symgo/model"

// InterleavedSearcher round-robins selection over a fixed ordered list of
// independent searchers. Every update is broadcast to all members, so each
// maintains its own complete view of the live population.
type InterleavedSearcher struct {
	searchers []Searcher
	index     int
}

var _ Searcher = (*InterleavedSearcher)(nil)

// NewInterleavedSearcher creates an interleaved searcher over the given
// members. The list must not be empty.
func NewInterleavedSearcher(searchers ...Searcher) *InterleavedSearcher {
	if len(searchers) == 0 {
		panic("searcher: interleaved searcher needs at least one member")
	}
	return &InterleavedSearcher{
		searchers: searchers,
		index:     1,
	}
}

// SelectState implements Searcher.
func (s *InterleavedSearcher) SelectState() model.State {
	s.index--
	sel := s.searchers[s.index]
	if s.index == 0 {
		s.index = len(s.searchers)
	}
	return sel.SelectState()
}

// Update implements Searcher.
func (s *InterleavedSearcher) Update(current model.State, added, removed []model.State) {
	for _, member := range s.searchers {
		member.Update(current, added, removed)
	}
}

// Empty implements Searcher. All members see the same population, so any
// one of them answers for the group.
func (s *InterleavedSearcher) Empty() bool {
	return s.searchers[0].Empty()
}
