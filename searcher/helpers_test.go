package searcher

import (
	"github.com/hupe1980/symgo/model"
)

// updateRecord captures one Update call seen by a spy.
type updateRecord struct {
	current model.State
	added   []model.State
	removed []model.State
}

// spySearcher wraps an inner searcher and records the traffic it sees.
type spySearcher struct {
	inner   Searcher
	selects int
	updates []updateRecord
}

func newSpy(inner Searcher) *spySearcher {
	return &spySearcher{inner: inner}
}

func (s *spySearcher) SelectState() model.State {
	s.selects++
	return s.inner.SelectState()
}

func (s *spySearcher) Update(current model.State, added, removed []model.State) {
	s.updates = append(s.updates, updateRecord{current: current, added: added, removed: removed})
	s.inner.Update(current, added, removed)
}

func (s *spySearcher) Empty() bool {
	return s.inner.Empty()
}

// drain repeatedly selects and removes until the searcher is empty,
// returning the selection order.
func drain(s Searcher) []model.State {
	var out []model.State
	for !s.Empty() {
		st := s.SelectState()
		out = append(out, st)
		RemoveState(s, st)
	}
	return out
}
