package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/symgo/testutil"
)

func TestBFSSearcherFIFO(t *testing.T) {
	s := NewBFSSearcher()
	a, b, c := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3)
	s.Update(nil, testutil.StateSlice(a, b, c), nil)

	assert.Equal(t, testutil.StateSlice(a, b, c), drain(s))
}

func TestBFSSearcherRequeuesEvolvedCurrent(t *testing.T) {
	s := NewBFSSearcher()
	a, b, c := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3)
	s.Update(nil, testutil.StateSlice(a, b), nil)

	// a forked c, so a evolved and goes to the back of the line.
	s.Update(a, testutil.StateSlice(c), nil)

	assert.Equal(t, testutil.StateSlice(b, a, c), drain(s))
}

func TestBFSSearcherCurrentRemovedNotRequeued(t *testing.T) {
	s := NewBFSSearcher()
	a, b, c := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3)
	s.Update(nil, testutil.StateSlice(a, b), nil)

	// a forked c but was itself destroyed.
	s.Update(a, testutil.StateSlice(c), testutil.StateSlice(a))

	assert.Equal(t, testutil.StateSlice(b, c), drain(s))
}

func TestBFSSearcherNoForkNoRequeue(t *testing.T) {
	s := NewBFSSearcher()
	a, b := testutil.NewState(1), testutil.NewState(2)
	s.Update(nil, testutil.StateSlice(a, b), nil)

	// No added states: the current state keeps its place.
	s.Update(a, nil, nil)
	assert.Same(t, a, s.SelectState())
}

func TestBFSSearcherInvalidRemovalPanics(t *testing.T) {
	s := NewBFSSearcher()
	s.Update(nil, testutil.StateSlice(testutil.NewState(1)), nil)

	assert.Panics(t, func() {
		s.Update(nil, nil, testutil.StateSlice(testutil.NewState(99)))
	})
}
