package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/testutil"
)

func TestDFSSearcherLIFO(t *testing.T) {
	s := NewDFSSearcher()
	a, b, c := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3)

	s.Update(nil, testutil.StateSlice(a, b), nil)
	assert.Same(t, b, s.SelectState())

	s.Update(nil, testutil.StateSlice(c), nil)
	assert.Same(t, c, s.SelectState())
	// Selection without removal is stable.
	assert.Same(t, c, s.SelectState())
}

func TestDFSSearcherRemoval(t *testing.T) {
	s := NewDFSSearcher()
	a, b, c := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3)
	s.Update(nil, testutil.StateSlice(a, b, c), nil)

	// Fast path: most recent.
	s.Update(nil, nil, testutil.StateSlice(c))
	assert.Same(t, b, s.SelectState())

	// Linear scan path: remove the oldest.
	s.Update(nil, nil, testutil.StateSlice(a))
	assert.Same(t, b, s.SelectState())

	s.Update(nil, nil, testutil.StateSlice(b))
	assert.True(t, s.Empty())
}

func TestDFSSearcherInvalidRemovalPanics(t *testing.T) {
	s := NewDFSSearcher()
	s.Update(nil, testutil.StateSlice(testutil.NewState(1)), nil)

	assert.Panics(t, func() {
		s.Update(nil, nil, testutil.StateSlice(testutil.NewState(99)))
	})
}

func TestDFSSearcherRoundTrip(t *testing.T) {
	s := NewDFSSearcher()
	a, b, c, d := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3), testutil.NewState(4)
	s.Update(nil, testutil.StateSlice(a, b, c, d), nil)
	s.Update(nil, nil, testutil.StateSlice(b))

	got := drain(s)
	require.Len(t, got, 3)
	assert.Equal(t, testutil.StateSlice(d, c, a), got)
}

func TestDFSSearcherNoopUpdate(t *testing.T) {
	s := NewDFSSearcher()
	a := testutil.NewState(1)
	s.Update(nil, testutil.StateSlice(a), nil)

	before := s.SelectState()
	s.Update(nil, nil, nil)
	assert.Same(t, before, s.SelectState())
}
