package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/model"
)

func TestProgramPointIdentity(t *testing.T) {
	p := Point(7)
	assert.Equal(t, uint32(7), p.ID())
	assert.False(t, p.IsCallTo("merge"))

	c := CallTo(7, "merge")
	assert.True(t, c.IsCallTo("merge"))
	assert.False(t, c.IsCallTo("other"))
	assert.False(t, c.IsCallTo(""))
}

func TestStateAdvancePCDropsCallTarget(t *testing.T) {
	st := NewState(1)
	st.SetPC(CallTo(10, "merge"))

	st.AdvancePC()

	assert.Equal(t, 1, st.Advanced())
	assert.Equal(t, uint32(11), st.PC().ID())
	assert.False(t, st.PC().IsCallTo("merge"))
}

func TestStateMergeRecording(t *testing.T) {
	a, b := NewState(1), NewState(2)

	assert.False(t, a.Merge(b))
	assert.Empty(t, a.MergedIn)

	a.MergeOK = true
	assert.True(t, a.Merge(b))
	assert.Equal(t, StateSlice(b), a.MergedIn)
}

func TestEngineTerminateRewindsPC(t *testing.T) {
	st := NewState(1)
	st.SetPC(CallTo(10, "merge"))
	e := NewEngine(nil)

	// Termination leaves the state at the already-executed instruction, so
	// it no longer reads as sitting at a merge call.
	e.TerminateState(st)

	require.Equal(t, StateSlice(st), e.Terminated)
	assert.Equal(t, uint32(10), st.PC().ID())
	assert.False(t, st.PC().IsCallTo("merge"))
}

func TestLeafWiresBackReference(t *testing.T) {
	st := NewState(1)
	n := Leaf(st)

	assert.Same(t, n, st.TreeNode())
	assert.Same(t, model.State(st), n.State)

	b := Branch(n, nil)
	assert.Same(t, n, b.Left)
	assert.Nil(t, b.State)
}

func TestStateSlice(t *testing.T) {
	a, b := NewState(1), NewState(2)
	got := StateSlice(a, b)

	require.Len(t, got, 2)
	assert.Same(t, model.State(a), got[0])
	assert.Same(t, model.State(b), got[1])
	assert.Empty(t, StateSlice())
}
