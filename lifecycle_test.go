package symgo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symgo "github.com/hupe1980/symgo"
	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/searcher"
	"github.com/hupe1980/symgo/stats"
	"github.com/hupe1980/symgo/testutil"
)

// step mimics one engine iteration: select, pretend to execute, report.
func step(t *testing.T, s searcher.Searcher, added, removed []model.State) model.State {
	t.Helper()
	st := s.SelectState()
	s.Update(st, added, removed)
	return st
}

func TestLifecycleDefaultStack(t *testing.T) {
	a, b := testutil.NewState(1), testutil.NewState(2)
	root := testutil.Branch(testutil.Leaf(a), testutil.Leaf(b))
	engine := testutil.NewEngine(root)
	engine.Live = 2

	reg := stats.NewRegistry()
	s, err := symgo.NewSearcher(engine, reg, symgo.DefaultConfig())
	require.NoError(t, err)

	// Within the batching budget the same state keeps getting scheduled.
	first := step(t, s, nil, nil)
	for i := 0; i < 5; i++ {
		assert.Same(t, first, step(t, s, nil, nil))
	}

	// Exhausting the instruction budget forces a fresh tree walk.
	for i := 0; i < 10001; i++ {
		reg.StepInstruction(first.PC().ID())
	}
	next := s.SelectState()
	assert.Contains(t, testutil.StateSlice(a, b), next)

	engine.Live = 0
	assert.True(t, s.Empty())
}

func TestLifecycleBumpMergeStack(t *testing.T) {
	engine := testutil.NewEngine(nil)
	cfg := symgo.Config{
		Searcher:      "dfs",
		UseBumpMerge:  true,
		MergeFunction: "merge",
	}
	s, err := symgo.NewSearcher(engine, nil, cfg)
	require.NoError(t, err)

	st1 := testutil.NewState(1)
	st1.SetPC(testutil.CallTo(10, "merge"))
	st1.MergeOK = true
	st2 := testutil.NewState(2)
	st2.SetPC(testutil.CallTo(10, "merge"))
	s.Update(nil, testutil.StateSlice(st2, st1), nil)

	// st1 occupies the merge point; st2 merges into it and is terminated.
	got := s.SelectState()
	assert.Same(t, model.State(st2), got)
	require.Len(t, engine.Terminated, 1)
	s.Update(got, nil, testutil.StateSlice(st2))

	// The survivor is released past the merge call and drains normally.
	got = s.SelectState()
	assert.Same(t, model.State(st1), got)
	assert.Equal(t, 1, st1.Advanced())
	s.Update(got, nil, testutil.StateSlice(st1))
	assert.True(t, s.Empty())
}

func TestLifecycleSplitStack(t *testing.T) {
	cfg := symgo.Config{
		Searcher:      "dfs",
		SplitSearcher: true,
		SplitRatio:    100,
		Seed:          7,
	}
	s, err := symgo.NewSearcher(nil, nil, cfg)
	require.NoError(t, err)

	orig := testutil.NewState(1)
	rec := testutil.NewState(2)
	rec.RecoveryFlag = true
	testutil.Leaf(rec)
	s.Update(nil, testutil.StateSlice(orig, rec), nil)

	// Ratio 100 means the recovery side wins whenever it is populated.
	for i := 0; i < 10; i++ {
		got := step(t, s, nil, nil)
		assert.Same(t, model.State(rec), got)
	}

	// Recovery completes; primary exploration resumes.
	rec.ResumedFlag = true
	s.Update(nil, nil, testutil.StateSlice(rec))
	assert.Same(t, model.State(orig), s.SelectState())

	s.Update(nil, nil, testutil.StateSlice(orig))
	assert.True(t, s.Empty())
}

func TestLifecycleInterleavedStack(t *testing.T) {
	cfg := symgo.Config{Searcher: "dfs", Interleave: []string{"bfs"}}
	s, err := symgo.NewSearcher(nil, nil, cfg)
	require.NoError(t, err)

	a, b := testutil.NewState(1), testutil.NewState(2)
	s.Update(nil, testutil.StateSlice(a, b), nil)

	// DFS picks the newest state, BFS the oldest, alternating.
	assert.Same(t, model.State(b), s.SelectState())
	assert.Same(t, model.State(a), s.SelectState())
	assert.Same(t, model.State(b), s.SelectState())

	s.Update(nil, nil, testutil.StateSlice(a, b))
	assert.True(t, s.Empty())
}
