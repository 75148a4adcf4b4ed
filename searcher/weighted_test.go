package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
	"github.com/hupe1980/symgo/stats"
	"github.com/hupe1980/symgo/testutil"
)

func TestWeightedRandomSingleState(t *testing.T) {
	s := NewWeightedRandomSearcher(WeightQueryCost, stats.NewRegistry(), rng.New(42))
	a := testutil.NewState(1)
	s.Update(nil, testutil.StateSlice(a), nil)

	// A single tracked state is returned regardless of the draw value.
	for i := 0; i < 100; i++ {
		assert.Same(t, a, s.SelectState())
	}
}

func TestWeightedRandomProportionalSelection(t *testing.T) {
	s := NewWeightedRandomSearcher(WeightQueryCost, stats.NewRegistry(), rng.New(42))

	// Costs 1 and 0.5 give weights 1 and 2.
	a, b := testutil.NewState(1), testutil.NewState(2)
	a.Cost = 1
	b.Cost = 0.5
	s.Update(nil, testutil.StateSlice(a, b), nil)

	const draws = 30000
	counts := map[uint64]int{}
	for i := 0; i < draws; i++ {
		counts[s.SelectState().ID()]++
	}

	assert.InDelta(t, draws/3, counts[a.ID()], draws*0.02)
	assert.InDelta(t, 2*draws/3, counts[b.ID()], draws*0.02)
}

func TestWeightFormulas(t *testing.T) {
	reg := stats.NewRegistry()
	for i := 0; i < 4; i++ {
		reg.StepInstruction(7)
	}
	reg.SetDistanceToUncovered(func(pc model.ProgramPoint, onReturn uint64) uint64 {
		return 10
	})
	reg.SetDistanceToTargetCall(func(pc model.ProgramPoint, onReturn uint64) uint64 {
		return 20
	})

	st := testutil.NewState(1)
	st.SetPC(testutil.Point(7))
	st.StateWeight = 3.5
	st.Cost = 2
	st.SinceCovNew = 1500
	st.TopFrame.CallPathInsts = 4

	tests := []struct {
		kind WeightKind
		want float64
	}{
		{kind: WeightDepth, want: 3.5},
		{kind: WeightInstCount, want: 1. / 16},    // (1/4)^2
		{kind: WeightCPInstCount, want: 1. / 4},   // 1/4
		{kind: WeightQueryCost, want: 1. / 2},     // 1/cost
		{kind: WeightMinDistToUncovered, want: 1. / 100}, // (1/10)^2
		// (1/500)^2 + (1/10)^2
		{kind: WeightCoveringNew, want: 1./(500*500) + 1./100},
		// (1/500)^2 + (1/20)^2, distance redefined as distance to call
		{kind: WeightPatchTesting, want: 1./(500*500) + 1./400},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := NewWeightedRandomSearcher(tt.kind, reg, rng.New(1))
			assert.InEpsilon(t, tt.want, s.weight(st), 1e-12)
		})
	}
}

func TestWeightFormulaEdgeCases(t *testing.T) {
	reg := stats.NewRegistry()

	st := testutil.NewState(1)
	st.Cost = 0.05

	// Cheap queries hit the flat ceiling.
	s := NewWeightedRandomSearcher(WeightQueryCost, reg, rng.New(1))
	assert.Equal(t, 1., s.weight(st))

	// An unexecuted instruction counts as one execution.
	s = NewWeightedRandomSearcher(WeightInstCount, reg, rng.New(1))
	assert.Equal(t, 1., s.weight(st))

	// An unavailable distance metric is treated as 10000.
	s = NewWeightedRandomSearcher(WeightMinDistToUncovered, reg, rng.New(1))
	assert.InEpsilon(t, 1./(10000.*10000.), s.weight(st), 1e-12)

	// No coverage progress yet: the recency term stays zero.
	st.SinceCovNew = 0
	s = NewWeightedRandomSearcher(WeightCoveringNew, reg, rng.New(1))
	assert.InEpsilon(t, 1./(10000.*10000.), s.weight(st), 1e-12)

	// Recent progress saturates the recency term at one.
	st.SinceCovNew = 500
	assert.InEpsilon(t, 1.+1./(10000.*10000.), s.weight(st), 1e-12)
}

func TestWeightedRandomReweighsCurrent(t *testing.T) {
	s := NewWeightedRandomSearcher(WeightQueryCost, stats.NewRegistry(), rng.New(1))
	a := testutil.NewState(1)
	a.Cost = 2
	s.Update(nil, testutil.StateSlice(a), nil)

	a.Cost = 4
	s.Update(a, nil, nil)

	got, ok := s.states.Weight(model.State(a))
	require.True(t, ok)
	assert.InEpsilon(t, 0.25, got, 1e-12)
}

func TestWeightedRandomDepthKeepsWeights(t *testing.T) {
	s := NewWeightedRandomSearcher(WeightDepth, stats.NewRegistry(), rng.New(1))
	a := testutil.NewState(1)
	a.StateWeight = 2
	s.Update(nil, testutil.StateSlice(a), nil)

	// Depth weighting never re-scores on update.
	a.StateWeight = 9
	s.Update(a, nil, nil)

	got, ok := s.states.Weight(model.State(a))
	require.True(t, ok)
	assert.Equal(t, 2., got)
}

func TestWeightedRandomInvalidRemovalPanics(t *testing.T) {
	s := NewWeightedRandomSearcher(WeightDepth, stats.NewRegistry(), rng.New(1))
	s.Update(nil, testutil.StateSlice(testutil.NewState(1)), nil)

	assert.Panics(t, func() {
		s.Update(nil, nil, testutil.StateSlice(testutil.NewState(99)))
	})
}

func TestWeightedRandomRoundTrip(t *testing.T) {
	s := NewWeightedRandomSearcher(WeightDepth, stats.NewRegistry(), rng.New(7))
	a, b, c := testutil.NewState(1), testutil.NewState(2), testutil.NewState(3)
	s.Update(nil, testutil.StateSlice(a, b, c), nil)
	s.Update(nil, nil, testutil.StateSlice(b))

	got := drain(s)
	assert.ElementsMatch(t, testutil.StateSlice(a, c), got)
}
