package searcher

import (
	"log/slog"

	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/trace"
)

type mergeOptions struct {
	logger   *slog.Logger
	tracer   *trace.Recorder
	debugLog bool
}

// MergeOption configures a merging searcher.
type MergeOption func(*mergeOptions)

// WithMergeLogger sets the logger for merge diagnostics.
func WithMergeLogger(l *slog.Logger) MergeOption {
	return func(o *mergeOptions) {
		o.logger = l
	}
}

// WithMergeTracer records merge and bump events to a trace recorder.
func WithMergeTracer(t *trace.Recorder) MergeOption {
	return func(o *mergeOptions) {
		o.tracer = t
	}
}

// WithDebugLogMerge enables per-merge debug logging.
func WithDebugLogMerge() MergeOption {
	return func(o *mergeOptions) {
		o.debugLog = true
	}
}

func applyMergeOptions(opts []MergeOption) mergeOptions {
	o := mergeOptions{logger: nopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// mergePoint reports the static id of the merge call the state sits at,
// if any.
func mergePoint(es model.State, mergeFunction string) (uint32, bool) {
	if mergeFunction == "" {
		return 0, false
	}
	pc := es.PC()
	if pc.IsCallTo(mergeFunction) {
		return pc.ID(), true
	}
	return 0, false
}

// BumpMergingSearcher wraps a base searcher and holds at most one state
// per merge point. A state arriving at an occupied merge point either
// merges with the occupant (the arrival is terminated) or bumps it out
// (the occupant is advanced past the call and returned to the base),
// trading merge opportunities for bounded memory.
type BumpMergingSearcher struct {
	engine        model.Engine
	base          Searcher
	mergeFunction string
	statesAtMerge map[uint32]model.State
	opts          mergeOptions
}

var _ Searcher = (*BumpMergingSearcher)(nil)

// NewBumpMergingSearcher creates a bump-merging searcher recognizing calls
// to mergeFunction as rendezvous points.
func NewBumpMergingSearcher(engine model.Engine, base Searcher, mergeFunction string, opts ...MergeOption) *BumpMergingSearcher {
	return &BumpMergingSearcher{
		engine:        engine,
		base:          base,
		mergeFunction: mergeFunction,
		statesAtMerge: make(map[uint32]model.State),
		opts:          applyMergeOptions(opts),
	}
}

// SelectState implements Searcher.
func (s *BumpMergingSearcher) SelectState() model.State {
	for {
		// Out of base states: release an arbitrary waiting state past its
		// merge call and retry.
		if s.base.Empty() {
			for mp, es := range s.statesAtMerge {
				delete(s.statesAtMerge, mp)
				es.AdvancePC()
				AddState(s.base, es)
				break
			}
		}

		es := s.base.SelectState()

		mp, ok := mergePoint(es, s.mergeFunction)
		if !ok {
			return es
		}

		RemoveState(s.base, es)

		occupant, exists := s.statesAtMerge[mp]
		if !exists {
			s.statesAtMerge[mp] = es
			continue
		}

		if occupant.Merge(es) {
			if s.opts.debugLog {
				s.opts.logger.Debug("merged at merge point",
					"merge_point", mp, "into", occupant.ID(), "from", es.ID())
			}
			if s.opts.tracer != nil {
				s.opts.tracer.Record(trace.Event{
					Kind: trace.KindMerge, StateID: occupant.ID(), OtherID: es.ID(), MergePoint: mp,
				})
			}
			// The merged-away state is re-added so the termination
			// notification the engine sends next is well formed.
			AddState(s.base, es)
			s.engine.TerminateState(es)
		} else {
			// The bump: the arrival replaces the occupant, which is
			// advanced past the call and returned to the base.
			s.statesAtMerge[mp] = es
			occupant.AdvancePC()
			AddState(s.base, occupant)

			if s.opts.tracer != nil {
				s.opts.tracer.Record(trace.Event{
					Kind: trace.KindBump, StateID: es.ID(), OtherID: occupant.ID(), MergePoint: mp,
				})
			}
		}
	}
}

// Update implements Searcher.
func (s *BumpMergingSearcher) Update(current model.State, added, removed []model.State) {
	s.base.Update(current, added, removed)
}

// Empty implements Searcher.
func (s *BumpMergingSearcher) Empty() bool {
	return s.base.Empty() && len(s.statesAtMerge) == 0
}

// MergingSearcher wraps a base searcher and defers consolidation: states
// reaching a merge point accumulate until the base is exhausted, then a
// single batch pass greedily merges within each merge-point group before
// releasing the survivors.
//
// Precondition: the base searcher's state removal must not be a no-op.
// Wrapping RandomPathSearcher therefore loops forever; the factory rejects
// that combination.
type MergingSearcher struct {
	engine        model.Engine
	base          Searcher
	mergeFunction string
	statesAtMerge map[model.State]struct{}
	opts          mergeOptions
}

var _ Searcher = (*MergingSearcher)(nil)

// NewMergingSearcher creates a batch-merging searcher recognizing calls to
// mergeFunction as rendezvous points.
func NewMergingSearcher(engine model.Engine, base Searcher, mergeFunction string, opts ...MergeOption) *MergingSearcher {
	return &MergingSearcher{
		engine:        engine,
		base:          base,
		mergeFunction: mergeFunction,
		statesAtMerge: make(map[model.State]struct{}),
		opts:          applyMergeOptions(opts),
	}
}

// SelectState implements Searcher.
func (s *MergingSearcher) SelectState() model.State {
	for {
		// Drain the base; park every state sitting at a merge point.
		for !s.base.Empty() {
			es := s.base.SelectState()
			if _, ok := mergePoint(es, s.mergeFunction); !ok {
				return es
			}
			RemoveState(s.base, es)
			s.statesAtMerge[es] = struct{}{}
		}

		// Group the waiting states by merge point.
		merges := make(map[uint32][]model.State)
		for es := range s.statesAtMerge {
			mp, _ := mergePoint(es, s.mergeFunction)
			merges[mp] = append(merges[mp], es)
		}

		if s.opts.debugLog {
			s.opts.logger.Debug("all at merge", "merge_points", len(merges))
		}

		for mp, group := range merges {
			s.mergeGroup(mp, group)
		}

		if s.opts.debugLog {
			s.opts.logger.Debug("merge complete, continuing")
		}
	}
}

// mergeGroup greedily merges within one merge-point group: pick a base
// state, fold in every state it merges with, terminate those, release the
// base past the call, repeat with the remainder.
func (s *MergingSearcher) mergeGroup(mp uint32, group []model.State) {
	toMerge := group
	for len(toMerge) > 0 {
		base := toMerge[0]
		toMerge = toMerge[1:]

		var unmerged []model.State
		for _, es := range toMerge {
			if base.Merge(es) {
				if s.opts.debugLog {
					s.opts.logger.Debug("merged",
						"merge_point", mp, "into", base.ID(), "from", es.ID())
				}
				if s.opts.tracer != nil {
					s.opts.tracer.Record(trace.Event{
						Kind: trace.KindMerge, StateID: base.ID(), OtherID: es.ID(), MergePoint: mp,
					})
				}
				delete(s.statesAtMerge, es)
				s.engine.TerminateState(es)
			} else {
				unmerged = append(unmerged, es)
			}
		}
		toMerge = unmerged

		// Step past the merge call and toss the survivor back in the pool.
		delete(s.statesAtMerge, base)
		base.AdvancePC()
		AddState(s.base, base)
	}
}

// Update implements Searcher. Removed states are scrubbed out of the
// waiting set first; such states were pulled from the base earlier and
// must not be forwarded as base removals.
func (s *MergingSearcher) Update(current model.State, added, removed []model.State) {
	if len(removed) > 0 {
		alt := removed[:0:0]
		for _, es := range removed {
			if _, ok := s.statesAtMerge[es]; ok {
				delete(s.statesAtMerge, es)
			} else {
				alt = append(alt, es)
			}
		}
		s.base.Update(current, added, alt)
		return
	}
	s.base.Update(current, added, removed)
}

// Empty implements Searcher.
func (s *MergingSearcher) Empty() bool {
	return s.base.Empty() && len(s.statesAtMerge) == 0
}
