package searcher

import (
	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
)

// SplittedSearcher partitions the live population into originating states
// (primary exploration) and recovery states, each scheduled by its own
// sub-searcher. A weighted coin with the configured ratio (0-100, the
// percentage of selections granted to the recovery side) decides per call
// when both sides are populated.
type SplittedSearcher struct {
	base     Searcher
	recovery Searcher
	ratio    int
	rng      *rng.RNG
}

var _ Searcher = (*SplittedSearcher)(nil)

// NewSplittedSearcher creates a splitted searcher routing originating
// states to base and recovery states to recovery.
func NewSplittedSearcher(base, recovery Searcher, ratio int, r *rng.RNG) *SplittedSearcher {
	return &SplittedSearcher{
		base:     base,
		recovery: recovery,
		ratio:    ratio,
		rng:      r,
	}
}

// SelectState implements Searcher.
func (s *SplittedSearcher) SelectState() model.State {
	if s.base.Empty() {
		// The recovery states are supposed to be not empty.
		return s.recovery.SelectState()
	}

	if s.recovery.Empty() {
		return s.base.SelectState()
	}

	if s.rng.Intn(100) < s.ratio {
		return s.recovery.SelectState()
	}
	return s.base.SelectState()
}

// Update implements Searcher. The delta is split by the recovery
// predicate; the side the current state does not belong to receives a nil
// current so it does not misattribute progress.
func (s *SplittedSearcher) Update(current model.State, added, removed []model.State) {
	addedOriginating, addedRecovery := splitStates(added)
	removedOriginating, removedRecovery := splitStates(removed)

	if current != nil && current.IsRecovery() {
		s.base.Update(nil, addedOriginating, removedOriginating)
	} else {
		s.base.Update(current, addedOriginating, removedOriginating)
	}

	if current != nil && !current.IsRecovery() {
		s.recovery.Update(nil, addedRecovery, removedRecovery)
	} else {
		s.recovery.Update(current, addedRecovery, removedRecovery)
	}
}

// Empty implements Searcher.
func (s *SplittedSearcher) Empty() bool {
	return s.base.Empty() && s.recovery.Empty()
}

func splitStates(states []model.State) (originating, recovery []model.State) {
	for _, es := range states {
		if es.IsRecovery() {
			recovery = append(recovery, es)
		} else {
			originating = append(originating, es)
		}
	}
	return originating, recovery
}

// RandomRecoveryPath schedules the recovery population. While nested
// recovery levels are active it walks the top of a stack of process-tree
// roots, one per level, exactly like RandomPathSearcher; once no nested
// level remains it falls back to flat selection over the residual list.
type RandomRecoveryPath struct {
	treeStack []*model.TreeNode
	states    []model.State
	rng       *rng.RNG
}

var _ Searcher = (*RandomRecoveryPath)(nil)

// NewRandomRecoveryPath creates a recovery-path searcher drawing from r.
func NewRandomRecoveryPath(r *rng.RNG) *RandomRecoveryPath {
	return &RandomRecoveryPath{rng: r}
}

// SelectState implements Searcher.
func (s *RandomRecoveryPath) SelectState() model.State {
	if len(s.treeStack) == 0 {
		// No nested recovery level remains; order no longer matters.
		return s.states[0]
	}

	top := s.treeStack[len(s.treeStack)-1]
	return walkTree(top, s.rng)
}

// Update implements Searcher. A newly added recovery state whose level
// equals the current stack depth opens a new nested level: its tree node
// becomes the new top root. The top root is popped when the unique
// deepest-level recovery state resumes.
func (s *RandomRecoveryPath) Update(current model.State, added, removed []model.State) {
	for _, es := range added {
		if int(es.Level()) == len(s.treeStack) {
			s.treeStack = append(s.treeStack, es.TreeNode())
		}
		s.states = append(s.states, es)
	}

	for _, es := range removed {
		if es.Resumed() && int(es.Level()) == len(s.treeStack)-1 {
			s.treeStack = s.treeStack[:len(s.treeStack)-1]
		}

		for i, st := range s.states {
			if es == st {
				s.states = append(s.states[:i], s.states[i+1:]...)
				break
			}
		}
	}
}

// Empty implements Searcher.
func (s *RandomRecoveryPath) Empty() bool {
	return len(s.treeStack) == 0 && len(s.states) == 0
}

// OptimizedSplittedSearcher is SplittedSearcher with a third, strictly
// higher tier: recovery states flagged high priority always preempt both
// other tiers. When a root-level high-priority recovery state resumes, the
// entire high-priority cohort is drained and demoted into the ordinary
// recovery searcher, so priority inflation does not persist across
// recovery episodes.
type OptimizedSplittedSearcher struct {
	base         Searcher
	recovery     Searcher
	highPriority Searcher
	ratio        int
	rng          *rng.RNG
}

var _ Searcher = (*OptimizedSplittedSearcher)(nil)

// NewOptimizedSplittedSearcher creates an optimized splitted searcher.
func NewOptimizedSplittedSearcher(base, recovery, highPriority Searcher, ratio int, r *rng.RNG) *OptimizedSplittedSearcher {
	return &OptimizedSplittedSearcher{
		base:         base,
		recovery:     recovery,
		highPriority: highPriority,
		ratio:        ratio,
		rng:          r,
	}
}

// SelectState implements Searcher.
func (s *OptimizedSplittedSearcher) SelectState() model.State {
	// High-priority recovery states are considered first.
	if !s.highPriority.Empty() {
		return s.highPriority.SelectState()
	}

	if s.base.Empty() {
		return s.recovery.SelectState()
	}

	if s.recovery.Empty() {
		return s.base.SelectState()
	}

	if s.rng.Intn(100) < s.ratio {
		return s.recovery.SelectState()
	}
	return s.base.SelectState()
}

// Update implements Searcher.
func (s *OptimizedSplittedSearcher) Update(current model.State, added, removed []model.State) {
	var addedOriginating, addedRecovery []model.State
	var removedOriginating, removedRecovery []model.State

	for _, es := range added {
		switch {
		case !es.IsRecovery():
			addedOriginating = append(addedOriginating, es)
		case es.Priority() == model.PriorityHigh:
			AddState(s.highPriority, es)
		default:
			addedRecovery = append(addedRecovery, es)
		}
	}

	for _, es := range removed {
		switch {
		case !es.IsRecovery():
			removedOriginating = append(removedOriginating, es)
		case es.Priority() == model.PriorityHigh:
			RemoveState(s.highPriority, es)
			// Only a resuming root recovery state graduates its cohort:
			// the wave is over, so the whole tier drains into the
			// ordinary recovery searcher at low priority.
			if es.Resumed() && es.Level() == 0 {
				for !s.highPriority.Empty() {
					rs := s.highPriority.SelectState()
					RemoveState(s.highPriority, rs)
					rs.SetPriority(model.PriorityLow)
					AddState(s.recovery, rs)
				}
			}
		default:
			removedRecovery = append(removedRecovery, es)
		}
	}

	if current != nil && current.IsRecovery() {
		s.base.Update(nil, addedOriginating, removedOriginating)
	} else {
		s.base.Update(current, addedOriginating, removedOriginating)
	}

	if current != nil && !current.IsRecovery() {
		s.recovery.Update(nil, addedRecovery, removedRecovery)
	} else {
		s.recovery.Update(current, addedRecovery, removedRecovery)
	}
}

// Empty implements Searcher.
func (s *OptimizedSplittedSearcher) Empty() bool {
	return s.base.Empty() && s.recovery.Empty() && s.highPriority.Empty()
}
