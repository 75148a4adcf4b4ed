package searcher

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
)

// Searcher decides, before every execution step, which live state the
// engine advances next.
//
// The engine drives a strict SelectState -> step -> Update cycle: after
// stepping it calls Update with the state just stepped and the complete
// sets of states forked and destroyed since the previous call. No method
// may be invoked concurrently with another.
//
// A state passed in the removed set must never be referenced again. A
// removal for a state the searcher never saw added is a contract violation
// and panics.
type Searcher interface {
	// SelectState returns the next state to advance. It must not be
	// called when Empty reports true.
	SelectState() model.State

	// Update applies the delta since the last call: current is the state
	// just stepped (nil if none is attributable), added holds newly forked
	// states and removed holds destroyed ones. No state appears in both.
	Update(current model.State, added, removed []model.State)

	// Empty reports whether the searcher tracks no selectable state.
	Empty() bool
}

// AddState routes a single state into s. Composing policies use it to
// re-route states between sub-searchers.
func AddState(s Searcher, st model.State) {
	s.Update(nil, []model.State{st}, nil)
}

// RemoveState pulls a single state out of s without the engine having
// destroyed it.
func RemoveState(s Searcher, st model.State) {
	s.Update(nil, nil, []model.State{st})
}

// maxDelegationHops caps recovery delegation chains. A chain longer than
// this is cyclic and indicates engine corruption.
const maxDelegationHops = 1 << 16

// walkTree performs a uniformly random root-to-leaf walk: forced direction
// at nodes with a single live child, an unbiased coin flip where both are
// live. Random bits are drawn 32 at a time and consumed one per branch.
//
// The resident state of the reached leaf may be suspended in favor of a
// delegate, so the walk follows the recovery chain to a runnable state.
func walkTree(n *model.TreeNode, r *rng.RNG) model.State {
	var flips uint32
	var bits uint

	for n.State == nil {
		switch {
		case n.Left == nil:
			n = n.Right
		case n.Right == nil:
			n = n.Left
		default:
			if bits == 0 {
				flips = r.Uint32()
				bits = 32
			}
			bits--
			if flips&(1<<bits) != 0 {
				n = n.Left
			} else {
				n = n.Right
			}
		}
	}

	return followDelegation(n.State)
}

func followDelegation(st model.State) model.State {
	for hops := 0; st.Suspended(); hops++ {
		if hops >= maxDelegationHops {
			panic(fmt.Sprintf("searcher: recovery delegation chain from state %d does not terminate", st.ID()))
		}
		st = st.RecoveryState()
	}
	return st
}

func panicInvalidRemoval(st model.State) {
	panic(fmt.Sprintf("searcher: invalid state removed (id %d)", st.ID()))
}

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
