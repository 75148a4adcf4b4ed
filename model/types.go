package model

// Priority classifies recovery states into scheduling tiers.
type Priority int

const (
	// PriorityLow is the default tier, scheduled by the ordinary recovery policy.
	PriorityLow Priority = iota
	// PriorityHigh preempts both the originating and the low-priority
	// recovery population until its root state resumes.
	PriorityHigh
)

// String returns a string representation of the Priority.
func (p Priority) String() string {
	if p == PriorityHigh {
		return "high"
	}
	return "low"
}

// ProgramPoint is the static identity of the instruction a state is about
// to execute. Two states at the same source instruction observe the same
// ProgramPoint identity even though their dynamic contexts differ.
type ProgramPoint interface {
	// ID is the dense static instruction identifier. It indexes the
	// per-instruction statistics and keys the merge-point maps.
	ID() uint32

	// IsCallTo reports whether the instruction is a direct call to the
	// named function. Used to recognize designated merge points.
	IsCallTo(fn string) bool
}

// Frame is the topmost call-stack frame of a state.
type Frame interface {
	// CallPathInstructions is the number of instructions executed on the
	// current call path.
	CallPathInstructions() uint64

	// MinDistToUncoveredOnReturn is the minimum static distance to
	// uncovered code once the frame returns.
	MinDistToUncoveredOnReturn() uint64
}

// State is the scheduling core's view of a live execution state.
//
// The engine owns the state; the core only reads the fields below and
// mutates the two bookkeeping knobs it is responsible for (advancing the
// program counter past a consumed merge call, retagging priority).
type State interface {
	// ID is a stable identifier assigned by the engine, used for logging
	// and trace output only.
	ID() uint64

	// Weight is the depth-based default priority, maintained by the engine.
	Weight() float64

	// PC is the instruction the state executes next.
	PC() ProgramPoint

	// AdvancePC moves the program counter past the current instruction.
	// Merging policies call this to step a state over a consumed merge call.
	AdvancePC()

	// QueryCost is the accumulated solver cost of the state's path.
	QueryCost() float64

	// InstsSinceCovNew is the number of instructions executed since the
	// state last covered new code. Zero means it never has.
	InstsSinceCovNew() uint64

	// Frame is the topmost call-stack frame.
	Frame() Frame

	// TreeNode is the state's leaf in the binary process tree.
	TreeNode() *TreeNode

	// Suspended reports whether the state is administratively suspended
	// in favor of a recovery delegate.
	Suspended() bool

	// Resumed reports whether a previously suspended state has resumed.
	Resumed() bool

	// IsRecovery reports whether this state exists to re-derive a
	// previously explored path rather than to explore new code.
	IsRecovery() bool

	// RecoveryState is the state currently recovering on behalf of a
	// suspended state. Selection follows this delegation chain until it
	// reaches a non-suspended state.
	RecoveryState() State

	// Level is the nesting depth of a recovery state. Root-level recovery
	// states have level zero.
	Level() uint32

	// Priority is the scheduling tier of a recovery state.
	Priority() Priority

	// SetPriority retags the scheduling tier. Only the scheduling core
	// writes this field.
	SetPriority(p Priority)

	// Merge attempts to consolidate other into the receiver. On success
	// the receiver subsumes both paths and other becomes redundant.
	Merge(other State) bool
}

// TreeNode is a node of the binary process tree. The engine builds and
// garbage-collects the tree; the scheduling core only walks it.
//
// A leaf optionally holds exactly one live state; internal nodes hold none.
type TreeNode struct {
	Left  *TreeNode
	Right *TreeNode
	State State
}

// Engine is the set of services the scheduling core requires from the
// execution engine.
type Engine interface {
	// TerminateState irrevocably destroys a state. The engine reports the
	// destruction back through the removed set of a later Update call.
	TerminateState(s State)

	// ProcessTree returns the root of the binary process tree.
	ProcessTree() *TreeNode

	// NumStates is the number of currently live states.
	NumStates() int
}
