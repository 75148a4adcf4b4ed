package testutil

import (
	"github.com/hupe1980/symgo/model"
)

// ProgramPoint is a fake static instruction identity.
type ProgramPoint struct {
	InstrID uint32
	Target  string // non-empty marks a direct call to Target
}

var _ model.ProgramPoint = (*ProgramPoint)(nil)

// Point creates a plain program point with the given static id.
func Point(id uint32) *ProgramPoint {
	return &ProgramPoint{InstrID: id}
}

// CallTo creates a program point that is a direct call to target.
func CallTo(id uint32, target string) *ProgramPoint {
	return &ProgramPoint{InstrID: id, Target: target}
}

// ID implements model.ProgramPoint.
func (p *ProgramPoint) ID() uint32 { return p.InstrID }

// IsCallTo implements model.ProgramPoint.
func (p *ProgramPoint) IsCallTo(fn string) bool {
	return fn != "" && p.Target == fn
}

// Frame is a fake topmost call-stack frame.
type Frame struct {
	CallPathInsts   uint64
	MinDistOnReturn uint64
}

var _ model.Frame = (*Frame)(nil)

// CallPathInstructions implements model.Frame.
func (f *Frame) CallPathInstructions() uint64 { return f.CallPathInsts }

// MinDistToUncoveredOnReturn implements model.Frame.
func (f *Frame) MinDistToUncoveredOnReturn() uint64 { return f.MinDistOnReturn }

// State is a fake execution state with settable scheduling fields.
type State struct {
	StateID       uint64
	StateWeight   float64
	Cost          float64
	SinceCovNew   uint64
	TopFrame      Frame
	Node          *model.TreeNode
	SuspendedFlag bool
	ResumedFlag   bool
	RecoveryFlag  bool
	Delegate      model.State
	RecoveryLevel uint32
	Prio          model.Priority

	// MergeOK is what Merge reports; MergedIn records the states merged
	// into this one.
	MergeOK  bool
	MergedIn []model.State

	pc       *ProgramPoint
	advanced int
}

var _ model.State = (*State)(nil)

// NewState creates a fake state with the given id, unit weight, and a
// plain program point sharing the id.
func NewState(id uint64) *State {
	return &State{
		StateID:     id,
		StateWeight: 1,
		pc:          Point(uint32(id)),
	}
}

// SetPC repositions the fake state's program counter.
func (s *State) SetPC(p *ProgramPoint) { s.pc = p }

// Advanced returns how many times AdvancePC was called.
func (s *State) Advanced() int { return s.advanced }

// ID implements model.State.
func (s *State) ID() uint64 { return s.StateID }

// Weight implements model.State.
func (s *State) Weight() float64 { return s.StateWeight }

// PC implements model.State.
func (s *State) PC() model.ProgramPoint { return s.pc }

// AdvancePC implements model.State. The fake moves to the next plain
// instruction, so an advanced state no longer sits at a merge call.
func (s *State) AdvancePC() {
	s.advanced++
	s.pc = Point(s.pc.InstrID + 1)
}

// QueryCost implements model.State.
func (s *State) QueryCost() float64 { return s.Cost }

// InstsSinceCovNew implements model.State.
func (s *State) InstsSinceCovNew() uint64 { return s.SinceCovNew }

// Frame implements model.State.
func (s *State) Frame() model.Frame { return &s.TopFrame }

// TreeNode implements model.State.
func (s *State) TreeNode() *model.TreeNode { return s.Node }

// Suspended implements model.State.
func (s *State) Suspended() bool { return s.SuspendedFlag }

// Resumed implements model.State.
func (s *State) Resumed() bool { return s.ResumedFlag }

// IsRecovery implements model.State.
func (s *State) IsRecovery() bool { return s.RecoveryFlag }

// RecoveryState implements model.State.
func (s *State) RecoveryState() model.State { return s.Delegate }

// Level implements model.State.
func (s *State) Level() uint32 { return s.RecoveryLevel }

// Priority implements model.State.
func (s *State) Priority() model.Priority { return s.Prio }

// SetPriority implements model.State.
func (s *State) SetPriority(p model.Priority) { s.Prio = p }

// Merge implements model.State.
func (s *State) Merge(other model.State) bool {
	if s.MergeOK {
		s.MergedIn = append(s.MergedIn, other)
	}
	return s.MergeOK
}

// Engine is a fake execution engine recording terminations.
type Engine struct {
	Root       *model.TreeNode
	Live       int
	Terminated []model.State
}

var _ model.Engine = (*Engine)(nil)

// NewEngine creates a fake engine with the given process-tree root.
func NewEngine(root *model.TreeNode) *Engine {
	return &Engine{Root: root}
}

// TerminateState implements model.Engine. Like the real engine it rewinds
// the terminated state's program counter to the previously executed
// instruction, so the state no longer sits at a merge call.
func (e *Engine) TerminateState(st model.State) {
	e.Terminated = append(e.Terminated, st)
	if fs, ok := st.(*State); ok {
		fs.pc = Point(fs.pc.InstrID)
	}
}

// ProcessTree implements model.Engine.
func (e *Engine) ProcessTree() *model.TreeNode { return e.Root }

// NumStates implements model.Engine.
func (e *Engine) NumStates() int { return e.Live }

// Leaf creates a process-tree leaf holding st and wires the state's
// back-reference when st is a fake State.
func Leaf(st model.State) *model.TreeNode {
	n := &model.TreeNode{State: st}
	if fs, ok := st.(*State); ok {
		fs.Node = n
	}
	return n
}

// Branch creates an internal process-tree node.
func Branch(left, right *model.TreeNode) *model.TreeNode {
	return &model.TreeNode{Left: left, Right: right}
}

// StateSlice converts fake states to the model slice the Searcher API
// consumes.
func StateSlice(states ...*State) []model.State {
	out := make([]model.State, len(states))
	for i, st := range states {
		out[i] = st
	}
	return out
}
