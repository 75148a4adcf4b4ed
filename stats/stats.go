// Package stats supplies the per-instruction statistics consumed by the
// coverage-oriented scheduling policies.
package stats

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/symgo/model"
)

// Provider is the statistics surface the weight-based policies read.
// The execution engine typically implements it, or feeds a Registry.
type Provider interface {
	// InstructionCount is the number of times the instruction with the
	// given static id has been executed, across all states.
	InstructionCount(id uint32) uint64

	// TotalInstructions is the global executed-instruction counter.
	TotalInstructions() uint64

	// MinDistToUncovered is the minimum static distance from pc to
	// uncovered code, given the distance remaining once the current frame
	// returns. Zero means the metric is unavailable.
	MinDistToUncovered(pc model.ProgramPoint, onReturn uint64) uint64

	// MinDistToTargetCall is the minimum static distance from pc to a
	// designated target call. Zero means the metric is unavailable.
	MinDistToTargetCall(pc model.ProgramPoint, onReturn uint64) uint64
}

// DistanceFunc computes a static distance metric for a program point.
type DistanceFunc func(pc model.ProgramPoint, onReturn uint64) uint64

// Registry is an in-memory Provider fed by the execution engine as it
// steps instructions. The covered-instruction set is a roaring bitmap, so
// coverage queries stay cheap for large programs.
//
// Registry is not safe for concurrent use.
type Registry struct {
	execCounts map[uint32]uint64
	total      uint64
	covered    *roaring.Bitmap

	distToUncovered  DistanceFunc
	distToTargetCall DistanceFunc
}

var _ Provider = (*Registry)(nil)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		execCounts: make(map[uint32]uint64),
		covered:    roaring.New(),
	}
}

// SetDistanceToUncovered installs the distance-to-uncovered-code metric.
func (r *Registry) SetDistanceToUncovered(fn DistanceFunc) {
	r.distToUncovered = fn
}

// SetDistanceToTargetCall installs the distance-to-target-call metric used
// by patch-testing weights.
func (r *Registry) SetDistanceToTargetCall(fn DistanceFunc) {
	r.distToTargetCall = fn
}

// StepInstruction records one execution of the instruction with the given
// static id and marks it covered.
func (r *Registry) StepInstruction(id uint32) {
	r.execCounts[id]++
	r.total++
	r.covered.Add(id)
}

// Covered reports whether the instruction has been executed at least once.
func (r *Registry) Covered(id uint32) bool {
	return r.covered.Contains(id)
}

// CoveredCount is the number of distinct instructions executed so far.
func (r *Registry) CoveredCount() uint64 {
	return r.covered.GetCardinality()
}

// InstructionCount implements Provider.
func (r *Registry) InstructionCount(id uint32) uint64 {
	return r.execCounts[id]
}

// TotalInstructions implements Provider.
func (r *Registry) TotalInstructions() uint64 {
	return r.total
}

// MinDistToUncovered implements Provider. It returns zero when no metric
// is installed; callers treat zero as "unavailable".
func (r *Registry) MinDistToUncovered(pc model.ProgramPoint, onReturn uint64) uint64 {
	if r.distToUncovered == nil {
		return 0
	}
	return r.distToUncovered(pc, onReturn)
}

// MinDistToTargetCall implements Provider.
func (r *Registry) MinDistToTargetCall(pc model.ProgramPoint, onReturn uint64) uint64 {
	if r.distToTargetCall == nil {
		return 0
	}
	return r.distToTargetCall(pc, onReturn)
}
