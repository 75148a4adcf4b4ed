// Package model defines the shared domain types of the scheduling core.
//
// # Identity & Views
//
//   - State: non-owning view of a live execution state (owned by the engine)
//   - ProgramPoint: static identity of the instruction a state executes next
//   - Frame: topmost call-stack frame of a state
//   - TreeNode: node of the binary process tree (the fork history)
//
// # Services
//
//   - Engine: the callbacks the scheduling core requires from the execution
//     engine (state termination, process-tree root, live-state count)
//
// The execution engine owns every state outright. Searchers hold non-owning
// references and must never use a reference after the engine reports the
// state removed.
package model
