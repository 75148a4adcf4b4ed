// Package searcher implements the state scheduling policies of the
// symbolic execution core.
//
// All policies implement the Searcher interface and compose by wrapping:
// a higher-order searcher owns one or more inner searchers and forwards or
// filters calls to them.
//
//   - Primitive policies own a flat container of states: DFS, BFS, Random,
//     WeightedRandom, RandomPath.
//   - Consolidation policies merge states reaching the same program point:
//     BumpMerging, Merging.
//   - Throughput policies control how often selection recomputes:
//     Batching, IterativeDeepeningTime.
//   - Composition policies combine multiple searchers: Interleaved,
//     Splitted, OptimizedSplitted, RandomRecoveryPath.
//
// Searchers hold non-owning references into the engine-owned state
// population; they never mutate execution semantics, only the bookkeeping
// fields they are responsible for.
package searcher
