// Package symgo provides the state scheduling core of a symbolic execution
// engine: it decides, at every execution step, which of potentially
// thousands of concurrently live exploration states to advance next.
//
// Scheduling policies implement the searcher.Searcher capability set and
// compose by wrapping, so batching can wrap weighted-random can wrap
// depth-first. The symgo package is the facade: it turns a Config into a
// fully composed policy stack.
//
// # Quick Start
//
//	cfg := symgo.DefaultConfig()
//	cfg.Searcher = "covnew"
//	cfg.UseBatching = true
//
//	s, err := symgo.NewSearcher(engine, provider, cfg,
//	    symgo.WithLogger(symgo.NewTextLogger(slog.LevelInfo)),
//	    symgo.WithRNG(rng.New(42)),
//	)
//
// The engine then drives the strict selection cycle:
//
//	for !s.Empty() {
//	    st := s.SelectState()
//	    added, removed := step(st)
//	    s.Update(st, added, removed)
//	}
//
// The core never executes instructions, never decides when forking happens,
// and never owns state lifetimes; it only reasons about which live states
// to prefer.
package symgo
