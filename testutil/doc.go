// Package testutil provides testing utilities for symgo.
//
// This package is intended for use in tests and examples only.
// It provides a fake execution state, a fake engine recording
// terminations, and builders for small process trees.
//
// # Fake States
//
//	st := testutil.NewState(1)
//	st.SetPC(testutil.CallTo(7, "merge"))
//
// # Fake Engine
//
//	eng := testutil.NewEngine(testutil.Branch(testutil.Leaf(a), testutil.Leaf(b)))
//	eng.Terminated // states passed to TerminateState, in order
package testutil
