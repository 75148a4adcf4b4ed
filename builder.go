// Package symgo provides the facade that turns a Config into a composed
// policy stack.
//
// This file implements the searcher factory. Composition order mirrors the
// original engine: core policy (optionally split into originating and
// recovery populations), interleaving, merging, batching, iterative
// deepening — outermost last.
package symgo

import (
	"time"

	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
	"github.com/hupe1980/symgo/searcher"
	"github.com/hupe1980/symgo/stats"
)

var coreSearcherNames = map[string]struct{}{
	"dfs":           {},
	"bfs":           {},
	"random":        {},
	"random-path":   {},
	"depth":         {},
	"icnt":          {},
	"cpicnt":        {},
	"query-cost":    {},
	"md2u":          {},
	"covnew":        {},
	"patch-testing": {},
}

var weightKinds = map[string]searcher.WeightKind{
	"depth":         searcher.WeightDepth,
	"icnt":          searcher.WeightInstCount,
	"cpicnt":        searcher.WeightCPInstCount,
	"query-cost":    searcher.WeightQueryCost,
	"md2u":          searcher.WeightMinDistToUncovered,
	"covnew":        searcher.WeightCoveringNew,
	"patch-testing": searcher.WeightPatchTesting,
}

// NewSearcher builds the policy stack described by cfg.
//
// engine is required whenever the stack contains a random-path or merging
// policy; provider is required for weight-based selection and batching.
func NewSearcher(engine model.Engine, provider stats.Provider, cfg Config, opts ...Option) (searcher.Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rng.New(cfg.Seed)
	}

	s, err := newCoreSearcher(cfg.Searcher, engine, provider, o.rng)
	if err != nil {
		return nil, err
	}

	if cfg.SplitSearcher {
		recovery := searcher.NewRandomRecoveryPath(o.rng)
		if cfg.OptimizedSplit {
			// High-priority recovery states drain depth-first.
			s = searcher.NewOptimizedSplittedSearcher(s, recovery, searcher.NewDFSSearcher(), cfg.SplitRatio, o.rng)
		} else {
			s = searcher.NewSplittedSearcher(s, recovery, cfg.SplitRatio, o.rng)
		}
	}

	if len(cfg.Interleave) > 0 {
		members := []searcher.Searcher{s}
		for _, name := range cfg.Interleave {
			member, err := newCoreSearcher(name, engine, provider, o.rng)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		s = searcher.NewInterleavedSearcher(members...)
	}

	if cfg.UseMerge || cfg.UseBumpMerge {
		if engine == nil {
			return nil, ErrNilEngine
		}
		mergeOpts := []searcher.MergeOption{searcher.WithMergeLogger(o.logger.Logger)}
		if o.tracer != nil {
			mergeOpts = append(mergeOpts, searcher.WithMergeTracer(o.tracer))
		}
		if cfg.DebugLogMerge {
			mergeOpts = append(mergeOpts, searcher.WithDebugLogMerge())
		}
		if cfg.UseMerge {
			s = searcher.NewMergingSearcher(engine, s, cfg.MergeFunction, mergeOpts...)
		}
		if cfg.UseBumpMerge {
			s = searcher.NewBumpMergingSearcher(engine, s, cfg.MergeFunction, mergeOpts...)
		}
	}

	if cfg.UseBatching {
		if provider == nil {
			return nil, ErrNilStats
		}
		s = searcher.NewBatchingSearcher(s, provider, time.Duration(cfg.BatchTime), cfg.BatchInstructions,
			searcher.WithBatchingLogger(o.logger.Logger))
	}

	if cfg.UseIterativeDeepening {
		s = searcher.NewIterativeDeepeningTimeSearcher(s,
			searcher.WithIterativeLogger(o.logger.Logger))
	}

	return s, nil
}

func newCoreSearcher(name string, engine model.Engine, provider stats.Provider, r *rng.RNG) (searcher.Searcher, error) {
	switch name {
	case "dfs":
		return searcher.NewDFSSearcher(), nil
	case "bfs":
		return searcher.NewBFSSearcher(), nil
	case "random":
		return searcher.NewRandomSearcher(r), nil
	case "random-path":
		if engine == nil {
			return nil, ErrNilEngine
		}
		return searcher.NewRandomPathSearcher(engine, r), nil
	default:
		kind, ok := weightKinds[name]
		if !ok {
			return nil, &ErrUnknownSearcher{Name: name}
		}
		if provider == nil {
			return nil, ErrNilStats
		}
		return searcher.NewWeightedRandomSearcher(kind, provider, r), nil
	}
}
