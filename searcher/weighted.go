package searcher

import (
	"fmt"

	"github.com/hupe1980/symgo/discretepdf"
	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/rng"
	"github.com/hupe1980/symgo/stats"
)

// WeightKind selects the weight formula of a WeightedRandomSearcher.
type WeightKind int

const (
	// WeightDepth uses the state's engine-maintained depth weight verbatim.
	// It is the only kind that disables continuous re-weighting.
	WeightDepth WeightKind = iota
	// WeightInstCount penalizes frequently executed program points
	// quadratically, biasing toward rarely visited code.
	WeightInstCount
	// WeightCPInstCount penalizes instructions executed on the current
	// call path, linearly.
	WeightCPInstCount
	// WeightQueryCost prefers states whose paths are cheap to solve.
	WeightQueryCost
	// WeightMinDistToUncovered prefers states close to uncovered code.
	WeightMinDistToUncovered
	// WeightCoveringNew blends proximity to uncovered code with recency
	// of coverage progress.
	WeightCoveringNew
	// WeightPatchTesting is WeightCoveringNew with the distance metric
	// redefined as distance to a designated target call.
	WeightPatchTesting
)

// String returns the configuration name of the weight kind.
func (k WeightKind) String() string {
	switch k {
	case WeightDepth:
		return "depth"
	case WeightInstCount:
		return "icnt"
	case WeightCPInstCount:
		return "cpicnt"
	case WeightQueryCost:
		return "query-cost"
	case WeightMinDistToUncovered:
		return "md2u"
	case WeightCoveringNew:
		return "covnew"
	case WeightPatchTesting:
		return "patch-testing"
	default:
		return fmt.Sprintf("WeightKind(%d)", int(k))
	}
}

// WeightedRandomSearcher selects states proportionally to a kind-specific
// positive weight, drawn from a discrete PDF with logarithmic update cost.
type WeightedRandomSearcher struct {
	states        *discretepdf.PDF[model.State]
	stats         stats.Provider
	rng           *rng.RNG
	kind          WeightKind
	updateWeights bool
}

var _ Searcher = (*WeightedRandomSearcher)(nil)

// NewWeightedRandomSearcher creates a weighted random searcher of the
// given kind. provider supplies the per-instruction statistics the
// coverage-oriented kinds read.
func NewWeightedRandomSearcher(kind WeightKind, provider stats.Provider, r *rng.RNG) *WeightedRandomSearcher {
	switch kind {
	case WeightDepth, WeightInstCount, WeightCPInstCount, WeightQueryCost,
		WeightMinDistToUncovered, WeightCoveringNew, WeightPatchTesting:
	default:
		panic(fmt.Sprintf("searcher: invalid weight kind %d", int(kind)))
	}

	return &WeightedRandomSearcher{
		states:        discretepdf.New[model.State](r),
		stats:         provider,
		rng:           r,
		kind:          kind,
		updateWeights: kind != WeightDepth,
	}
}

// SelectState implements Searcher.
func (s *WeightedRandomSearcher) SelectState() model.State {
	return s.states.Choose(s.rng.Float64())
}

func (s *WeightedRandomSearcher) weight(es model.State) float64 {
	switch s.kind {
	case WeightInstCount:
		count := s.stats.InstructionCount(es.PC().ID())
		inv := 1. / float64(max(uint64(1), count))
		return inv * inv

	case WeightCPInstCount:
		count := es.Frame().CallPathInstructions()
		return 1. / float64(max(uint64(1), count))

	case WeightQueryCost:
		if es.QueryCost() < .1 {
			return 1.
		}
		return 1. / es.QueryCost()

	case WeightMinDistToUncovered, WeightCoveringNew:
		md2u := s.stats.MinDistToUncovered(es.PC(), es.Frame().MinDistToUncoveredOnReturn())
		invMD2U := invDist(md2u)
		if s.kind == WeightCoveringNew {
			return covNewWeight(es, invMD2U)
		}
		return invMD2U * invMD2U

	case WeightPatchTesting:
		md2c := s.stats.MinDistToTargetCall(es.PC(), es.Frame().MinDistToUncoveredOnReturn())
		return covNewWeight(es, invDist(md2c))

	default: // WeightDepth
		return es.Weight()
	}
}

// invDist inverts a distance metric, treating an unavailable metric (zero)
// as a large finite distance to avoid an infinite-weight singularity.
func invDist(d uint64) float64 {
	if d == 0 {
		d = 10000
	}
	return 1. / float64(d)
}

// covNewWeight blends distance to uncovered code with recency of coverage
// progress, Euclidean style.
func covNewWeight(es model.State, invMD2U float64) float64 {
	invCovNew := 0.
	if since := es.InstsSinceCovNew(); since != 0 {
		invCovNew = 1. / float64(max(1, int(since)-1000))
	}
	return invCovNew*invCovNew + invMD2U*invMD2U
}

// Update implements Searcher. All kinds except depth re-score the current
// state on every call, since its statistics moved while it was stepped.
func (s *WeightedRandomSearcher) Update(current model.State, added, removed []model.State) {
	if current != nil && s.updateWeights && !containsState(removed, current) && s.states.Contains(current) {
		s.states.Update(current, s.weight(current))
	}

	for _, es := range added {
		s.states.Insert(es, s.weight(es))
	}

	for _, es := range removed {
		if !s.states.Contains(es) {
			panicInvalidRemoval(es)
		}
		s.states.Remove(es)
	}
}

// Empty implements Searcher.
func (s *WeightedRandomSearcher) Empty() bool {
	return s.states.Empty()
}
