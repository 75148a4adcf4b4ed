package searcher

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/symgo/model"
	"github.com/hupe1980/symgo/stats"
)

// BatchingSearcher throttles re-selection: it keeps returning the
// previously selected state until a wall-clock or instruction budget is
// exceeded, then asks the base searcher to choose anew.
//
// When the elapsed time overshoots the time budget by more than 10%, the
// budget is raised to the overshoot value, absorbing variable per-step
// cost.
type BatchingSearcher struct {
	base              Searcher
	stats             stats.Provider
	timeBudget        time.Duration
	instructionBudget uint64

	lastState             model.State
	lastStartTime         time.Time
	lastStartInstructions uint64

	now     func() time.Time
	logger  *slog.Logger
	limiter *rate.Limiter
}

var _ Searcher = (*BatchingSearcher)(nil)

// BatchingOption configures a BatchingSearcher.
type BatchingOption func(*BatchingSearcher)

// WithBatchingLogger sets the logger for budget diagnostics.
func WithBatchingLogger(l *slog.Logger) BatchingOption {
	return func(s *BatchingSearcher) {
		s.logger = l
	}
}

// WithBatchingClock overrides the wall-clock source. Used by tests.
func WithBatchingClock(now func() time.Time) BatchingOption {
	return func(s *BatchingSearcher) {
		s.now = now
	}
}

// NewBatchingSearcher creates a batching searcher over base. provider
// supplies the global executed-instruction counter the instruction budget
// is measured against.
func NewBatchingSearcher(base Searcher, provider stats.Provider, timeBudget time.Duration, instructionBudget uint64, opts ...BatchingOption) *BatchingSearcher {
	s := &BatchingSearcher{
		base:              base,
		stats:             provider,
		timeBudget:        timeBudget,
		instructionBudget: instructionBudget,
		now:               time.Now,
		logger:            nopLogger(),
		// Budget increases can fire on every re-selection under a slow
		// solver; one diagnostic per second is plenty.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectState implements Searcher.
func (s *BatchingSearcher) SelectState() model.State {
	if s.lastState != nil &&
		s.now().Sub(s.lastStartTime) <= s.timeBudget &&
		s.stats.TotalInstructions()-s.lastStartInstructions <= s.instructionBudget {
		return s.lastState
	}

	if s.lastState != nil {
		delta := s.now().Sub(s.lastStartTime)
		if float64(delta) > float64(s.timeBudget)*1.1 {
			if s.limiter.Allow() {
				s.logger.Info("increased time budget",
					"from", s.timeBudget, "to", delta)
			}
			s.timeBudget = delta
		}
	}

	s.lastState = s.base.SelectState()
	s.lastStartTime = s.now()
	s.lastStartInstructions = s.stats.TotalInstructions()
	return s.lastState
}

// Update implements Searcher. A removed cached selection is invalidated
// before the delta is forwarded.
func (s *BatchingSearcher) Update(current model.State, added, removed []model.State) {
	if s.lastState != nil && containsState(removed, s.lastState) {
		s.lastState = nil
	}
	s.base.Update(current, added, removed)
}

// Empty implements Searcher.
func (s *BatchingSearcher) Empty() bool {
	return s.base.Empty()
}
