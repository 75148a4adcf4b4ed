package searcher

import (
	"log/slog"
	"time"

	"github.com/hupe1980/symgo/model"
)

// IterativeDeepeningTimeSearcher wraps a base searcher with a per-state
// time horizon that starts at one second and doubles whenever the base
// runs dry. A state stepped past the current horizon is parked in a paused
// set; when the base empties, the horizon doubles and every paused state
// is reinserted.
type IterativeDeepeningTimeSearcher struct {
	base      Searcher
	horizon   time.Duration
	startTime time.Time
	paused    map[model.State]struct{}

	now    func() time.Time
	logger *slog.Logger
}

var _ Searcher = (*IterativeDeepeningTimeSearcher)(nil)

// IterativeOption configures an IterativeDeepeningTimeSearcher.
type IterativeOption func(*IterativeDeepeningTimeSearcher)

// WithIterativeLogger sets the logger for horizon diagnostics.
func WithIterativeLogger(l *slog.Logger) IterativeOption {
	return func(s *IterativeDeepeningTimeSearcher) {
		s.logger = l
	}
}

// WithIterativeClock overrides the wall-clock source. Used by tests.
func WithIterativeClock(now func() time.Time) IterativeOption {
	return func(s *IterativeDeepeningTimeSearcher) {
		s.now = now
	}
}

// NewIterativeDeepeningTimeSearcher creates an iterative deepening
// searcher over base.
func NewIterativeDeepeningTimeSearcher(base Searcher, opts ...IterativeOption) *IterativeDeepeningTimeSearcher {
	s := &IterativeDeepeningTimeSearcher{
		base:    base,
		horizon: time.Second,
		paused:  make(map[model.State]struct{}),
		now:     time.Now,
		logger:  nopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectState implements Searcher. The selection timestamp starts the
// horizon measurement for the upcoming step.
func (s *IterativeDeepeningTimeSearcher) SelectState() model.State {
	res := s.base.SelectState()
	s.startTime = s.now()
	return res
}

// Update implements Searcher.
func (s *IterativeDeepeningTimeSearcher) Update(current model.State, added, removed []model.State) {
	elapsed := s.now().Sub(s.startTime)

	// A removed state found in the paused set was never in the base; it
	// is excised from both the paused set and the forwarded removal list.
	if len(removed) > 0 {
		alt := removed[:0:0]
		for _, es := range removed {
			if _, ok := s.paused[es]; ok {
				delete(s.paused, es)
			} else {
				alt = append(alt, es)
			}
		}
		s.base.Update(current, added, alt)
	} else {
		s.base.Update(current, added, removed)
	}

	if current != nil && !containsState(removed, current) &&
		!s.startTime.IsZero() && elapsed > s.horizon {
		s.paused[current] = struct{}{}
		RemoveState(s.base, current)
	}

	if s.base.Empty() {
		s.horizon *= 2
		s.logger.Info("increased time budget", "horizon", s.horizon)
		if len(s.paused) > 0 {
			ps := make([]model.State, 0, len(s.paused))
			for es := range s.paused {
				ps = append(ps, es)
			}
			s.base.Update(nil, ps, nil)
			clear(s.paused)
		}
	}
}

// Empty implements Searcher.
func (s *IterativeDeepeningTimeSearcher) Empty() bool {
	return s.base.Empty() && len(s.paused) == 0
}
