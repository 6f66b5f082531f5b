// Package sampling owns the operating-state machine and the adaptive
// polling policy: the hotter the state, the faster the node samples.
package sampling

import (
	"fmt"
	"time"

	"github.com/vinwatch/vinwatch/internal/domain"
)

// Intervals holds the per-state sampling periods.
type Intervals struct {
	Normal   time.Duration
	Warning  time.Duration
	Critical time.Duration
}

// Validate enforces the adaptive-frequency invariant: polling gets strictly
// faster as risk increases. A configuration violating this is unsafe and
// must be rejected at startup.
func (i Intervals) Validate() error {
	if i.Critical <= 0 {
		return fmt.Errorf("critical interval must be positive, got %s", i.Critical)
	}
	if i.Critical >= i.Warning {
		return fmt.Errorf("critical interval (%s) must be strictly below warning (%s)", i.Critical, i.Warning)
	}
	if i.Warning >= i.Normal {
		return fmt.Errorf("warning interval (%s) must be strictly below normal (%s)", i.Warning, i.Normal)
	}
	return nil
}

// Scheduler owns the current operating state and derives the delay before the
// next sensor read. It is not safe for concurrent use; the node controller's
// loop is its only caller.
type Scheduler struct {
	thresholds domain.Thresholds
	intervals  Intervals
	state      domain.OperatingState
}

// New returns a scheduler starting in NORMAL. The optimistic default is
// corrected by the first successful reading.
func New(th domain.Thresholds, iv Intervals) (*Scheduler, error) {
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	if err := iv.Validate(); err != nil {
		return nil, fmt.Errorf("sampling intervals: %w", err)
	}
	return &Scheduler{thresholds: th, intervals: iv, state: domain.StateNormal}, nil
}

// State returns the current operating state.
func (s *Scheduler) State() domain.OperatingState { return s.state }

// Observe classifies a reading, transitions the state machine, and returns
// the wholesale-recomputed sampling plan together with the previous state.
// Transitions are immediate; there is no hysteresis near a threshold, so
// CRITICAL detection is never delayed by debouncing.
func (s *Scheduler) Observe(r domain.Reading) (domain.SamplingPlan, domain.OperatingState) {
	prev := s.state
	s.state = domain.Classify(r.Celsius, s.thresholds)
	return domain.SamplingPlan{State: s.state, Interval: s.Interval(s.state)}, prev
}

// Interval maps a state to its configured sampling period.
func (s *Scheduler) Interval(state domain.OperatingState) time.Duration {
	switch state {
	case domain.StateCritical:
		return s.intervals.Critical
	case domain.StateWarning:
		return s.intervals.Warning
	default:
		return s.intervals.Normal
	}
}

// RetryInterval is the backoff used while the sensor is failing: the
// critical tier, failing toward caution.
func (s *Scheduler) RetryInterval() time.Duration { return s.intervals.Critical }
