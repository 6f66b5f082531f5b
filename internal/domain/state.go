package domain

import (
	"fmt"
	"math"
	"time"
)

// OperatingState is the risk tier derived from the most recent valid reading.
type OperatingState int

const (
	StateNormal OperatingState = iota
	StateWarning
	StateCritical
)

func (s OperatingState) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StateWarning:
		return "WARNING"
	case StateCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("OperatingState(%d)", int(s))
	}
}

func (s OperatingState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OperatingState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "NORMAL":
		*s = StateNormal
	case "WARNING":
		*s = StateWarning
	case "CRITICAL":
		*s = StateCritical
	default:
		return fmt.Errorf("unknown operating state %q", text)
	}
	return nil
}

// Thresholds are the temperature boundaries separating operating states.
// They are loaded once at startup and never mutated.
type Thresholds struct {
	NormalMax  float64 `yaml:"normal_max"`
	WarningMax float64 `yaml:"warning_max"`
}

func (t Thresholds) Validate() error {
	if math.IsNaN(t.NormalMax) || math.IsNaN(t.WarningMax) ||
		math.IsInf(t.NormalMax, 0) || math.IsInf(t.WarningMax, 0) {
		return fmt.Errorf("thresholds must be finite, got normal_max=%v warning_max=%v", t.NormalMax, t.WarningMax)
	}
	if t.NormalMax >= t.WarningMax {
		return fmt.Errorf("normal_max (%.2f) must be strictly below warning_max (%.2f)", t.NormalMax, t.WarningMax)
	}
	return nil
}

// Classify maps a finite temperature to an operating state. Values exactly at
// a boundary resolve toward the hotter state.
func Classify(celsius float64, th Thresholds) OperatingState {
	switch {
	case celsius < th.NormalMax:
		return StateNormal
	case celsius < th.WarningMax:
		return StateWarning
	default:
		return StateCritical
	}
}

// SamplingPlan pairs the current state with the delay before the next read.
// It is recomputed wholesale every cycle.
type SamplingPlan struct {
	State    OperatingState
	Interval time.Duration
}
