package vinwatch

import (
	"github.com/vinwatch/vinwatch/internal/app/sampling"
	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// Reading is a single temperature measurement.
type Reading = domain.Reading

// OperatingState is the risk tier derived from the most recent valid reading.
type OperatingState = domain.OperatingState

const (
	StateNormal   = domain.StateNormal
	StateWarning  = domain.StateWarning
	StateCritical = domain.StateCritical
)

// Thresholds are the temperature boundaries separating operating states.
type Thresholds = domain.Thresholds

// SamplingPlan pairs the current state with the delay before the next read.
type SamplingPlan = domain.SamplingPlan

// Intervals holds the per-state sampling periods.
type Intervals = sampling.Intervals

// TelemetryMessage is the payload published on the telemetry topic.
type TelemetryMessage = domain.TelemetryMessage

// StateChangeEvent is the payload published on the state topic.
type StateChangeEvent = domain.StateChangeEvent

// SensorReader yields one temperature reading per call.
type SensorReader = ports.SensorReader

// Indicator drives the local LED/LCD outputs.
type Indicator = ports.Indicator

// TelemetryPublisher delivers messages to the broker.
type TelemetryPublisher = ports.TelemetryPublisher

// Observability emits metrics and log lines about the node's behavior.
type Observability = ports.Observability

// Field is a structured log field used by Observability implementations.
type Field = ports.Field
