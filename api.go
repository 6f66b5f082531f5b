package vinwatch

import (
	base "github.com/vinwatch/vinwatch/pkg/vinwatch"
)

// Re-exported errors for convenience.
var (
	ErrAuthenticationFailed   = base.ErrAuthenticationFailed
	ErrChannelPublisherClosed = base.ErrChannelPublisherClosed
)

// Type aliases so consumers can import github.com/vinwatch/vinwatch directly.
type (
	Config             = base.Config
	VehicleConfig      = base.VehicleConfig
	SamplingConfig     = base.SamplingConfig
	MetricsConfig      = base.MetricsConfig
	SensorConfig       = base.SensorConfig
	MQTTConfig         = base.MQTTConfig
	IndicatorConfig    = base.IndicatorConfig
	PinConfig          = base.PinConfig
	NodeRuntime        = base.NodeRuntime
	NodeRuntimeOption  = base.NodeRuntimeOption
	Reading            = base.Reading
	OperatingState     = base.OperatingState
	Thresholds         = base.Thresholds
	SamplingPlan       = base.SamplingPlan
	Intervals          = base.Intervals
	TelemetryMessage   = base.TelemetryMessage
	StateChangeEvent   = base.StateChangeEvent
	SensorReader       = base.SensorReader
	Indicator          = base.Indicator
	TelemetryPublisher = base.TelemetryPublisher
	Observability      = base.Observability
	Field              = base.Field
	MessageKind        = base.MessageKind
	OutboundMessage    = base.OutboundMessage
	PublishFunc        = base.PublishFunc
)

// Operating states.
const (
	StateNormal   = base.StateNormal
	StateWarning  = base.StateWarning
	StateCritical = base.StateCritical
)

// Outbound message kinds.
const (
	KindTelemetry   = base.KindTelemetry
	KindStateChange = base.KindStateChange
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Node runtime and options.
func NewNodeRuntime(cfg *Config, opts ...NodeRuntimeOption) (*NodeRuntime, error) {
	return base.NewNodeRuntime(cfg, opts...)
}

func WithSensor(s SensorReader) NodeRuntimeOption {
	return base.WithSensor(s)
}

func WithIndicator(i Indicator) NodeRuntimeOption {
	return base.WithIndicator(i)
}

func WithPublisher(p TelemetryPublisher) NodeRuntimeOption {
	return base.WithPublisher(p)
}

func WithObservability(obs Observability) NodeRuntimeOption {
	return base.WithObservability(obs)
}

// Publisher adapters.
func NewCallbackPublisher(name string, fn PublishFunc) TelemetryPublisher {
	return base.NewCallbackPublisher(name, fn)
}

func NewChannelPublisher(name string, buffer int) (TelemetryPublisher, <-chan OutboundMessage, func()) {
	return base.NewChannelPublisher(name, buffer)
}
