package vinwatch

import (
	"context"
	"testing"
)

func testRuntimeConfig() *Config {
	return &Config{
		Vehicle: VehicleConfig{
			VIN:         "1HGCM82633A123456",
			ExpectedVIN: "1HGCM82633A123456",
		},
		Sensor:     SensorConfig{Backend: "sim", PrecisionBits: 12},
		Thresholds: Thresholds{NormalMax: 30.0, WarningMax: 40.0},
		Sampling:   SamplingConfig{NormalMS: 5000, WarningMS: 2000, CriticalMS: 1000},
		MQTT: MQTTConfig{
			Broker:           "broker.local",
			Port:             1883,
			TelemetryTopic:   "vehicle/telemetry",
			StateTopic:       "vehicle/state",
			PublishTimeoutMS: 500,
		},
		Indicator: IndicatorConfig{Backend: "console"},
		Metrics:   MetricsConfig{Addr: ":0"},
	}
}

func TestNewNodeRuntimeWithCustomAdapters(t *testing.T) {
	sensorStub := &stubSensor{}
	indicatorStub := &stubIndicator{}
	publisherStub := &stubPublisher{}
	obsStub := &stubObservability{}

	rt, err := NewNodeRuntime(
		testRuntimeConfig(),
		WithSensor(sensorStub),
		WithIndicator(indicatorStub),
		WithPublisher(publisherStub),
		WithObservability(obsStub),
	)
	if err != nil {
		t.Fatalf("NewNodeRuntime returned error: %v", err)
	}

	if rt.sensor != sensorStub {
		t.Fatalf("expected custom sensor to be used")
	}
	if rt.indicator != indicatorStub {
		t.Fatalf("expected custom indicator to be used")
	}
	if rt.publisher != publisherStub {
		t.Fatalf("expected custom publisher to be used")
	}
	if rt.obs != obsStub {
		t.Fatalf("expected custom observability to be used")
	}
	if !rt.Authenticated() {
		t.Fatalf("matching VIN should authenticate")
	}
}

func TestNewNodeRuntimeAuthenticationGate(t *testing.T) {
	cfg := testRuntimeConfig()
	cfg.Vehicle.VIN = "WP0ZZZ99ZTS392124"

	rt, err := NewNodeRuntime(
		cfg,
		WithSensor(&stubSensor{}),
		WithIndicator(&stubIndicator{}),
		WithPublisher(&stubPublisher{}),
		WithObservability(&stubObservability{}),
	)
	if err != nil {
		t.Fatalf("NewNodeRuntime returned error: %v", err)
	}
	if rt.Authenticated() {
		t.Fatalf("mismatching VIN must not authenticate")
	}
}

func TestNewNodeRuntimeRejectsNilConfig(t *testing.T) {
	if _, err := NewNodeRuntime(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestNewNodeRuntimeRejectsUnsafeSchedule(t *testing.T) {
	cfg := testRuntimeConfig()
	cfg.Sampling = SamplingConfig{NormalMS: 1000, WarningMS: 2000, CriticalMS: 5000}

	_, err := NewNodeRuntime(
		cfg,
		WithSensor(&stubSensor{}),
		WithIndicator(&stubIndicator{}),
		WithPublisher(&stubPublisher{}),
		WithObservability(&stubObservability{}),
	)
	if err == nil {
		t.Fatalf("inverted intervals must be rejected even for embedded runtimes")
	}
}

type stubSensor struct{}

func (s *stubSensor) Read(context.Context) (Reading, error) { return Reading{Celsius: 20}, nil }

type stubIndicator struct{}

func (s *stubIndicator) Show(OperatingState, Reading) {}
func (s *stubIndicator) ShowFault()                   {}

type stubPublisher struct{}

func (s *stubPublisher) PublishTelemetry(context.Context, TelemetryMessage) error   { return nil }
func (s *stubPublisher) PublishStateChange(context.Context, StateChangeEvent) error { return nil }
func (s *stubPublisher) Close()                                                     {}

type stubObservability struct{}

func (s *stubObservability) LogInfo(string, ...Field)            {}
func (s *stubObservability) LogError(string, error, ...Field)    {}
func (s *stubObservability) LogCritical(string, error, ...Field) {}
func (s *stubObservability) IncCounter(string, float64)          {}
func (s *stubObservability) ObserveLatency(string, float64)      {}
func (s *stubObservability) SetGauge(string, float64)            {}
