package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vinwatch/vinwatch/internal/app/sampling"
	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

var (
	testThresholds = domain.Thresholds{NormalMax: 30.0, WarningMax: 40.0}
	testIntervals  = sampling.Intervals{
		Normal:   5 * time.Second,
		Warning:  2 * time.Second,
		Critical: time.Second,
	}
)

func newTestController(t *testing.T, authenticated bool, sensor ports.SensorReader, pub *mockPublisher, ind *mockIndicator, obs *mockObs) *Controller {
	t.Helper()
	sched, err := sampling.New(testThresholds, testIntervals)
	if err != nil {
		t.Fatalf("scheduler: %v", err)
	}
	c, err := New(Params{
		VIN:            "1HGCM82633A123456",
		Authenticated:  authenticated,
		Sensor:         sensor,
		Scheduler:      sched,
		Indicator:      ind,
		Publisher:      pub,
		Observability:  obs,
		PublishTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSensorFaultsThenRecovery(t *testing.T) {
	sensor := &scriptedSensor{script: []scriptedRead{
		{err: ports.ErrSensorUnavailable},
		{err: ports.ErrSensorUnavailable},
		{err: ports.ErrSensorUnavailable},
		{celsius: 35.0},
	}}
	pub := &mockPublisher{}
	ind := &mockIndicator{}
	obs := &mockObs{}
	c := newTestController(t, true, sensor, pub, ind, obs)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if got := c.cycle(ctx); got != testIntervals.Critical {
			t.Fatalf("fault cycle %d: backoff = %s, want critical tier %s", i, got, testIntervals.Critical)
		}
	}
	if len(pub.telemetry) != 0 {
		t.Fatalf("published %d messages during sensor faults, want 0", len(pub.telemetry))
	}
	if ind.faults != 3 {
		t.Fatalf("fault signals = %d, want 3", ind.faults)
	}

	if got := c.cycle(ctx); got != testIntervals.Warning {
		t.Fatalf("recovery cycle interval = %s, want %s", got, testIntervals.Warning)
	}
	if len(pub.telemetry) != 1 {
		t.Fatalf("published %d messages after recovery, want exactly 1", len(pub.telemetry))
	}
	if pub.telemetry[0].State != domain.StateWarning {
		t.Fatalf("published state = %s, want WARNING", pub.telemetry[0].State)
	}
	if pub.telemetry[0].Temperature != 35.0 {
		t.Fatalf("published temperature = %v, want 35.0", pub.telemetry[0].Temperature)
	}
	if obs.counters["vinwatch_sensor_faults_total"] != 3 {
		t.Fatalf("sensor fault counter = %v, want 3", obs.counters["vinwatch_sensor_faults_total"])
	}
}

func TestAuthenticationGating(t *testing.T) {
	const n = 5
	script := make([]scriptedRead, n)
	for i := range script {
		script[i] = scriptedRead{celsius: 25.0 + float64(i)}
	}
	pub := &mockPublisher{}
	ind := &mockIndicator{}
	c := newTestController(t, false, &scriptedSensor{script: script}, pub, ind, &mockObs{})

	for i := 0; i < n; i++ {
		c.cycle(context.Background())
	}

	if len(pub.telemetry) != 0 || len(pub.stateChanges) != 0 {
		t.Fatalf("unauthenticated node published %d/%d messages, want 0", len(pub.telemetry), len(pub.stateChanges))
	}
	if ind.shows != n {
		t.Fatalf("indicator updated %d times, want %d (local visibility survives auth failure)", ind.shows, n)
	}
}

func TestEndToEndScenario(t *testing.T) {
	temps := []float64{25.0, 32.0, 41.0, 41.0, 20.0}
	wantStates := []domain.OperatingState{
		domain.StateNormal, domain.StateWarning, domain.StateCritical, domain.StateCritical, domain.StateNormal,
	}
	wantIntervals := []time.Duration{
		5 * time.Second, 2 * time.Second, time.Second, time.Second, 5 * time.Second,
	}

	script := make([]scriptedRead, len(temps))
	for i, v := range temps {
		script[i] = scriptedRead{celsius: v}
	}
	pub := &mockPublisher{}
	ind := &mockIndicator{}
	obs := &mockObs{}
	c := newTestController(t, true, &scriptedSensor{script: script}, pub, ind, obs)

	for i := range temps {
		got := c.cycle(context.Background())
		if got != wantIntervals[i] {
			t.Fatalf("cycle %d: interval = %s, want %s", i, got, wantIntervals[i])
		}
		if ind.lastState != wantStates[i] {
			t.Fatalf("cycle %d: indicator state = %s, want %s", i, ind.lastState, wantStates[i])
		}
	}

	if len(pub.telemetry) != len(temps) {
		t.Fatalf("telemetry messages = %d, want %d", len(pub.telemetry), len(temps))
	}
	for i, msg := range pub.telemetry {
		if msg.State != wantStates[i] {
			t.Fatalf("message %d: state = %s, want %s", i, msg.State, wantStates[i])
		}
		if msg.VIN != "1HGCM82633A123456" {
			t.Fatalf("message %d: vin = %q", i, msg.VIN)
		}
		if msg.MessageID == "" {
			t.Fatalf("message %d: missing message id", i)
		}
	}

	// Discrete channel only sees transitions: N→W, W→C, C→N.
	if len(pub.stateChanges) != 3 {
		t.Fatalf("state-change events = %d, want 3", len(pub.stateChanges))
	}
	if pub.stateChanges[0].From != domain.StateNormal || pub.stateChanges[0].To != domain.StateWarning {
		t.Fatalf("first transition = %s→%s, want NORMAL→WARNING", pub.stateChanges[0].From, pub.stateChanges[0].To)
	}
	if pub.stateChanges[2].To != domain.StateNormal {
		t.Fatalf("last transition to = %s, want NORMAL", pub.stateChanges[2].To)
	}
}

func TestPublishFaultIsBestEffort(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker unreachable")}
	ind := &mockIndicator{}
	obs := &mockObs{}
	sensor := &scriptedSensor{script: []scriptedRead{{celsius: 25.0}, {celsius: 26.0}}}
	c := newTestController(t, true, sensor, pub, ind, obs)

	for i := 0; i < 2; i++ {
		if got := c.cycle(context.Background()); got != testIntervals.Normal {
			t.Fatalf("cycle %d: publish failure changed interval to %s", i, got)
		}
	}
	if ind.shows != 2 {
		t.Fatalf("indicator updates = %d, want 2 (publishing must not affect indication)", ind.shows)
	}
	if obs.counters["vinwatch_publish_faults_total"] != 2 {
		t.Fatalf("publish fault counter = %v, want 2", obs.counters["vinwatch_publish_faults_total"])
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestController(t, true,
		&scriptedSensor{script: []scriptedRead{{celsius: 25.0}}},
		&mockPublisher{}, &mockIndicator{}, &mockObs{})

	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestNewRejectsMissingCollaborators(t *testing.T) {
	sched, _ := sampling.New(testThresholds, testIntervals)
	_, err := New(Params{
		Scheduler:      sched,
		Indicator:      &mockIndicator{},
		Publisher:      &mockPublisher{},
		Observability:  &mockObs{},
		PublishTimeout: time.Second,
	})
	if err == nil {
		t.Fatalf("expected error for missing sensor")
	}
}

type scriptedRead struct {
	celsius float64
	err     error
}

type scriptedSensor struct {
	script []scriptedRead
	calls  int
}

func (s *scriptedSensor) Read(context.Context) (domain.Reading, error) {
	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++
	step := s.script[idx]
	if step.err != nil {
		return domain.Reading{}, step.err
	}
	return domain.Reading{Celsius: step.celsius, Timestamp: time.Now()}, nil
}

type mockPublisher struct {
	telemetry    []domain.TelemetryMessage
	stateChanges []domain.StateChangeEvent
	err          error
}

func (m *mockPublisher) PublishTelemetry(_ context.Context, msg domain.TelemetryMessage) error {
	if m.err != nil {
		return m.err
	}
	m.telemetry = append(m.telemetry, msg)
	return nil
}

func (m *mockPublisher) PublishStateChange(_ context.Context, ev domain.StateChangeEvent) error {
	if m.err != nil {
		return m.err
	}
	m.stateChanges = append(m.stateChanges, ev)
	return nil
}

func (m *mockPublisher) Close() {}

type mockIndicator struct {
	shows     int
	faults    int
	lastState domain.OperatingState
}

func (m *mockIndicator) Show(state domain.OperatingState, _ domain.Reading) {
	m.shows++
	m.lastState = state
}

func (m *mockIndicator) ShowFault() { m.faults++ }

type mockObs struct {
	counters map[string]float64
	errors   []error
}

func (m *mockObs) LogInfo(string, ...ports.Field) {}
func (m *mockObs) LogError(_ string, err error, _ ...ports.Field) {
	m.errors = append(m.errors, err)
}
func (m *mockObs) LogCritical(string, error, ...ports.Field) {}
func (m *mockObs) IncCounter(name string, v float64) {
	if m.counters == nil {
		m.counters = make(map[string]float64)
	}
	m.counters[name] += v
}
func (m *mockObs) ObserveLatency(string, float64) {}
func (m *mockObs) SetGauge(string, float64)       {}
