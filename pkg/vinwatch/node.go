// Package vinwatch is the embedding surface for the vehicle-monitoring node:
// configuration loading, default adapter wiring, and a runtime with
// functional options for custom sensors, indicators, and publishers.
package vinwatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinwatch/vinwatch/internal/adapters/indicator"
	"github.com/vinwatch/vinwatch/internal/adapters/mqtt"
	"github.com/vinwatch/vinwatch/internal/adapters/observability"
	"github.com/vinwatch/vinwatch/internal/adapters/sensor"
	"github.com/vinwatch/vinwatch/internal/app/node"
	"github.com/vinwatch/vinwatch/internal/app/sampling"
	"github.com/vinwatch/vinwatch/internal/auth"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// ErrAuthenticationFailed marks a node whose VIN did not match the expected
// identity. It is not fatal: the node keeps sensing and indicating locally.
var ErrAuthenticationFailed = errors.New("vinwatch: vin authentication failed")

// NodeRuntimeOption customizes the dependencies used by NodeRuntime.
type NodeRuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	sensor        ports.SensorReader
	indicator     ports.Indicator
	publisher     ports.TelemetryPublisher
	observability ports.Observability
}

// WithSensor injects a custom temperature source (CAN bus, I2C, simulators, etc.).
func WithSensor(s ports.SensorReader) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.sensor = s
	}
}

// WithIndicator injects a custom local output driver.
func WithIndicator(i ports.Indicator) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.indicator = i
	}
}

// WithPublisher injects a custom publisher so telemetry can go anywhere
// besides the default MQTT broker.
func WithPublisher(p ports.TelemetryPublisher) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.publisher = p
	}
}

// WithObservability plugs in a custom observability backend.
func WithObservability(obs ports.Observability) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.observability = obs
	}
}

// NodeRuntime wires up sensor → classifier/scheduler → indicator → publisher
// and exposes simple lifecycle hooks for embedding the node in any Go service.
type NodeRuntime struct {
	cfg           *Config
	obs           ports.Observability
	sensor        ports.SensorReader
	indicator     ports.Indicator
	publisher     ports.TelemetryPublisher
	controller    *node.Controller
	authenticated bool
	metricsSrv    *http.Server
}

// NewNodeRuntime bootstraps the default adapters (one-wire sensor, console
// or GPIO indicator, MQTT publisher, Prometheus observability). Options
// override any dependency. The VIN gate runs once here; its outcome is
// fixed for the process lifetime.
func NewNodeRuntime(cfg *Config, opts ...NodeRuntimeOption) (*NodeRuntime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var overrides runtimeOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	obs := overrides.observability
	if obs == nil {
		obs = observability.NewPromObs()
	}

	src := overrides.sensor
	if src == nil {
		var err error
		switch cfg.Sensor.Backend {
		case sensor.BackendSim:
			src = sensor.NewSimReader(nil)
		default:
			src, err = sensor.NewW1Reader(cfg.Sensor)
			if err != nil {
				return nil, err
			}
		}
	}

	ind := overrides.indicator
	if ind == nil {
		var err error
		switch cfg.Indicator.Backend {
		case indicator.BackendGPIO:
			ind, err = indicator.NewGPIO(cfg.Indicator)
			if err != nil {
				return nil, err
			}
		default:
			ind = indicator.NewConsole(nil)
		}
	}

	pub := overrides.publisher
	if pub == nil {
		var err error
		pub, err = mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, err
		}
	}

	sched, err := sampling.New(cfg.Thresholds, cfg.Sampling.Intervals())
	if err != nil {
		return nil, err
	}

	authenticated := auth.New(cfg.Vehicle.ExpectedVIN).Authenticate(cfg.Vehicle.VIN)

	ctrl, err := node.New(node.Params{
		VIN:            cfg.Vehicle.VIN,
		Authenticated:  authenticated,
		Sensor:         src,
		Scheduler:      sched,
		Indicator:      ind,
		Publisher:      pub,
		Observability:  obs,
		PublishTimeout: cfg.MQTT.PublishTimeout(),
	})
	if err != nil {
		return nil, err
	}

	return &NodeRuntime{
		cfg:           cfg,
		obs:           obs,
		sensor:        src,
		indicator:     ind,
		publisher:     pub,
		controller:    ctrl,
		authenticated: authenticated,
	}, nil
}

// Authenticated reports the outcome of the startup VIN gate.
func (n *NodeRuntime) Authenticated() bool { return n.authenticated }

// Run starts the metrics endpoint and blocks on the sampling loop until the
// context is cancelled, then attempts a graceful shutdown.
func (n *NodeRuntime) Run(ctx context.Context) error {
	n.startMetrics()

	if n.authenticated {
		n.obs.LogInfo("vin_authenticated", ports.Field{Key: "vin", Value: n.cfg.Vehicle.VIN})
	} else {
		n.obs.LogError("vin_rejected", ErrAuthenticationFailed,
			ports.Field{Key: "vin", Value: n.cfg.Vehicle.VIN})
	}

	runErr := n.controller.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// Shutdown stops the metrics server and closes the publisher session.
func (n *NodeRuntime) Shutdown(ctx context.Context) error {
	var errs []error

	if n.metricsSrv != nil {
		if err := n.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}

	if n.publisher != nil {
		n.publisher.Close()
	}

	return errors.Join(errs...)
}

func (n *NodeRuntime) startMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	n.metricsSrv = &http.Server{
		Addr:    n.cfg.Metrics.Addr,
		Handler: mux,
	}

	go func() {
		if err := n.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server exited: %v", err)
		}
	}()
}
