// Package node contains the single-goroutine control loop driving the
// read → classify → schedule → indicate → publish cycle.
package node

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vinwatch/vinwatch/internal/app/sampling"
	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// Params collects the collaborators of a Controller. All are required except
// Authenticated, which records the outcome of the startup VIN gate.
type Params struct {
	VIN            string
	Authenticated  bool
	Sensor         ports.SensorReader
	Scheduler      *sampling.Scheduler
	Indicator      ports.Indicator
	Publisher      ports.TelemetryPublisher
	Observability  ports.Observability
	PublishTimeout time.Duration
}

// Controller orchestrates one node. The scheduler and the gate result are
// owned exclusively by the goroutine running Run, so no locking is needed.
type Controller struct {
	vin            string
	authenticated  bool
	sensor         ports.SensorReader
	scheduler      *sampling.Scheduler
	indicator      ports.Indicator
	publisher      ports.TelemetryPublisher
	obs            ports.Observability
	publishTimeout time.Duration
}

func New(p Params) (*Controller, error) {
	if p.Sensor == nil {
		return nil, fmt.Errorf("sensor reader is required")
	}
	if p.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if p.Indicator == nil {
		return nil, fmt.Errorf("indicator is required")
	}
	if p.Publisher == nil {
		return nil, fmt.Errorf("publisher is required")
	}
	if p.Observability == nil {
		return nil, fmt.Errorf("observability is required")
	}
	if p.PublishTimeout <= 0 {
		return nil, fmt.Errorf("publish timeout must be positive, got %s", p.PublishTimeout)
	}
	return &Controller{
		vin:            p.VIN,
		authenticated:  p.Authenticated,
		sensor:         p.Sensor,
		scheduler:      p.Scheduler,
		indicator:      p.Indicator,
		publisher:      p.Publisher,
		obs:            p.Observability,
		publishTimeout: p.PublishTimeout,
	}, nil
}

// Run drives the sampling loop until the context is cancelled. The first
// read happens immediately; every later one waits for the interval chosen
// by the scheduler (or the retry backoff after a sensor fault).
func (c *Controller) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		timer.Reset(c.cycle(ctx))
	}
}

// cycle performs one pass and returns the delay before the next one.
func (c *Controller) cycle(ctx context.Context) time.Duration {
	reading, err := c.sensor.Read(ctx)
	if err != nil {
		// Transient by contract: keep the current state, skip publication,
		// and retry at the fastest tier.
		c.obs.IncCounter("vinwatch_sensor_faults_total", 1)
		c.obs.LogError("sensor_read_failed", err)
		c.indicator.ShowFault()
		return c.scheduler.RetryInterval()
	}

	plan, prev := c.scheduler.Observe(reading)
	c.obs.IncCounter("vinwatch_readings_total", 1)
	c.obs.SetGauge("vinwatch_temperature_celsius", reading.Celsius)
	c.obs.SetGauge("vinwatch_operating_state", float64(plan.State))
	if prev != plan.State {
		c.obs.IncCounter("vinwatch_state_changes_total", 1)
		c.obs.LogInfo("operating_state_changed",
			ports.Field{Key: "from", Value: prev.String()},
			ports.Field{Key: "to", Value: plan.State.String()})
	}

	c.indicator.Show(plan.State, reading)

	if c.authenticated {
		c.publish(ctx, reading, plan, prev)
	}

	return plan.Interval
}

// publish hands the cycle's message to the broker and drops it on failure.
// Telemetry is at-most-once; a slow or absent broker must never delay the
// next sensor read, so every attempt is bounded by the publish timeout.
func (c *Controller) publish(ctx context.Context, reading domain.Reading, plan domain.SamplingPlan, prev domain.OperatingState) {
	pctx, cancel := context.WithTimeout(ctx, c.publishTimeout)
	defer cancel()

	msg := domain.TelemetryMessage{
		MessageID:   uuid.NewString(),
		VIN:         c.vin,
		Temperature: reading.Celsius,
		State:       plan.State,
		Timestamp:   reading.Timestamp,
	}

	start := time.Now()
	if err := c.publisher.PublishTelemetry(pctx, msg); err != nil {
		c.obs.IncCounter("vinwatch_publish_faults_total", 1)
		c.obs.LogError("telemetry_publish_failed", err)
	} else {
		c.obs.IncCounter("vinwatch_messages_published_total", 1)
		c.obs.ObserveLatency("vinwatch_publish_latency_seconds", time.Since(start).Seconds())
	}

	if prev == plan.State {
		return
	}

	ev := domain.StateChangeEvent{
		VIN:         c.vin,
		From:        prev,
		To:          plan.State,
		Temperature: reading.Celsius,
		Timestamp:   reading.Timestamp,
	}
	if err := c.publisher.PublishStateChange(pctx, ev); err != nil {
		c.obs.IncCounter("vinwatch_publish_faults_total", 1)
		c.obs.LogError("state_publish_failed", err)
	}
}
