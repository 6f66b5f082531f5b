package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vinwatch/vinwatch/internal/adapters/indicator"
	"github.com/vinwatch/vinwatch/internal/adapters/mqtt"
	"github.com/vinwatch/vinwatch/internal/adapters/sensor"
	"github.com/vinwatch/vinwatch/internal/app/sampling"
	"github.com/vinwatch/vinwatch/internal/domain"
)

// Config is the node's whole configuration surface: loaded once at startup,
// validated, then passed read-only into every constructor. There is no
// dynamic reconfiguration.
type Config struct {
	Vehicle    VehicleConfig     `yaml:"vehicle"`
	Sensor     sensor.Config     `yaml:"sensor"`
	Thresholds domain.Thresholds `yaml:"thresholds"`
	Sampling   SamplingConfig    `yaml:"sampling"`
	MQTT       mqtt.Config       `yaml:"mqtt"`
	Indicator  indicator.Config  `yaml:"indicator"`
	Metrics    MetricsConfig     `yaml:"metrics"`
}

type VehicleConfig struct {
	VIN         string `yaml:"vin"`
	ExpectedVIN string `yaml:"expected_vin"`
}

// SamplingConfig holds per-state sampling periods in milliseconds.
type SamplingConfig struct {
	NormalMS   int `yaml:"normal_ms"`
	WarningMS  int `yaml:"warning_ms"`
	CriticalMS int `yaml:"critical_ms"`
}

func (s SamplingConfig) Intervals() sampling.Intervals {
	return sampling.Intervals{
		Normal:   time.Duration(s.NormalMS) * time.Millisecond,
		Warning:  time.Duration(s.WarningMS) * time.Millisecond,
		Critical: time.Duration(s.CriticalMS) * time.Millisecond,
	}
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Thresholds.NormalMax == 0 && c.Thresholds.WarningMax == 0 {
		c.Thresholds = domain.Thresholds{NormalMax: 30.0, WarningMax: 40.0}
	}
	if c.Sampling.NormalMS == 0 {
		c.Sampling.NormalMS = 5000
	}
	if c.Sampling.WarningMS == 0 {
		c.Sampling.WarningMS = 2000
	}
	if c.Sampling.CriticalMS == 0 {
		c.Sampling.CriticalMS = 1000
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}

	c.Sensor.ApplyDefaults()
	c.MQTT.ApplyDefaults()
	c.Indicator.ApplyDefaults()
}

// validate refuses to start the node with an unsafe schedule. Every failure
// here is fatal on purpose: running with, say, a critical interval slower
// than the warning one silently defeats the point of adaptive sampling.
func (c *Config) validate() error {
	if c.Vehicle.VIN == "" {
		return fmt.Errorf("vehicle.vin is required")
	}
	if c.Vehicle.ExpectedVIN == "" {
		return fmt.Errorf("vehicle.expected_vin is required")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if err := c.Sampling.Intervals().Validate(); err != nil {
		return fmt.Errorf("sampling: %w", err)
	}
	if err := c.Sensor.Validate(); err != nil {
		return fmt.Errorf("sensor config: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt config: %w", err)
	}
	if err := c.Indicator.Validate(); err != nil {
		return fmt.Errorf("indicator config: %w", err)
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}

	// A publish may never outlive the shortest sampling interval, or a
	// stalled broker would delay the next read.
	if c.MQTT.PublishTimeout() >= c.Sampling.Intervals().Critical {
		return fmt.Errorf("mqtt.publish_timeout_ms (%d) must be below sampling.critical_ms (%d)",
			c.MQTT.PublishTimeoutMS, c.Sampling.CriticalMS)
	}
	return nil
}
