package vinwatch

import (
	"github.com/vinwatch/vinwatch/internal/adapters/indicator"
	"github.com/vinwatch/vinwatch/internal/adapters/mqtt"
	"github.com/vinwatch/vinwatch/internal/adapters/sensor"
	"github.com/vinwatch/vinwatch/internal/app/config"
)

// Config re-exports the node configuration so downstream projects can
// construct or modify it programmatically.
type Config = config.Config

type (
	// VehicleConfig holds the node's identity and the expected VIN.
	VehicleConfig = config.VehicleConfig
	// SamplingConfig holds per-state intervals in milliseconds.
	SamplingConfig = config.SamplingConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
	// SensorConfig selects and tunes the temperature source.
	SensorConfig = sensor.Config
	// MQTTConfig holds broker session and topic details.
	MQTTConfig = mqtt.Config
	// IndicatorConfig selects the local output backend.
	IndicatorConfig = indicator.Config
	// PinConfig names the GPIO lamp pins.
	PinConfig = indicator.PinConfig
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
