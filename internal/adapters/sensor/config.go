// Package sensor provides the temperature sources a node can sample: the
// Linux one-wire sysfs bus and a deterministic simulator.
package sensor

import (
	"errors"
	"fmt"
)

const (
	BackendW1  = "w1"
	BackendSim = "sim"
)

// Config captures the runtime details of the temperature source.
type Config struct {
	Backend string `yaml:"backend"`
	// Device is the one-wire slave id, e.g. "28-0316a2792f4b".
	Device string `yaml:"device"`
	BusDir string `yaml:"bus_dir"`
	// PrecisionBits is the DS18B20 conversion resolution (9..12).
	PrecisionBits int `yaml:"precision_bits"`
}

func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendW1
	}
	if c.BusDir == "" {
		c.BusDir = "/sys/bus/w1/devices"
	}
	if c.PrecisionBits == 0 {
		c.PrecisionBits = 12
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendW1:
		if c.Device == "" {
			return errors.New("device is required for the w1 backend")
		}
	case BackendSim:
	default:
		return fmt.Errorf("unknown sensor backend %q", c.Backend)
	}
	if c.PrecisionBits < 9 || c.PrecisionBits > 12 {
		return fmt.Errorf("precision_bits must be within 9..12, got %d", c.PrecisionBits)
	}
	return nil
}
