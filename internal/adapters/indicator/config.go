// Package indicator drives the node's local outputs: a console panel for
// bench use and GPIO lamps on real hardware.
package indicator

import "fmt"

const (
	BackendConsole = "console"
	BackendGPIO    = "gpio"
)

// Config selects the indicator backend and, for GPIO, the lamp pins.
type Config struct {
	Backend string    `yaml:"backend"`
	Pins    PinConfig `yaml:"pins"`
}

// PinConfig names the LED pins, e.g. "GPIO2".
type PinConfig struct {
	Green  string `yaml:"green"`
	Yellow string `yaml:"yellow"`
	Red    string `yaml:"red"`
}

func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendConsole
	}
	if c.Pins.Green == "" {
		c.Pins.Green = "GPIO2"
	}
	if c.Pins.Yellow == "" {
		c.Pins.Yellow = "GPIO5"
	}
	if c.Pins.Red == "" {
		c.Pins.Red = "GPIO18"
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendConsole:
	case BackendGPIO:
		if c.Pins.Green == c.Pins.Yellow || c.Pins.Yellow == c.Pins.Red || c.Pins.Green == c.Pins.Red {
			return fmt.Errorf("lamp pins must be distinct, got %+v", c.Pins)
		}
	default:
		return fmt.Errorf("unknown indicator backend %q", c.Backend)
	}
	return nil
}
