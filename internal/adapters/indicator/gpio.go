package indicator

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// GPIO drives the three status LEDs directly. Exactly one lamp is lit per
// state; all three lit at once is the sensor-fault signature, a combination
// normal operation can never produce.
type GPIO struct {
	green, yellow, red gpio.PinIO
	last               domain.OperatingState
	haveLast           bool
}

func NewGPIO(cfg Config) (*GPIO, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend != BackendGPIO {
		return nil, fmt.Errorf("indicator backend %q is not gpio", cfg.Backend)
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio host init: %w", err)
	}

	pins := make([]gpio.PinIO, 3)
	for i, name := range []string{cfg.Pins.Green, cfg.Pins.Yellow, cfg.Pins.Red} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio pin %q not found", name)
		}
		pins[i] = p
	}

	g := &GPIO{green: pins[0], yellow: pins[1], red: pins[2]}
	g.apply(gpio.Low, gpio.Low, gpio.Low)
	return g, nil
}

func (g *GPIO) Show(state domain.OperatingState, _ domain.Reading) {
	if g.haveLast && state == g.last {
		return
	}
	switch state {
	case domain.StateWarning:
		g.apply(gpio.Low, gpio.High, gpio.Low)
	case domain.StateCritical:
		g.apply(gpio.Low, gpio.Low, gpio.High)
	default:
		g.apply(gpio.High, gpio.Low, gpio.Low)
	}
	g.last = state
	g.haveLast = true
}

func (g *GPIO) ShowFault() {
	g.apply(gpio.High, gpio.High, gpio.High)
	// force a rewrite on the next good reading
	g.haveLast = false
}

func (g *GPIO) apply(green, yellow, red gpio.Level) {
	for _, s := range []struct {
		pin   gpio.PinIO
		level gpio.Level
	}{{g.green, green}, {g.yellow, yellow}, {g.red, red}} {
		if err := s.pin.Out(s.level); err != nil {
			log.Printf("gpio: set %s: %v", s.pin.Name(), err)
		}
	}
}

var _ ports.Indicator = (*GPIO)(nil)
