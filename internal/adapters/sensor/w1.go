package sensor

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// DS18B20 measurable span. Anything outside is a bus glitch, not a vehicle
// temperature.
const (
	w1MinCelsius = -55.0
	w1MaxCelsius = 125.0
)

// W1Reader samples a DS18B20-class device through the kernel's one-wire
// sysfs tree. The kernel driver owns the bus protocol; the reader only
// parses and validates the exposed report:
//
//	4b 46 7f ff 0c 10 1c : crc=1c YES
//	4b 46 7f ff 0c 10 1c t=25187
type W1Reader struct {
	path string
	step float64
}

func NewW1Reader(cfg Config) (*W1Reader, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend != BackendW1 {
		return nil, fmt.Errorf("sensor backend %q is not w1", cfg.Backend)
	}
	return &W1Reader{
		path: filepath.Join(cfg.BusDir, cfg.Device, "w1_slave"),
		// 12 bits → 1/16 °C, 9 bits → 1/2 °C.
		step: 1.0 / float64(int(1)<<(cfg.PrecisionBits-8)),
	}, nil
}

func (r *W1Reader) Read(ctx context.Context) (domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reading{}, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("%w: %v", ports.ErrSensorUnavailable, err)
	}

	celsius, err := parseW1Report(string(raw))
	if err != nil {
		return domain.Reading{}, fmt.Errorf("%w: %v", ports.ErrReadingInvalid, err)
	}

	celsius = quantize(celsius, r.step)
	if math.IsNaN(celsius) || celsius < w1MinCelsius || celsius > w1MaxCelsius {
		return domain.Reading{}, fmt.Errorf("%w: %.3f outside measurable range", ports.ErrReadingInvalid, celsius)
	}

	return domain.Reading{Celsius: celsius, Timestamp: time.Now()}, nil
}

func parseW1Report(report string) (float64, error) {
	lines := strings.Split(strings.TrimSpace(report), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("truncated w1_slave report (%d lines)", len(lines))
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), "YES") {
		return 0, fmt.Errorf("crc check failed: %s", strings.TrimSpace(lines[0]))
	}

	idx := strings.LastIndex(lines[1], "t=")
	if idx < 0 {
		return 0, fmt.Errorf("missing t= field: %s", strings.TrimSpace(lines[1]))
	}
	milli, err := strconv.Atoi(strings.TrimSpace(lines[1][idx+2:]))
	if err != nil {
		return 0, fmt.Errorf("parse temperature: %v", err)
	}
	return float64(milli) / 1000.0, nil
}

func quantize(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

var _ ports.SensorReader = (*W1Reader)(nil)
