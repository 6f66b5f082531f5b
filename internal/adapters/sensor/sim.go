package sensor

import (
	"context"
	"time"

	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// defaultProfile approximates a drive cycle: warm-up, a hot spell past both
// thresholds, then cool-down.
var defaultProfile = []float64{
	22.0, 24.5, 27.0, 29.5, 31.0, 33.5, 36.0, 38.5,
	41.0, 43.0, 42.0, 39.0, 35.0, 31.0, 28.0, 24.0,
}

// SimReader replays a fixed temperature profile, looping when exhausted.
// It backs the -sim run mode, the examples, and tests that need a live
// source without hardware.
type SimReader struct {
	profile []float64
	idx     int
}

func NewSimReader(profile []float64) *SimReader {
	if len(profile) == 0 {
		profile = defaultProfile
	}
	return &SimReader{profile: profile}
}

func (r *SimReader) Read(ctx context.Context) (domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reading{}, err
	}
	v := r.profile[r.idx%len(r.profile)]
	r.idx++
	return domain.Reading{Celsius: v, Timestamp: time.Now()}, nil
}

var _ ports.SensorReader = (*SimReader)(nil)
