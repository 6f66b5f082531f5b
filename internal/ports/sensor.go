package ports

import (
	"context"
	"errors"

	"github.com/vinwatch/vinwatch/internal/domain"
)

// ErrSensorUnavailable reports that the sensor bus could not be read this cycle.
var ErrSensorUnavailable = errors.New("vinwatch: sensor unavailable")

// ErrReadingInvalid reports a value rejected at the sensor boundary
// (failed CRC, NaN, or outside the device's measurable range).
var ErrReadingInvalid = errors.New("vinwatch: reading invalid")

// SensorReader yields one temperature reading per call. Failures are
// transient by contract; the controller retries with bounded backoff and
// never treats them as fatal.
type SensorReader interface {
	Read(ctx context.Context) (domain.Reading, error)
}
