package ports

import (
	"context"

	"github.com/vinwatch/vinwatch/internal/domain"
)

// TelemetryPublisher delivers messages to the broker on two logical channels:
// the high-frequency telemetry topic and the discrete state-change topic.
// Delivery is best effort; implementations must honor the context deadline
// and never block past it, so a stalled broker cannot delay the sampling loop.
type TelemetryPublisher interface {
	PublishTelemetry(ctx context.Context, msg domain.TelemetryMessage) error
	PublishStateChange(ctx context.Context, ev domain.StateChangeEvent) error
	Close()
}
