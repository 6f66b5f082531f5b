package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/vinwatch/vinwatch/internal/domain"
	"github.com/vinwatch/vinwatch/internal/ports"
)

// ErrPublishTimeout reports a publish that did not complete before its deadline.
var ErrPublishTimeout = errors.New("vinwatch: publish timed out")

// client is the slice of the paho API the publisher touches; tests
// substitute a fake.
type client interface {
	Connect() paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// Publisher delivers telemetry and state-change messages as JSON on the two
// configured topics. Session management belongs to the paho client: it
// reconnects on its own, and publishes fail fast while the session is down.
type Publisher struct {
	cfg Config
	c   client
}

// NewPublisher builds the paho client and kicks off the background
// connection. A broker that is down at startup is not an error.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL()).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectTimeout(cfg.ConnectTimeout())
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	p := &Publisher{cfg: cfg, c: paho.NewClient(opts)}
	p.c.Connect()
	return p, nil
}

// newWithClient is the test seam.
func newWithClient(cfg Config, c client) *Publisher {
	cfg.ApplyDefaults()
	return &Publisher{cfg: cfg, c: c}
}

func (p *Publisher) PublishTelemetry(ctx context.Context, msg domain.TelemetryMessage) error {
	return p.publish(ctx, p.cfg.TelemetryTopic, msg)
}

func (p *Publisher) PublishStateChange(ctx context.Context, ev domain.StateChangeEvent) error {
	return p.publish(ctx, p.cfg.StateTopic, ev)
}

func (p *Publisher) publish(ctx context.Context, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	timeout := p.cfg.PublishTimeout()
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: topic %s", ErrPublishTimeout, topic)
	}

	tok := p.c.Publish(topic, p.cfg.QoS, false, payload)
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("%w: topic %s", ErrPublishTimeout, topic)
	}
	return tok.Error()
}

func (p *Publisher) Close() {
	p.c.Disconnect(250)
}

var _ ports.TelemetryPublisher = (*Publisher)(nil)
