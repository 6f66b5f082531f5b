package vinwatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrChannelPublisherClosed is returned when a channel publisher is used
// after being closed.
var ErrChannelPublisherClosed = errors.New("vinwatch: channel publisher closed")

// MessageKind distinguishes the two outbound channels.
type MessageKind int

const (
	KindTelemetry MessageKind = iota
	KindStateChange
)

// OutboundMessage is what embedded publishers receive: exactly one of the
// two payload fields is set, according to Kind.
type OutboundMessage struct {
	Kind        MessageKind
	Telemetry   TelemetryMessage
	StateChange StateChangeEvent
}

// PublishFunc receives every outbound message the node produces.
type PublishFunc func(OutboundMessage) error

// NewCallbackPublisher adapts a function into a full TelemetryPublisher so
// callers can route telemetry anywhere without defining structs.
func NewCallbackPublisher(name string, fn PublishFunc) TelemetryPublisher {
	if name == "" {
		name = "callback"
	}
	return &callbackPublisher{name: name, fn: fn}
}

// NewChannelPublisher exposes outbound messages via a channel; it returns
// the publisher, the read-only channel, and a close function the caller
// should invoke during shutdown.
func NewChannelPublisher(name string, buffer int) (TelemetryPublisher, <-chan OutboundMessage, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan OutboundMessage, buffer)
	p := &channelPublisher{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return p, ch, func() { p.close() }
}

type callbackPublisher struct {
	name string
	fn   PublishFunc
}

func (p *callbackPublisher) PublishTelemetry(_ context.Context, msg TelemetryMessage) error {
	if p.fn == nil {
		return fmt.Errorf("callback publisher %q: nil handler", p.name)
	}
	return p.fn(OutboundMessage{Kind: KindTelemetry, Telemetry: msg})
}

func (p *callbackPublisher) PublishStateChange(_ context.Context, ev StateChangeEvent) error {
	if p.fn == nil {
		return fmt.Errorf("callback publisher %q: nil handler", p.name)
	}
	return p.fn(OutboundMessage{Kind: KindStateChange, StateChange: ev})
}

func (p *callbackPublisher) Close() {}

type channelPublisher struct {
	name   string
	ch     chan OutboundMessage
	closed chan struct{}
	once   sync.Once
}

func (p *channelPublisher) PublishTelemetry(ctx context.Context, msg TelemetryMessage) error {
	return p.send(ctx, OutboundMessage{Kind: KindTelemetry, Telemetry: msg})
}

func (p *channelPublisher) PublishStateChange(ctx context.Context, ev StateChangeEvent) error {
	return p.send(ctx, OutboundMessage{Kind: KindStateChange, StateChange: ev})
}

func (p *channelPublisher) send(ctx context.Context, m OutboundMessage) error {
	select {
	case <-p.closed:
		return ErrChannelPublisherClosed
	default:
	}

	select {
	case <-p.closed:
		return ErrChannelPublisherClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.ch <- m:
		return nil
	}
}

func (p *channelPublisher) Close() { p.close() }

func (p *channelPublisher) close() {
	p.once.Do(func() {
		close(p.closed)
		close(p.ch)
	})
}
