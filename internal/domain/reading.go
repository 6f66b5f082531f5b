package domain

import "time"

// Reading is a single temperature measurement taken from the vehicle sensor.
// It is immutable once produced and is consumed within the cycle that read it.
type Reading struct {
	Celsius   float64   `json:"celsius"`
	Timestamp time.Time `json:"ts"`
}

// TelemetryMessage is the payload published on the telemetry topic. It is
// constructed once per cycle and discarded regardless of delivery outcome.
type TelemetryMessage struct {
	MessageID   string         `json:"message_id"`
	VIN         string         `json:"vin"`
	Temperature float64        `json:"temperature"`
	State       OperatingState `json:"state"`
	Timestamp   time.Time      `json:"ts"`
}

// StateChangeEvent is published on the state topic whenever the operating
// state transitions.
type StateChangeEvent struct {
	VIN         string         `json:"vin"`
	From        OperatingState `json:"from"`
	To          OperatingState `json:"to"`
	Temperature float64        `json:"temperature"`
	Timestamp   time.Time      `json:"ts"`
}
