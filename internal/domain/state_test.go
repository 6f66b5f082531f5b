package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestClassifyBoundaries(t *testing.T) {
	th := Thresholds{NormalMax: 30.0, WarningMax: 40.0}

	cases := []struct {
		celsius float64
		want    OperatingState
	}{
		{-10.0, StateNormal},
		{25.0, StateNormal},
		{29.999, StateNormal},
		{30.0, StateWarning}, // boundary resolves hotter
		{35.0, StateWarning},
		{39.999, StateWarning},
		{40.0, StateCritical}, // boundary resolves hotter
		{41.0, StateCritical},
		{125.0, StateCritical},
	}

	for _, tc := range cases {
		if got := Classify(tc.celsius, th); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.celsius, got, tc.want)
		}
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := (Thresholds{NormalMax: 30, WarningMax: 40}).Validate(); err != nil {
		t.Fatalf("valid thresholds rejected: %v", err)
	}
	if err := (Thresholds{NormalMax: 40, WarningMax: 40}).Validate(); err == nil {
		t.Fatalf("equal thresholds should be rejected")
	}
	if err := (Thresholds{NormalMax: 50, WarningMax: 40}).Validate(); err == nil {
		t.Fatalf("inverted thresholds should be rejected")
	}
}

func TestOperatingStateText(t *testing.T) {
	msg := TelemetryMessage{
		MessageID:   "m1",
		VIN:         "1HGCM82633A123456",
		Temperature: 41.5,
		State:       StateCritical,
		Timestamp:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["state"] != "CRITICAL" {
		t.Fatalf("expected state label CRITICAL, got %v", decoded["state"])
	}

	var s OperatingState
	if err := s.UnmarshalText([]byte("WARNING")); err != nil || s != StateWarning {
		t.Fatalf("UnmarshalText(WARNING) = %s, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("MELTDOWN")); err == nil {
		t.Fatalf("expected error for unknown state label")
	}
}
