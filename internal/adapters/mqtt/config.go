// Package mqtt publishes telemetry to the configured broker over MQTT.
package mqtt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config captures the broker session and topic details.
type Config struct {
	Broker   string `yaml:"broker"`
	Port     int    `yaml:"port"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	TelemetryTopic string `yaml:"telemetry_topic"`
	StateTopic     string `yaml:"state_topic"`
	QoS            byte   `yaml:"qos"`

	// PublishTimeoutMS bounds every publish attempt. It must stay below the
	// critical sampling interval so a stalled broker never delays a read;
	// the cross-field check lives in the app config.
	PublishTimeoutMS int `yaml:"publish_timeout_ms"`
	ConnectTimeoutMS int `yaml:"connect_timeout_ms"`
}

func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 1883
	}
	if c.ClientID == "" {
		c.ClientID = "vinwatch-node"
	}
	if c.TelemetryTopic == "" {
		c.TelemetryTopic = "vehicle/telemetry"
	}
	if c.StateTopic == "" {
		c.StateTopic = "vehicle/state"
	}
	if c.PublishTimeoutMS == 0 {
		c.PublishTimeoutMS = 500
	}
	if c.ConnectTimeoutMS == 0 {
		c.ConnectTimeoutMS = 5000
	}
}

func (c *Config) Validate() error {
	if c.Broker == "" {
		return errors.New("broker is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.QoS > 2 {
		return fmt.Errorf("qos must be 0..2, got %d", c.QoS)
	}
	if c.PublishTimeoutMS <= 0 {
		return fmt.Errorf("publish_timeout_ms must be positive, got %d", c.PublishTimeoutMS)
	}
	if c.TelemetryTopic == c.StateTopic {
		return errors.New("telemetry_topic and state_topic must differ")
	}
	return nil
}

func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.PublishTimeoutMS) * time.Millisecond
}

func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMS) * time.Millisecond
}

// BrokerURL renders the paho broker address; a broker given with an explicit
// scheme (e.g. ws://) is passed through untouched.
func (c *Config) BrokerURL() string {
	if strings.Contains(c.Broker, "://") {
		return c.Broker
	}
	return fmt.Sprintf("tcp://%s:%d", c.Broker, c.Port)
}
