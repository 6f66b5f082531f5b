package observability

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vinwatch/vinwatch/internal/ports"
)

type PromObs struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	readings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vinwatch_readings_total",
		Help: "Valid temperature readings taken.",
	})
	sensorFaults := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vinwatch_sensor_faults_total",
		Help: "Sensor read attempts that failed or were rejected at the boundary.",
	})
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vinwatch_messages_published_total",
		Help: "Telemetry messages accepted by the broker.",
	})
	publishFaults := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vinwatch_publish_faults_total",
		Help: "Messages dropped because the broker was unreachable or slow.",
	})
	stateChanges := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vinwatch_state_changes_total",
		Help: "Operating state transitions.",
	})
	temperature := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vinwatch_temperature_celsius",
		Help: "Most recent valid temperature reading.",
	})
	state := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vinwatch_operating_state",
		Help: "Current operating state (0=NORMAL, 1=WARNING, 2=CRITICAL).",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vinwatch_publish_latency_seconds",
		Help:    "Broker round-trip per accepted publish.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	})

	prometheus.MustRegister(readings, sensorFaults, published, publishFaults, stateChanges, temperature, state, latency)

	return &PromObs{
		counters: map[string]prometheus.Counter{
			"vinwatch_readings_total":           readings,
			"vinwatch_sensor_faults_total":      sensorFaults,
			"vinwatch_messages_published_total": published,
			"vinwatch_publish_faults_total":     publishFaults,
			"vinwatch_state_changes_total":      stateChanges,
		},
		gauges: map[string]prometheus.Gauge{
			"vinwatch_temperature_celsius": temperature,
			"vinwatch_operating_state":     state,
		},
		histos: map[string]prometheus.Observer{
			"vinwatch_publish_latency_seconds": latency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	log.Printf("INFO: %s%s", msg, renderFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("ERROR: %s: %v%s", msg, err, renderFields(fields))
	}
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("CRITICAL: %s: %v%s", msg, err, renderFields(fields))
	}
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func renderFields(fields []ports.Field) string {
	out := ""
	for _, f := range fields {
		out += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	return out
}
