package stream

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts streamer activity.
type Metrics struct {
	Started *prometheus.CounterVec
	Writes  prometheus.Counter
	Frames  prometheus.Counter
	Active  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valuetx_transitions_started_total",
				Help: "Transitions started, by name.",
			},
			[]string{"transition"},
		),
		Writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valuetx_property_writes_total",
			Help: "Property writes made by transitions.",
		}),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valuetx_frames_published_total",
			Help: "Frames with at least one write.",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "valuetx_transitions_active",
			Help: "Transitions currently running.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Started, m.Writes, m.Frames, m.Active)
	}
	return m
}
