package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lakospeter91/appleremote/core/remote"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "appleremote"

// StatsSource is implemented by *remote.Remote.
type StatsSource interface {
	Stats() remote.Stats
}

// Collector exports a remote's counters as Prometheus metrics.
// Values are read from Stats on every scrape, so the remote needs no instrumentation hooks.
type Collector struct {
	source StatsSource

	up               *prometheus.Desc
	listeners        *prometheus.Desc
	linesRead        *prometheus.Desc
	linesSkipped     *prometheus.Desc
	eventsDispatched *prometheus.Desc
	handlerFailures  *prometheus.Desc
	lastEvent        *prometheus.Desc
}

// Option configures a Collector.
type Option func(*collectorOptions)

type collectorOptions struct {
	namespace   string
	constLabels prometheus.Labels
}

// WithNamespace replaces DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(o *collectorOptions) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithConstLabels adds labels to every metric, e.g. the room the receiver is in.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *collectorOptions) {
		for k, v := range labels {
			o.constLabels[k] = v
		}
	}
}

// NewCollector creates a collector for src. The remote's ID is exported as the remote_id label.
//
// Example:
//
//	prometheus.MustRegister(appleprom.NewCollector(r))
func NewCollector(src StatsSource, opts ...Option) *Collector {
	o := &collectorOptions{
		namespace:   DefaultNamespace,
		constLabels: prometheus.Labels{},
	}
	for _, opt := range opts {
		opt(o)
	}

	stats := src.Stats()
	labels := prometheus.Labels{"remote_id": stats.ID}
	for k, v := range o.constLabels {
		labels[k] = v
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(o.namespace, "", name), help, nil, labels)
	}

	return &Collector{
		source:           src,
		up:               desc("up", "Whether the remote is reading helper output (1) or not (0)."),
		listeners:        desc("listeners", "Number of registered event handlers."),
		linesRead:        desc("lines_read_total", "Lines read from the helper process."),
		linesSkipped:     desc("lines_skipped_total", "Helper lines that could not be decoded."),
		eventsDispatched: desc("events_dispatched_total", "Decoded events delivered to handlers."),
		handlerFailures:  desc("handler_failures_total", "Handler calls that returned an error or panicked."),
		lastEvent:        desc("last_event_timestamp_seconds", "Unix time of the most recent event, 0 if none."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	ch <- c.listeners
	ch <- c.linesRead
	ch <- c.linesSkipped
	ch <- c.eventsDispatched
	ch <- c.handlerFailures
	ch <- c.lastEvent
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	up := 0.0
	if s.State == remote.StateRunning {
		up = 1
	}
	lastEvent := 0.0
	if !s.LastEventAt.IsZero() {
		lastEvent = float64(s.LastEventAt.UnixNano()) / 1e9
	}

	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, up)
	ch <- prometheus.MustNewConstMetric(c.listeners, prometheus.GaugeValue, float64(s.Listeners))
	ch <- prometheus.MustNewConstMetric(c.linesRead, prometheus.CounterValue, float64(s.LinesRead))
	ch <- prometheus.MustNewConstMetric(c.linesSkipped, prometheus.CounterValue, float64(s.LinesSkipped))
	ch <- prometheus.MustNewConstMetric(c.eventsDispatched, prometheus.CounterValue, float64(s.EventsDispatched))
	ch <- prometheus.MustNewConstMetric(c.handlerFailures, prometheus.CounterValue, float64(s.HandlerFailures))
	ch <- prometheus.MustNewConstMetric(c.lastEvent, prometheus.GaugeValue, lastEvent)
}
