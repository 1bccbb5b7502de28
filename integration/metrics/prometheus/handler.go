package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler exposing the given collectors plus the Go runtime and
// process collectors, on a registry of its own.
//
// Example:
//
//	http.Handle("/metrics", appleprom.Handler(appleprom.NewCollector(r)))
func Handler(cs ...prometheus.Collector) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(cs...)

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
