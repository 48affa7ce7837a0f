// Package exporters exposes collected metrics to scrapers.
package exporters

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPHandler serves the default registry in the Prometheus text format.
// Collectors registered through promauto show up without further wiring.
// A misbehaving collector degrades the scrape instead of failing it.
func HTTPHandler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
