// Package metrics provides Prometheus metrics for device discovery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	devicesPresent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vision",
		Name:      "devices_present",
		Help:      "Capture devices currently in the registry",
	})

	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vision",
		Name:      "scans_total",
		Help:      "Completed registry scans",
	})

	scanErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vision",
		Name:      "scan_errors_total",
		Help:      "Device probe errors across all scans",
	})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vision",
		Name:      "scan_duration_seconds",
		Help:      "Registry scan duration",
	})

	hotplugEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vision",
		Name:      "hotplug_events_total",
		Help:      "Netlink uevents seen, by action",
	}, []string{"action"})

	snapshotRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vision",
		Name:      "snapshot_requests_total",
		Help:      "Device snapshot lookups, by outcome (ok, not_found)",
	}, []string{"outcome"})
)

// SetDevicesPresent sets the number of devices currently held by the registry.
func SetDevicesPresent(n int) {
	devicesPresent.Set(float64(n))
}

// RecordScan records one completed registry scan.
func RecordScan(duration time.Duration, probeErrors int) {
	scansTotal.Inc()
	scanErrorsTotal.Add(float64(probeErrors))
	scanDuration.Observe(duration.Seconds())
}

// RecordHotplugEvent counts one hotplug event by action (add, remove, ...).
func RecordHotplugEvent(action string) {
	hotplugEventsTotal.WithLabelValues(action).Inc()
}

// RecordSnapshotRequest counts one snapshot lookup by outcome.
func RecordSnapshotRequest(outcome string) {
	snapshotRequestsTotal.WithLabelValues(outcome).Inc()
}
