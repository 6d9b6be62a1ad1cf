package hub

import (
	"github.com/VictoriaMetrics/metrics"
	"io"
)

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

// Operation counters, shared by all hub instances in the process.
var (
	metricHits          = metrics.NewCounter("cachehub_cache_hits_total")
	metricMisses        = metrics.NewCounter("cachehub_cache_misses_total")
	metricFallbacks     = metrics.NewCounter("cachehub_fallback_invocations_total")
	metricWrites        = metrics.NewCounter("cachehub_writes_total")
	metricRemovals      = metrics.NewCounter("cachehub_removals_total")
	metricClears        = metrics.NewCounter("cachehub_clears_total")
	metricNotifications = metrics.NewCounter("cachehub_notifications_total")
)

// WriteMetrics writes all registered metrics in Prometheus text exposition
// format. Callers can serve this from an HTTP handler or dump it on demand.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
