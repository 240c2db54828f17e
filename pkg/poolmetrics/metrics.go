// Package poolmetrics provides Prometheus-backed observability for
// poolshark's registries: takes, puts, admission outcomes, and queue depth.
//
// # Basic Usage
//
//	collector := poolmetrics.NewCollector("byte-buffer")
//	collector.RecordTake(true) // hit
//	collector.RecordPut(true)  // admitted
//	collector.RecordPut(false) // rejected, really dropped
//	collector.SetQueueDepth(42)
package poolmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Takes counts values taken from a pool, labeled by pool name and
	// whether the take was satisfied from the pool ("hit") or found nothing
	// idle to recycle ("miss").
	Takes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poolshark_takes_total",
			Help: "Total values taken from a pool",
		},
		[]string{"pool", "result"},
	)

	// Puts counts release attempts, labeled by whether the value was
	// admitted back into the pool or really dropped.
	Puts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poolshark_puts_total",
			Help: "Total release attempts against a pool",
		},
		[]string{"pool", "result"},
	)

	// QueueDepth tracks the current number of idle values held by a pool.
	QueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poolshark_queue_depth",
			Help: "Current number of idle pooled values",
		},
		[]string{"pool"},
	)

	// PruneEvictions counts values discarded by a Prune() cycle.
	PruneEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poolshark_prune_evictions_total",
			Help: "Total values discarded by pool pruning",
		},
		[]string{"pool"},
	)

	// ProcessRSS optionally tracks process resident memory around pool
	// growth events, sampled via gopsutil.
	ProcessRSS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "poolshark_process_rss_bytes",
			Help: "Process resident memory in bytes, sampled around pool growth",
		},
	)
)

// Collector provides a per-pool metrics facade, the way every other
// component in this codebase scopes its Prometheus metrics under a named
// collector instead of calling the package vars directly.
type Collector struct {
	name      string
	startTime time.Time
}

// NewCollector creates a metrics collector scoped to one pool name.
func NewCollector(name string) *Collector {
	return &Collector{name: name, startTime: time.Now()}
}

// RecordTake records a take, distinguishing a pool hit from a freshly
// allocated miss.
func (c *Collector) RecordTake(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	Takes.WithLabelValues(c.name, result).Inc()
}

// RecordPut records a release attempt's admission outcome.
func (c *Collector) RecordPut(admitted bool) {
	result := "rejected"
	if admitted {
		result = "admitted"
	}
	Puts.WithLabelValues(c.name, result).Inc()
}

// SetQueueDepth sets the current idle-value count for this pool.
func (c *Collector) SetQueueDepth(depth int) {
	QueueDepth.WithLabelValues(c.name).Set(float64(depth))
}

// RecordPruneEvictions records values discarded by a Prune() cycle.
func (c *Collector) RecordPruneEvictions(n int) {
	PruneEvictions.WithLabelValues(c.name).Add(float64(n))
}

// Uptime returns how long this collector has been recording.
func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startTime)
}
