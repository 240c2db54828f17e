package poolmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorRecordTake(t *testing.T) {
	c := NewCollector("test-take-pool")
	c.RecordTake(true)
	c.RecordTake(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(Takes.WithLabelValues("test-take-pool", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(Takes.WithLabelValues("test-take-pool", "miss")))
}

func TestCollectorRecordPut(t *testing.T) {
	c := NewCollector("test-put-pool")
	c.RecordPut(true)
	c.RecordPut(true)
	c.RecordPut(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(Puts.WithLabelValues("test-put-pool", "admitted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(Puts.WithLabelValues("test-put-pool", "rejected")))
}

func TestCollectorSetQueueDepth(t *testing.T) {
	c := NewCollector("test-depth-pool")
	c.SetQueueDepth(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(QueueDepth.WithLabelValues("test-depth-pool")))
}

func TestCollectorUptime(t *testing.T) {
	c := NewCollector("test-uptime-pool")
	assert.GreaterOrEqual(t, c.Uptime().Seconds(), float64(0))
}
