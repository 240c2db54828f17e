package pooltestutil

import (
	"fmt"
	"runtime"
	"testing"
	"time"
)

// PerformanceTest provides utilities for performance testing pool
// throughput under load, grounded on the same threshold-check shape used
// throughout this codebase's integration tests.
type PerformanceTest struct {
	t         *testing.T
	name      string
	threshold struct {
		minThroughput float64 // ops/sec
		maxLatency    time.Duration
		maxMemory     int64 // bytes
	}
}

// NewPerformanceTest creates a new performance test.
func NewPerformanceTest(t *testing.T, name string) *PerformanceTest {
	return &PerformanceTest{t: t, name: name}
}

// WithThroughputTarget sets the minimum throughput requirement.
func (p *PerformanceTest) WithThroughputTarget(opsPerSec float64) *PerformanceTest {
	p.threshold.minThroughput = opsPerSec
	return p
}

// WithLatencyTarget sets the maximum average latency requirement.
func (p *PerformanceTest) WithLatencyTarget(maxLatency time.Duration) *PerformanceTest {
	p.threshold.maxLatency = maxLatency
	return p
}

// WithMemoryTarget sets the maximum memory growth requirement.
func (p *PerformanceTest) WithMemoryTarget(maxBytes int64) *PerformanceTest {
	p.threshold.maxMemory = maxBytes
	return p
}

// Run executes fn and checks the configured thresholds.
func (p *PerformanceTest) Run(fn func() (opsProcessed int64, duration time.Duration)) {
	p.t.Helper()

	initialMem := CaptureMemoryProfile()
	ops, duration := fn()
	finalMem := CaptureMemoryProfile()

	throughput := float64(ops) / duration.Seconds()
	avgLatency := duration / time.Duration(ops)
	memoryUsed := int64(finalMem.AllocBytes - initialMem.AllocBytes)

	p.t.Logf("Performance Test: %s", p.name)
	p.t.Logf("  Ops: %d", ops)
	p.t.Logf("  Duration: %v", duration)
	p.t.Logf("  Throughput: %.0f ops/sec", throughput)
	p.t.Logf("  Avg Latency: %v", avgLatency)
	p.t.Logf("  Memory Used: %s", formatBytes(memoryUsed))

	if p.threshold.minThroughput > 0 && throughput < p.threshold.minThroughput {
		p.t.Errorf("throughput %.0f ops/sec below target %.0f ops/sec", throughput, p.threshold.minThroughput)
	}
	if p.threshold.maxLatency > 0 && avgLatency > p.threshold.maxLatency {
		p.t.Errorf("latency %v exceeds target %v", avgLatency, p.threshold.maxLatency)
	}
	if p.threshold.maxMemory > 0 && memoryUsed > p.threshold.maxMemory {
		p.t.Errorf("memory usage %s exceeds target %s", formatBytes(memoryUsed), formatBytes(p.threshold.maxMemory))
	}
}

// MemoryProfile captures memory statistics at a point in time.
type MemoryProfile struct {
	AllocBytes uint64
	TotalAlloc uint64
	Sys        uint64
	Mallocs    uint64
	Frees      uint64
	HeapAlloc  uint64
}

// CaptureMemoryProfile captures the current memory profile.
func CaptureMemoryProfile() *MemoryProfile {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &MemoryProfile{
		AllocBytes: m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		Mallocs:    m.Mallocs,
		Frees:      m.Frees,
		HeapAlloc:  m.HeapAlloc,
	}
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
