package figmacontext

import (
	"sync"
	"time"
)

// DefaultMetricsSamples bounds the accumulator's sample ring.
const DefaultMetricsSamples = 1024

// Sample is one recorded extraction.
type Sample struct {
	FileID   string
	At       time.Time
	Duration time.Duration
	Cached   bool
}

// MetricsAccumulator collects per-extraction timing samples. It is bounded:
// once the ring is full, the oldest sample is dropped. Safe for concurrent
// use.
type MetricsAccumulator struct {
	mu         sync.Mutex
	maxSamples int
	samples    []Sample

	total     int
	cacheHits int
}

// MetricsSnapshot is a point-in-time aggregate of the accumulator.
type MetricsSnapshot struct {
	TotalExtractions int           `json:"totalExtractions"`
	CacheHits        int           `json:"cacheHits"`
	CacheHitRate     float64       `json:"cacheHitRate"`
	AverageDuration  time.Duration `json:"averageDuration"`
	SampleCount      int           `json:"sampleCount"`
}

// NewMetricsAccumulator creates an accumulator keeping at most maxSamples
// samples. Non-positive values fall back to DefaultMetricsSamples.
func NewMetricsAccumulator(maxSamples int) *MetricsAccumulator {
	if maxSamples <= 0 {
		maxSamples = DefaultMetricsSamples
	}
	return &MetricsAccumulator{maxSamples: maxSamples}
}

// Record adds one sample, evicting the oldest when the ring is full.
func (m *MetricsAccumulator) Record(s Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	if s.Cached {
		m.cacheHits++
	}
	if len(m.samples) == m.maxSamples {
		copy(m.samples, m.samples[1:])
		m.samples = m.samples[:len(m.samples)-1]
	}
	m.samples = append(m.samples, s)
}

// Snapshot aggregates the current samples and lifetime counters.
func (m *MetricsAccumulator) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		TotalExtractions: m.total,
		CacheHits:        m.cacheHits,
		SampleCount:      len(m.samples),
	}
	if m.total > 0 {
		snap.CacheHitRate = float64(m.cacheHits) / float64(m.total)
	}
	if len(m.samples) > 0 {
		var sum time.Duration
		for _, s := range m.samples {
			sum += s.Duration
		}
		snap.AverageDuration = sum / time.Duration(len(m.samples))
	}
	return snap
}

// Reset discards all samples and counters. Call it on teardown so a
// long-lived process does not carry metrics across lifecycles.
func (m *MetricsAccumulator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = nil
	m.total = 0
	m.cacheHits = 0
}
