package memvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each add operation.
	RecordAdd(duration time.Duration, err error)

	// RecordAddBatch is called after each batch add operation. count is the
	// number of items attempted, failed is the number that failed.
	RecordAddBatch(count, failed int, duration time.Duration)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, err error)

	// RecordSearch is called after each search operation. k is the number of
	// neighbors requested.
	RecordSearch(k int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)         {}
func (NoopMetricsCollector) RecordAddBatch(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)      {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount         atomic.Int64
	AddErrors        atomic.Int64
	AddTotalNanos    atomic.Int64
	AddBatchCount    atomic.Int64
	AddBatchItems    atomic.Int64
	AddBatchFailed   atomic.Int64
	RemoveCount      atomic.Int64
	RemoveErrors     atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordAddBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAddBatch(count, failed int, duration time.Duration) {
	b.AddBatchCount.Add(1)
	b.AddBatchItems.Add(int64(count))
	b.AddBatchFailed.Add(int64(failed))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}
