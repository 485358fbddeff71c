package impulsego

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/impulsego/model"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordClassify is called after each single-shot classification.
	// duration is the total time taken, err is nil if successful.
	RecordClassify(duration time.Duration, err error)

	// RecordClassifyContinuous is called after each continuous
	// classification slice.
	RecordClassifyContinuous(duration time.Duration, err error)

	// RecordInfer is called after each feature-matrix inference.
	RecordInfer(duration time.Duration, err error)

	// RecordThresholdUpdate is called after each threshold setter call.
	// kind is the block kind the setter targets.
	RecordThresholdUpdate(kind model.BlockKind, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordClassify(time.Duration, error)           {}
func (NoopMetricsCollector) RecordClassifyContinuous(time.Duration, error) {}
func (NoopMetricsCollector) RecordInfer(time.Duration, error)              {}
func (NoopMetricsCollector) RecordThresholdUpdate(model.BlockKind, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ClassifyCount           atomic.Int64
	ClassifyErrors          atomic.Int64
	ClassifyTotalNanos      atomic.Int64
	ContinuousCount         atomic.Int64
	ContinuousErrors        atomic.Int64
	ContinuousTotalNanos    atomic.Int64
	InferCount              atomic.Int64
	InferErrors             atomic.Int64
	InferTotalNanos         atomic.Int64
	ThresholdUpdateCount    atomic.Int64
	ThresholdUpdateFailures atomic.Int64
}

// RecordClassify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClassify(duration time.Duration, err error) {
	b.ClassifyCount.Add(1)
	b.ClassifyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClassifyErrors.Add(1)
	}
}

// RecordClassifyContinuous implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClassifyContinuous(duration time.Duration, err error) {
	b.ContinuousCount.Add(1)
	b.ContinuousTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ContinuousErrors.Add(1)
	}
}

// RecordInfer implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInfer(duration time.Duration, err error) {
	b.InferCount.Add(1)
	b.InferTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InferErrors.Add(1)
	}
}

// RecordThresholdUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordThresholdUpdate(kind model.BlockKind, err error) {
	b.ThresholdUpdateCount.Add(1)
	if err != nil {
		b.ThresholdUpdateFailures.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ClassifyCount:           b.ClassifyCount.Load(),
		ClassifyErrors:          b.ClassifyErrors.Load(),
		ClassifyAvgNanos:        avgNanos(b.ClassifyTotalNanos.Load(), b.ClassifyCount.Load()),
		ContinuousCount:         b.ContinuousCount.Load(),
		ContinuousErrors:        b.ContinuousErrors.Load(),
		ContinuousAvgNanos:      avgNanos(b.ContinuousTotalNanos.Load(), b.ContinuousCount.Load()),
		InferCount:              b.InferCount.Load(),
		InferErrors:             b.InferErrors.Load(),
		InferAvgNanos:           avgNanos(b.InferTotalNanos.Load(), b.InferCount.Load()),
		ThresholdUpdateCount:    b.ThresholdUpdateCount.Load(),
		ThresholdUpdateFailures: b.ThresholdUpdateFailures.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ClassifyCount           int64
	ClassifyErrors          int64
	ClassifyAvgNanos        int64
	ContinuousCount         int64
	ContinuousErrors        int64
	ContinuousAvgNanos      int64
	InferCount              int64
	InferErrors             int64
	InferAvgNanos           int64
	ThresholdUpdateCount    int64
	ThresholdUpdateFailures int64
}
