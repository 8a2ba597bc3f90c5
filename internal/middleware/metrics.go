package middleware

import (
	"sync"
	"time"

	"github.com/wolfitem/newsradar/internal/infrastructure/logger"
)

// MetricsCollector 收集一次采集运行中的抓取指标
type MetricsCollector struct {
	mu sync.Mutex

	startTime time.Time

	// 抓取统计
	fetches   int64
	failures  int64
	items     int64
	durations []time.Duration
}

// NewMetricsCollector 创建新的指标收集器
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		startTime: time.Now(),
		durations: make([]time.Duration, 0, 32),
	}
}

// RecordFetch 记录一次源抓取的结果
func (m *MetricsCollector) RecordFetch(source string, duration time.Duration, itemCount int, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetches++
	if !success {
		m.failures++
	}
	m.items += int64(itemCount)
	m.durations = append(m.durations, duration)

	logger.Debug("记录源抓取指标",
		"source", source,
		"duration_ms", duration.Milliseconds(),
		"items", itemCount,
		"success", success)
}

// Snapshot 指标快照
type Snapshot struct {
	Fetches       int64
	Failures      int64
	Items         int64
	AvgDurationMS int64
	ElapsedMS     int64
}

// GetSnapshot 返回当前指标快照
func (m *MetricsCollector) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total time.Duration
	for _, d := range m.durations {
		total += d
	}
	var avg time.Duration
	if len(m.durations) > 0 {
		avg = total / time.Duration(len(m.durations))
	}

	return Snapshot{
		Fetches:       m.fetches,
		Failures:      m.failures,
		Items:         m.items,
		AvgDurationMS: avg.Milliseconds(),
		ElapsedMS:     time.Since(m.startTime).Milliseconds(),
	}
}

// LogSummary 在一次运行结束时输出指标汇总
func (m *MetricsCollector) LogSummary() {
	snap := m.GetSnapshot()
	logger.Info("采集指标汇总",
		"fetches", snap.Fetches,
		"failures", snap.Failures,
		"items", snap.Items,
		"avg_duration_ms", snap.AvgDurationMS,
		"elapsed_ms", snap.ElapsedMS)
}
