package ai

import (
	"sync"
	"sync/atomic"
	"time"
)

// Operation 调用类型
type Operation string

const (
	OpReading Operation = "reading"
	OpFortune Operation = "fortune"
)

// LatencyStats 延迟统计
type LatencyStats struct {
	mu    sync.Mutex
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

func (s *LatencyStats) record(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	s.total += d
	if s.min == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

func (s *LatencyStats) snapshot() LatencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := LatencySnapshot{
		Count: s.count,
		MinMs: s.min.Milliseconds(),
		MaxMs: s.max.Milliseconds(),
	}
	if s.count > 0 {
		snap.AvgMs = (s.total / time.Duration(s.count)).Milliseconds()
	}
	return snap
}

// Metrics 调用指标
type Metrics struct {
	total          atomic.Int64
	succeeded      atomic.Int64
	upstreamFailed atomic.Int64
	parseFailed    atomic.Int64
	strategies     sync.Map // Strategy -> *atomic.Int64
	latency        sync.Map // Operation -> *LatencyStats
}

// NewMetrics 创建指标收集器
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordSuccess 记录一次成功解析及所用策略
func (m *Metrics) RecordSuccess(op Operation, strategy Strategy, d time.Duration) {
	m.total.Add(1)
	m.succeeded.Add(1)
	counter, _ := m.strategies.LoadOrStore(strategy, &atomic.Int64{})
	counter.(*atomic.Int64).Add(1)
	m.latencyOf(op).record(d)
}

// RecordUpstreamError 记录上游失败
func (m *Metrics) RecordUpstreamError(op Operation, d time.Duration) {
	m.total.Add(1)
	m.upstreamFailed.Add(1)
	m.latencyOf(op).record(d)
}

// RecordParseError 记录解析失败
func (m *Metrics) RecordParseError(op Operation, d time.Duration) {
	m.total.Add(1)
	m.parseFailed.Add(1)
	m.latencyOf(op).record(d)
}

func (m *Metrics) latencyOf(op Operation) *LatencyStats {
	stats, _ := m.latency.LoadOrStore(op, &LatencyStats{})
	return stats.(*LatencyStats)
}

// LatencySnapshot 延迟统计快照
type LatencySnapshot struct {
	Count int64 `json:"count"`
	AvgMs int64 `json:"avgMs"`
	MinMs int64 `json:"minMs"`
	MaxMs int64 `json:"maxMs"`
}

// Snapshot 指标快照，用于健康检查输出
type Snapshot struct {
	Total          int64                         `json:"total"`
	Succeeded      int64                         `json:"succeeded"`
	UpstreamFailed int64                         `json:"upstreamFailed"`
	ParseFailed    int64                         `json:"parseFailed"`
	Strategies     map[Strategy]int64            `json:"strategies"`
	Latency        map[Operation]LatencySnapshot `json:"latency"`
}

// Snapshot 读取当前指标
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Total:          m.total.Load(),
		Succeeded:      m.succeeded.Load(),
		UpstreamFailed: m.upstreamFailed.Load(),
		ParseFailed:    m.parseFailed.Load(),
		Strategies:     map[Strategy]int64{},
		Latency:        map[Operation]LatencySnapshot{},
	}
	m.strategies.Range(func(key, value any) bool {
		snap.Strategies[key.(Strategy)] = value.(*atomic.Int64).Load()
		return true
	})
	m.latency.Range(func(key, value any) bool {
		snap.Latency[key.(Operation)] = value.(*LatencyStats).snapshot()
		return true
	})
	return snap
}
