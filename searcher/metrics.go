package searcher

import (
	"time"
)

type SearchMetric struct {
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int
	Expansions   int
	RolloutPlies int
	MaxDepth     int
	TreeSize     int
	DeadlineHit  bool
}

type MetricsCollector interface {
	Start()
	AddIteration(depth int)
	AddExpansion()
	AddRolloutPly()
	DeadlineHit()
	Complete(root *Node) SearchMetric
}

type metricsCollector struct {
	startTime    time.Time
	iterations   int
	expansions   int
	rolloutPlies int
	maxDepth     int
	deadlineHit  bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	*m = metricsCollector{startTime: time.Now()}
}

func (m *metricsCollector) AddIteration(depth int) {
	m.iterations++
	m.maxDepth = max(m.maxDepth, depth)
}

func (m *metricsCollector) AddExpansion() {
	m.expansions++
}

func (m *metricsCollector) AddRolloutPly() {
	m.rolloutPlies++
}

func (m *metricsCollector) DeadlineHit() {
	m.deadlineHit = true
}

func (m *metricsCollector) Complete(root *Node) SearchMetric {
	return SearchMetric{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations,
		Expansions:   m.expansions,
		RolloutPlies: m.rolloutPlies,
		MaxDepth:     m.maxDepth,
		TreeSize:     root.Size(),
		DeadlineHit:  m.deadlineHit,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                           {}
func (m *noMetricsCollector) AddIteration(depth int)           {}
func (m *noMetricsCollector) AddExpansion()                    {}
func (m *noMetricsCollector) AddRolloutPly()                   {}
func (m *noMetricsCollector) DeadlineHit()                     {}
func (m *noMetricsCollector) Complete(root *Node) SearchMetric { return SearchMetric{} }
