package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes the work done to choose one action.
type SearchMetric struct {
	Depth       int
	Evaluation  string
	Aggregation string
	Prune       string
	Duration    time.Duration
	Nodes       int // Child nodes built and evaluated
	Expansions  int // Recursive expansions, the root included
	MaxDepth    int // Deepest expansion reached
	Ties        int // Root children sharing the best score
	DeadlineHit bool
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int    // Player ID
	Winner         string // Player name, "" if the turn cap was reached
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int, evaluation, aggregation, prune string)
	AddNode()
	AddExpansion(depth int)
	SetTies(ties int)
	SetDeadlineHit()
	Complete() SearchMetric
}

type collector struct {
	depth       int
	evaluation  string
	aggregation string
	prune       string
	startTime   time.Time
	nodes       atomic.Int32
	expansions  atomic.Int32
	maxDepth    atomic.Int32
	ties        atomic.Int32
	deadlineHit atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, evaluation, aggregation, prune string) {
	m.startTime = time.Now()
	m.depth = depth
	m.evaluation = evaluation
	m.aggregation = aggregation
	m.prune = prune
	m.nodes.Store(0)
	m.expansions.Store(0)
	m.maxDepth.Store(0)
	m.ties.Store(0)
	m.deadlineHit.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddExpansion(depth int) {
	m.expansions.Add(1)
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) SetTies(ties int) {
	m.ties.Store(int32(ties))
}

func (m *collector) SetDeadlineHit() {
	m.deadlineHit.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Evaluation:  m.evaluation,
		Aggregation: m.aggregation,
		Prune:       m.prune,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Expansions:  int(m.expansions.Load()),
		MaxDepth:    int(m.maxDepth.Load()),
		Ties:        int(m.ties.Load()),
		DeadlineHit: m.deadlineHit.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, evaluation, aggregation, prune string) {}
func (m *dummyCollector) AddNode()                                                 {}
func (m *dummyCollector) AddExpansion(depth int)                                   {}
func (m *dummyCollector) SetTies(ties int)                                         {}
func (m *dummyCollector) SetDeadlineHit()                                          {}
func (m *dummyCollector) Complete() SearchMetric                                   { return SearchMetric{} }
