package metrics

import (
	"sync/atomic"
	"threes/game"
	"time"
)

type SearchMetric struct {
	Depth       int
	SampleCap   int
	Duration    time.Duration
	Nodes       int
	CacheHits   int
	Evaluations int
	Score       float64 // Expected score of the chosen move
}

type MoveMetric struct {
	Step       int
	Direction  game.Direction
	ScoreDelta int
	SearchMetric
}

type GameMetric struct {
	Seed       uint64
	Score      int
	MaxTile    int
	GameOver   bool // False when the move cap ended the game
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(depth, sampleCap int)
	AddNode()
	AddCacheHit()
	AddEvaluation()
	Complete() SearchMetric
}

type collector struct {
	depth       int
	sampleCap   int
	startTime   time.Time
	nodes       atomic.Int32
	cacheHits   atomic.Int32
	evaluations atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, sampleCap int) {
	m.startTime = time.Now()
	m.depth = depth
	m.sampleCap = sampleCap
	m.nodes.Store(0)
	m.cacheHits.Store(0)
	m.evaluations.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		SampleCap:   m.sampleCap,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		CacheHits:   int(m.cacheHits.Load()),
		Evaluations: int(m.evaluations.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, sampleCap int) {}
func (m *dummyCollector) AddNode()                   {}
func (m *dummyCollector) AddCacheHit()               {}
func (m *dummyCollector) AddEvaluation()             {}
func (m *dummyCollector) Complete() SearchMetric     { return SearchMetric{} }
