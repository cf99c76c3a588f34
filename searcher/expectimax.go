package searcher

import (
	"math"
	"threes/experiments/metrics"
	"threes/game"
	"threes/meta"
)

type Option func(e *Expectimax)

// Expectimax searches alternating max (player move) and chance (tile spawn)
// plies to a fixed depth. It is not safe for concurrent use; give every game
// its own instance.
type Expectimax struct {
	depth     int
	sampleCap int
	evaluate  game.Evaluate
	table     *table
	metrics   metrics.Collector
}

func WithDepth(depth int) Option {
	return func(e *Expectimax) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

// WithSampleCap bounds the number of empty cells a chance node expands.
func WithSampleCap(n int) Option {
	return func(e *Expectimax) {
		if n > 0 {
			e.sampleCap = n
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(e *Expectimax) {
		e.metrics = metrics.NewCollector()
	}
}

func NewExpectimax(options ...Option) *Expectimax {
	e := &Expectimax{ // Default values
		depth:     meta.SEARCH_DEPTH,
		sampleCap: meta.SAMPLE_CAP,
		evaluate:  game.EvaluateBoard,
		table:     newTable(),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Expectimax) Depth() int {
	return e.depth
}

func (e *Expectimax) SampleCap() int {
	return e.sampleCap
}

// BestMove returns the direction with the highest expected score, trying
// directions in game.Directions order so the earliest wins ties. ok is false
// when no direction changes the board.
func (e *Expectimax) BestMove(board *game.Board, forecast game.Forecast) (game.Direction, bool, metrics.SearchMetric) {
	e.table.reset()
	e.metrics.Start(e.depth, e.sampleCap)

	var best game.Direction
	found := false
	bestScore := math.Inf(-1)
	for _, dir := range game.Directions {
		next, _, ok := board.Simulate(dir)
		if !ok {
			continue
		}
		score := e.searchChance(next, e.depth-1, forecast.Next, forecast.Later)
		if !found || score > bestScore {
			best, bestScore, found = dir, score, true
		}
	}

	metric := e.metrics.Complete()
	if found {
		metric.Score = bestScore
	}
	return best, found, metric
}

func (e *Expectimax) searchMax(board *game.Board, depth int, later []game.Outcome) float64 {
	e.metrics.AddNode()
	if depth <= 0 {
		return e.eval(board)
	}

	cells := board.Cells()
	key := ttKey{kind: maxNode, hash: cells.Hash(), depth: depth}
	if score, ok := e.table.lookup(key, &cells); ok {
		e.metrics.AddCacheHit()
		return score
	}

	moved := false
	best := math.Inf(-1)
	for _, dir := range game.Directions {
		next, _, ok := board.Simulate(dir)
		if !ok {
			continue
		}
		moved = true
		best = math.Max(best, e.searchChance(next, depth-1, later, later))
	}
	if !moved { // Terminal
		best = e.eval(board)
	}

	e.table.store(key, &cells, best)
	return best
}

// searchChance averages over the first sampleCap empty cells in scan order. Each
// outcome is weighted by its probability and 1/len(empty), and the sum is
// divided by the number of sampled cells.
func (e *Expectimax) searchChance(board *game.Board, depth int, outcomes, later []game.Outcome) float64 {
	e.metrics.AddNode()
	if depth <= 0 {
		return e.eval(board)
	}
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return e.eval(board)
	}

	cells := board.Cells()
	key := ttKey{kind: chanceNode, hash: cells.Hash(), depth: depth}
	if score, ok := e.table.lookup(key, &cells); ok {
		e.metrics.AddCacheHit()
		return score
	}

	sampled := empty[:min(len(empty), e.sampleCap)]
	cellWeight := 1.0 / float64(len(empty))
	sum := 0.0
	for _, cell := range sampled {
		for _, outcome := range outcomes {
			child := board.Copy()
			if _, err := child.Place(outcome.Value, cell.Row, cell.Col); err != nil {
				continue
			}
			sum += e.searchMax(child, depth-1, later) * cellWeight * outcome.Probability
		}
	}
	score := sum / float64(len(sampled))

	e.table.store(key, &cells, score)
	return score
}

func (e *Expectimax) eval(board *game.Board) float64 {
	e.metrics.AddEvaluation()
	return e.evaluate(board)
}
