package agent

import (
	"threes/experiments/metrics"
	"threes/game"
	"threes/searcher"
)

type expectimaxAgent struct {
	search *searcher.Expectimax
}

// NewExpectimaxAgent returns an agent that plays the expectimax best move.
func NewExpectimaxAgent(search *searcher.Expectimax) Agent {
	return expectimaxAgent{search: search}
}

func (a expectimaxAgent) FindMove(board *game.Board, forecast game.Forecast) (game.Direction, bool, metrics.SearchMetric) {
	return a.search.BestMove(board, forecast)
}

func (a expectimaxAgent) Name() string {
	return "expectimax"
}
