package agent

import (
	"threes/experiments/metrics"
	"threes/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that picks uniformly among the valid moves.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(board *game.Board, _ game.Forecast) (game.Direction, bool, metrics.SearchMetric) {
	moves := board.ValidMoves()
	if len(moves) == 0 {
		return 0, false, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], true, metrics.SearchMetric{}
}

func (a randomAgent) Name() string {
	return "random"
}
