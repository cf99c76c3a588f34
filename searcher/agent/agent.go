package agent

import (
	"threes/experiments/metrics"
	"threes/game"
)

type Agent interface {
	// FindMove returns the chosen direction and search metrics (if collected). ok is false when no
	// direction changes the board.
	FindMove(board *game.Board, forecast game.Forecast) (dir game.Direction, ok bool, metric metrics.SearchMetric)
	Name() string
}
