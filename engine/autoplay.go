package engine

import (
	"threes/experiments/metrics"
	"threes/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

// Autoplay asks a for one move at a time and applies it, until no move is
// possible, the game is over or maxMoves moves have been played.
func (g *Game) Autoplay(a agent.Agent, maxMoves int) (metrics.GameMetric, []metrics.MoveMetric) {
	startTime := time.Now()
	var moveMetrics []metrics.MoveMetric

	for step := 0; step < maxMoves && !g.IsGameOver(); step++ {
		dir, ok, searchMetric := a.FindMove(g.board.Copy(), g.Forecast())
		if !ok {
			break
		}

		result, err := g.ApplyMove(dir)
		if err != nil {
			log.Warn().Err(err).Msgf("%s agent returned an unusable move", a.Name())
			break
		}
		if !result.Changed { // Would loop forever
			log.Warn().Msgf("%s agent returned no-op move %s", a.Name(), dir)
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Direction:    dir,
			ScoreDelta:   result.ScoreDelta,
			SearchMetric: searchMetric,
		})
	}

	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		Seed:       g.seed,
		Score:      g.score,
		MaxTile:    g.board.MaxValue(),
		GameOver:   g.IsGameOver(),
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: len(moveMetrics),
	}
	log.Info().Msgf("%s agent finished with score %d, max tile %d after %d moves",
		a.Name(), gameMetric.Score, gameMetric.MaxTile, gameMetric.TotalMoves)
	return gameMetric, moveMetrics
}
