package experiments

import (
	"context"
	"fmt"
	"threes/config"
	"threes/engine"
	"threes/experiments/metrics"
	"threes/searcher"
	"threes/searcher/agent"
	"threes/store"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Games       int
	GameOvers   int // Games that ended without a valid move, the rest hit the move cap
	MeanScore   float64
	StdDevScore float64
	BestScore   int
	MaxTile     int
	MeanMoves   float64
}

type result struct {
	agent string
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

// RunAutoplay plays cfg.Games games with up to cfg.Parallel games at a time and
// summarizes them. Game i uses seed cfg.Seed+i, or a random seed when cfg.Seed
// is 0.
func RunAutoplay(ctx context.Context, cfg *config.Config) (Summary, error) {
	var bestScores store.BestScoreStore = store.NewMemoryStore()
	if cfg.BestScorePath != "" {
		bestScores = store.NewFileStore(cfg.BestScorePath)
	}
	bestScores = store.KeepMax(bestScores)

	log.Info().Msgf("starting %d %s games with %d workers...", cfg.Games, cfg.Agent, cfg.Parallel)

	results := make([]result, cfg.Games)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Parallel)
	for i := 0; i < cfg.Games; i++ {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runGame(cfg, gameSeed(cfg.Seed, i), bestScores)
			log.Info().Msgf("completed game %d of %d with score %d", i+1, cfg.Games, results[i].game.Score)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Summary{}, fmt.Errorf("autoplay interrupted: %w", err)
	}

	if cfg.OutputDir != "" {
		if err := writeRecords(cfg.OutputDir, results); err != nil {
			return Summary{}, err
		}
	}

	summary := summarize(results)
	log.Info().Msgf("mean score %.1f (stddev %.1f), best %d, max tile %d over %d games",
		summary.MeanScore, summary.StdDevScore, summary.BestScore, summary.MaxTile, summary.Games)
	return summary, nil
}

func gameSeed(base uint64, i int) uint64 {
	if base == 0 {
		return 0
	}
	return base + uint64(i)
}

func runGame(cfg *config.Config, seed uint64, bestScores store.BestScoreStore) result {
	options := []searcher.Option{
		searcher.WithDepth(cfg.Depth),
		searcher.WithSampleCap(cfg.SampleCap),
	}
	if cfg.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	search := searcher.NewExpectimax(options...)

	g := engine.New(engine.WithSeed(seed), engine.WithStore(bestScores), engine.WithSearcher(search))
	a := createAgent(cfg.Agent, search, g.Seed())

	gameMetric, moveMetrics := g.Autoplay(a, cfg.MaxMoves)
	return result{agent: a.Name(), game: gameMetric, moves: moveMetrics}
}

func createAgent(name string, search *searcher.Expectimax, seed uint64) agent.Agent {
	if name == config.AgentRandom {
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed)))
	}
	return agent.NewExpectimaxAgent(search)
}

func summarize(results []result) Summary {
	if len(results) == 0 {
		return Summary{}
	}
	scores := lo.Map(results, func(r result, _ int) float64 { return float64(r.game.Score) })
	moves := lo.Map(results, func(r result, _ int) float64 { return float64(r.game.TotalMoves) })
	mean, stdDev := stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		stdDev = 0
	}

	return Summary{
		Games:       len(results),
		GameOvers:   lo.CountBy(results, func(r result) bool { return r.game.GameOver }),
		MeanScore:   mean,
		StdDevScore: stdDev,
		BestScore:   lo.Max(lo.Map(results, func(r result, _ int) int { return r.game.Score })),
		MaxTile:     lo.Max(lo.Map(results, func(r result, _ int) int { return r.game.MaxTile })),
		MeanMoves:   stat.Mean(moves, nil),
	}
}

func writeRecords(dir string, results []result) error {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for i, r := range results {
		gameRecords = append(gameRecords, metrics.GameRecord{ID: i + 1, Agent: r.agent, GameMetric: r.game})
		for _, mm := range r.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
	}

	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
