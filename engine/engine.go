package engine

import (
	"fmt"
	"math"
	"strings"
	"threes/game"
	"threes/meta"
	"threes/searcher"
	"threes/store"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(g *Game)

// MoveResult reports the effect of one move.
type MoveResult struct {
	Changed    bool
	ScoreDelta int
	GameOver   bool
}

type Cell struct {
	ID    game.TileID
	Value int
}

// Snapshot is a read-only copy of the game for rendering.
type Snapshot struct {
	Grid      [game.GridSize][game.GridSize]Cell
	Tiles     []game.Tile
	Score     int
	BestScore int
	Preview   game.Preview
	GameOver  bool
}

// Game owns the board, deck and score of a single player. It is not safe for
// concurrent use.
type Game struct {
	seed    uint64
	rng     *rand.Rand
	board   *game.Board
	deck    *game.Deck
	preview game.Preview
	score   int
	best    int
	moves   int
	store   store.BestScoreStore
	search  *searcher.Expectimax
}

// WithSeed makes the deal, the deck and the spawns reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		if seed != 0 {
			g.seed = seed
		}
	}
}

func WithStore(s store.BestScoreStore) Option {
	return func(g *Game) {
		if s != nil {
			g.store = s
		}
	}
}

func WithSearcher(search *searcher.Expectimax) Option {
	return func(g *Game) {
		if search != nil {
			g.search = search
		}
	}
}

// New creates a game and deals the opening board. The best score is read from
// the store once; a failing store only logs.
func New(options ...Option) *Game {
	g := &Game{ // Default values
		store:  store.NewMemoryStore(),
		search: searcher.NewExpectimax(),
	}
	for _, option := range options {
		option(g)
	}
	if g.seed == 0 {
		g.seed = 1 + frand.Uint64n(math.MaxUint64)
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	best, err := g.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load best score")
	}
	g.best = best

	g.NewGame()
	return g
}

// NewGame resets the board, deck, score and preview, then deals INITIAL_TILES
// cards from the deck onto distinct random cells.
func (g *Game) NewGame() {
	g.board = game.NewBoard()
	g.deck = game.NewDeck(g.rng)
	g.score = 0
	g.moves = 0

	for _, cell := range g.rng.Perm(game.GridSize * game.GridSize)[:meta.INITIAL_TILES] {
		if _, err := g.board.Place(g.deck.Draw(), cell/game.GridSize, cell%game.GridSize); err != nil {
			log.Error().Err(err).Msg("failed to deal opening tile")
		}
	}
	g.preview = g.deck.DrawPreview(g.board.MaxValue())

	log.Debug().Msgf("new game with seed %d, preview %d", g.seed, g.preview.Value)
}

// ApplyMove slides the board in dir. A move that changes nothing is not an
// error: it spawns nothing and keeps the preview.
func (g *Game) ApplyMove(dir game.Direction) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{}, fmt.Errorf("%w: %d", game.ErrInvalidDirection, int(dir))
	}

	slide := g.board.Move(dir)
	if !slide.Moved {
		return MoveResult{GameOver: g.board.IsGameOver()}, nil
	}

	g.score += slide.Points
	g.moves++
	g.spawn(dir)
	g.updateBest()

	return MoveResult{
		Changed:    true,
		ScoreDelta: slide.Points,
		GameOver:   g.board.IsGameOver(),
	}, nil
}

// ApplyCommand accepts a direction name, or "new"/"reset" to restart.
func (g *Game) ApplyCommand(command string) (MoveResult, error) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "new", "reset":
		g.NewGame()
		return MoveResult{}, nil
	}
	dir, err := game.ParseDirection(command)
	if err != nil {
		return MoveResult{}, err
	}
	return g.ApplyMove(dir)
}

// spawn places the preview on a random empty cell of the edge opposite the
// move, then draws the next preview.
func (g *Game) spawn(dir game.Direction) {
	edge := lo.Filter(g.board.EmptyCells(), func(p game.Position, _ int) bool {
		return onEdgeOpposite(p, dir)
	})
	if len(edge) == 0 {
		log.Warn().Msgf("no empty cell on the edge opposite %s, preview kept", dir)
		return
	}

	cell := edge[g.rng.Intn(len(edge))]
	if _, err := g.board.Place(g.preview.Value, cell.Row, cell.Col); err != nil {
		log.Error().Err(err).Msgf("failed to spawn %d at %v", g.preview.Value, cell)
		return
	}
	g.preview = g.deck.DrawPreview(g.board.MaxValue())
}

func onEdgeOpposite(p game.Position, dir game.Direction) bool {
	last := game.GridSize - 1
	switch dir {
	case game.Up:
		return p.Row == last
	case game.Down:
		return p.Row == 0
	case game.Left:
		return p.Col == last
	default:
		return p.Col == 0
	}
}

func (g *Game) updateBest() {
	if g.score <= g.best {
		return
	}
	g.best = g.score
	if err := g.store.Save(g.best); err != nil {
		log.Warn().Err(err).Msg("failed to save best score")
	}
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tiles:     g.board.Tiles(),
		Score:     g.score,
		BestScore: g.best,
		Preview:   g.preview,
		GameOver:  g.board.IsGameOver(),
	}
	for _, t := range s.Tiles {
		s.Grid[t.Row][t.Col] = Cell{ID: t.ID, Value: t.Value}
	}
	return s
}

func (g *Game) NextTilePreview() game.Preview {
	return g.preview
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) BestScore() int {
	return g.best
}

func (g *Game) Moves() int {
	return g.moves
}

func (g *Game) Seed() uint64 {
	return g.seed
}

func (g *Game) MaxTile() int {
	return g.board.MaxValue()
}

func (g *Game) IsGameOver() bool {
	return g.board.IsGameOver()
}

func (g *Game) ValidMoves() []game.Direction {
	return g.board.ValidMoves()
}

// Board returns a copy of the live board.
func (g *Game) Board() *game.Board {
	return g.board.Copy()
}

// Forecast returns the spawn distributions for the current position.
func (g *Game) Forecast() game.Forecast {
	return game.NewForecast(g.deck.Counts(), g.preview, g.board.MaxValue())
}

// ComputeBestMove runs one expectimax decision. ok is false when no move is
// possible, which callers should treat as the end of the game.
func (g *Game) ComputeBestMove() (game.Direction, bool) {
	dir, ok, metric := g.search.BestMove(g.board, g.Forecast())
	if ok {
		log.Debug().Msgf("best move %s (expected %.1f, %d nodes)", dir, metric.Score, metric.Nodes)
	}
	return dir, ok
}
