package searcher

import (
	"testing"
	"threes/game"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows [][]int) *game.Board {
	t.Helper()
	b, err := game.BoardFromValues(rows)
	require.NoError(t, err)
	return b
}

func constant(score float64) game.Evaluate {
	return func(*game.Board) float64 { return score }
}

var (
	emptyRow = []int{0, 0, 0, 0}
	even     = []game.Outcome{{Value: 1, Probability: 0.5}, {Value: 2, Probability: 0.5}}
	stuck    = [][]int{
		{3, 6, 3, 6},
		{6, 3, 6, 3},
		{3, 6, 3, 6},
		{6, 3, 6, 3},
	}
)

func TestBestMove(t *testing.T) {
	t.Run("no move on a locked board", func(t *testing.T) {
		e := NewExpectimax()

		_, ok, _ := e.BestMove(mustBoard(t, stuck), game.Forecast{Next: even, Later: even})

		require.False(t, ok, "A board without valid moves should yield no move")
	})

	t.Run("ties go to the first direction in search order", func(t *testing.T) {
		e := NewExpectimax(WithEvaluationFn(constant(1)), WithMetrics())
		b := mustBoard(t, [][]int{{3, 0, 0, 0}, emptyRow, emptyRow, emptyRow})

		dir, ok, metric := e.BestMove(b, game.Forecast{Next: even, Later: even})

		require.True(t, ok)
		require.Equal(t, game.Down, dir, "Down and Right score the same, Down is tried first")
		require.InDelta(t, 1.0/15, metric.Score, 1e-12)
		require.Equal(t, e.Depth(), metric.Depth)
		require.Equal(t, 3, e.Depth())
		require.Positive(t, metric.Nodes)
	})

	t.Run("picks a valid move with the default heuristic", func(t *testing.T) {
		e := NewExpectimax()
		b := mustBoard(t, [][]int{{1, 2, 0, 0}, {3, 0, 0, 0}, {0, 6, 0, 0}, emptyRow})

		dir, ok, _ := e.BestMove(b, game.Forecast{Next: even, Later: even})

		require.True(t, ok)
		require.Contains(t, b.ValidMoves(), dir)
	})

	t.Run("deterministic for the same inputs", func(t *testing.T) {
		b := mustBoard(t, [][]int{{1, 2, 3, 0}, {6, 0, 0, 12}, {0, 3, 0, 0}, {2, 0, 0, 1}})
		forecast := game.NewForecast(game.DeckCounts{Ones: 2, Twos: 1, Threes: 3}, game.Preview{Value: 3}, 12)

		first, ok1, m1 := NewExpectimax().BestMove(b, forecast)
		second, ok2, m2 := NewExpectimax().BestMove(b.Copy(), forecast)

		require.Equal(t, ok1, ok2)
		require.Equal(t, first, second)
		require.Equal(t, m1.Score, m2.Score)
	})

	t.Run("the table does not carry over between decisions", func(t *testing.T) {
		e := NewExpectimax(WithMetrics())
		b := mustBoard(t, [][]int{{1, 2, 3, 0}, {6, 0, 0, 12}, {0, 3, 0, 0}, {2, 0, 0, 1}})
		forecast := game.Forecast{Next: even, Later: even}

		_, _, first := e.BestMove(b, forecast)
		require.Positive(t, e.table.len())
		_, _, second := e.BestMove(b, forecast)

		require.Equal(t, first.Evaluations, second.Evaluations, "A fresh table should redo the same work")
		require.Equal(t, first.CacheHits, second.CacheHits)
	})

	t.Run("the searched board is left untouched", func(t *testing.T) {
		b := mustBoard(t, [][]int{{1, 2, 3, 0}, {6, 0, 0, 12}, {0, 3, 0, 0}, {2, 0, 0, 1}})
		before := b.Cells()

		NewExpectimax().BestMove(b, game.Forecast{Next: even, Later: even})

		require.Equal(t, before, b.Cells())
		require.NoError(t, b.Validate())
	})
}

func TestSearchChance(t *testing.T) {
	t.Run("averages over the sampled cells only", func(t *testing.T) {
		e := NewExpectimax(WithEvaluationFn(constant(1)))
		b := mustBoard(t, [][]int{
			{3, 6, 3, 6},
			{6, 3, 6, 3},
			{3, 6, 3, 0},
			{0, 0, 0, 0},
		})

		got := e.searchChance(b, 1, even, even)

		require.InDelta(t, 0.2, got, 1e-12, "Three sampled cells weighted by 1/5 then divided by 3")
	})

	t.Run("fewer empty cells than the cap", func(t *testing.T) {
		e := NewExpectimax(WithEvaluationFn(constant(1)))
		b := mustBoard(t, [][]int{
			{3, 6, 3, 6},
			{6, 3, 6, 3},
			{3, 6, 3, 6},
			{6, 3, 0, 0},
		})

		require.InDelta(t, 0.5, e.searchChance(b, 1, even, even), 1e-12)
	})

	t.Run("sample cap is tunable", func(t *testing.T) {
		e := NewExpectimax(WithEvaluationFn(constant(1)), WithSampleCap(5))
		b := mustBoard(t, [][]int{
			{3, 6, 3, 6},
			{6, 3, 6, 3},
			{3, 6, 3, 0},
			{0, 0, 0, 0},
		})

		require.InDelta(t, 0.2, e.searchChance(b, 1, even, even), 1e-12)
		require.Equal(t, 5, e.SampleCap())
	})

	t.Run("full board evaluates directly", func(t *testing.T) {
		e := NewExpectimax(WithEvaluationFn(constant(7)))

		require.Equal(t, 7.0, e.searchChance(mustBoard(t, stuck), 2, even, even))
	})

	t.Run("depth zero evaluates directly", func(t *testing.T) {
		e := NewExpectimax(WithEvaluationFn(constant(4)))
		b := mustBoard(t, [][]int{{3, 0, 0, 0}, emptyRow, emptyRow, emptyRow})

		require.Equal(t, 4.0, e.searchChance(b, 0, even, even))
	})
}

func TestSearchMax(t *testing.T) {
	t.Run("terminal board returns its evaluation", func(t *testing.T) {
		b := mustBoard(t, stuck)
		e := NewExpectimax()

		require.Equal(t, game.EvaluateBoard(b), e.searchMax(b, 2, even))
	})

	t.Run("takes the best child", func(t *testing.T) {
		// Rewards boards whose top-left cell holds a 3.
		evaluate := func(b *game.Board) float64 {
			if b.Cells()[0][0] == 3 {
				return 10
			}
			return 0
		}
		e := NewExpectimax(WithEvaluationFn(evaluate))
		b := mustBoard(t, [][]int{{0, 3, 0, 0}, emptyRow, emptyRow, emptyRow})

		got := e.searchMax(b, 1, even)

		require.Equal(t, 10.0, got, "Moving left should put the 3 in the corner")
	})
}

func TestTable(t *testing.T) {
	tt := newTable()
	a := mustBoard(t, [][]int{{3, 0, 0, 0}, emptyRow, emptyRow, emptyRow}).Cells()
	b := mustBoard(t, [][]int{{6, 0, 0, 0}, emptyRow, emptyRow, emptyRow}).Cells()
	key := ttKey{kind: maxNode, hash: a.Hash(), depth: 2}

	tt.store(key, &a, 1.5)

	got, ok := tt.lookup(key, &a)
	require.True(t, ok)
	require.Equal(t, 1.5, got)

	_, ok = tt.lookup(key, &b)
	require.False(t, ok, "Different cells under the same key should miss")

	_, ok = tt.lookup(ttKey{kind: chanceNode, hash: a.Hash(), depth: 2}, &a)
	require.False(t, ok, "Node kinds should not share entries")

	tt.reset()
	require.Zero(t, tt.len())
}
