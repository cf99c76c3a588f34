package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreFeatures(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		f := ScoreFeatures(NewBoard())

		require.Equal(t, Features{Openness: 256}, f)
		require.Equal(t, 256000.0, f.Score(DefaultWeights))
	})

	t.Run("single tile in the corner", func(t *testing.T) {
		b := mustBoard(t, [][]int{row(3, 0, 0, 0), emptyRow, emptyRow, emptyRow})

		f := ScoreFeatures(b)

		require.Equal(t, 225.0, f.Openness)
		require.Equal(t, 1.0, f.Monotonicity, "Only the first step leaves an occupied cell")
		require.Zero(t, f.Smoothness)
		require.Zero(t, f.Adjacency)
		require.Equal(t, 3000.0, f.Corner)
		require.Equal(t, 3.0*4096, f.Gradient)
	})

	t.Run("max tile on an edge and away from edges", func(t *testing.T) {
		edge := mustBoard(t, [][]int{row(0, 0, 6, 0), emptyRow, emptyRow, emptyRow})
		inner := mustBoard(t, [][]int{emptyRow, row(0, 6, 0, 0), emptyRow, emptyRow})

		require.Equal(t, 1800.0, ScoreFeatures(edge).Corner)
		require.Equal(t, -3000.0, ScoreFeatures(inner).Corner)
	})

	t.Run("adjacent 1 and 2 reward both sides", func(t *testing.T) {
		b := mustBoard(t, [][]int{row(1, 2, 0, 0), emptyRow, emptyRow, emptyRow})

		require.Equal(t, 20.0, ScoreFeatures(b).Adjacency)
	})

	t.Run("matching smalls and big neighbors are penalized", func(t *testing.T) {
		pair := mustBoard(t, [][]int{row(1, 1, 0, 0), emptyRow, emptyRow, emptyRow})
		big := mustBoard(t, [][]int{row(2, 3, 0, 0), emptyRow, emptyRow, emptyRow})

		require.Equal(t, -10.0, ScoreFeatures(pair).Adjacency)
		require.Equal(t, -3.0, ScoreFeatures(big).Adjacency, "Only the small tile is scored")
	})

	t.Run("smoothness uses log2 gaps", func(t *testing.T) {
		b := mustBoard(t, [][]int{row(3, 12, 0, 0), row(6, 0, 0, 0), emptyRow, emptyRow})

		require.InDelta(t, -3.0, ScoreFeatures(b).Smoothness, 1e-9)
	})

	t.Run("snake path", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			row(48, 24, 12, 6),
			row(0, 0, 0, 3),
			emptyRow,
			emptyRow,
		})

		require.Equal(t, 5.0, ScoreFeatures(b).Monotonicity)
	})
}

func TestEvaluateBoard(t *testing.T) {
	b := mustBoard(t, [][]int{row(48, 24, 0, 0), row(3, 1, 2, 0), emptyRow, emptyRow})

	got := EvaluateBoard(b)

	require.Equal(t, got, EvaluateBoard(b.Copy()), "Evaluation should be deterministic")
	require.False(t, math.IsNaN(got))
	require.Equal(t, got, NewEvaluator(DefaultWeights)(b))

	corner := mustBoard(t, [][]int{row(96, 0, 0, 0), emptyRow, emptyRow, emptyRow})
	center := mustBoard(t, [][]int{emptyRow, emptyRow, row(0, 0, 96, 0), emptyRow})
	require.Greater(t, EvaluateBoard(corner), EvaluateBoard(center), "Corner max tile should score higher")
}
