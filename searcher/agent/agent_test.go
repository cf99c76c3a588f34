package agent

import (
	"testing"
	"threes/game"
	"threes/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var forecast = game.Forecast{
	Next:  []game.Outcome{{Value: 3, Probability: 1}},
	Later: []game.Outcome{{Value: 1, Probability: 0.5}, {Value: 2, Probability: 0.5}},
}

func TestRandomAgent(t *testing.T) {
	a := NewRandomAgent(rand.New(rand.NewSource(3)))
	b, err := game.BoardFromValues([][]int{{3, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.NoError(t, err)

	seen := map[game.Direction]bool{}
	for i := 0; i < 100; i++ {
		dir, ok, _ := a.FindMove(b, forecast)
		require.True(t, ok)
		require.Contains(t, []game.Direction{game.Down, game.Right}, dir, "Only valid moves should be picked")
		seen[dir] = true
	}
	require.Len(t, seen, 2, "Both valid moves should come up")
	require.Equal(t, "random", a.Name())

	locked, err := game.BoardFromValues([][]int{{3, 6, 3, 6}, {6, 3, 6, 3}, {3, 6, 3, 6}, {6, 3, 6, 3}})
	require.NoError(t, err)
	_, ok, _ := a.FindMove(locked, forecast)
	require.False(t, ok)
}

func TestExpectimaxAgent(t *testing.T) {
	search := searcher.NewExpectimax(searcher.WithDepth(3))
	a := NewExpectimaxAgent(search)
	b, err := game.BoardFromValues([][]int{{1, 2, 0, 0}, {0, 3, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.NoError(t, err)

	got, ok, _ := a.FindMove(b, forecast)
	want, wantOK, _ := search.BestMove(b, forecast)

	require.Equal(t, wantOK, ok)
	require.Equal(t, want, got, "Agent should play the search's best move")
	require.Equal(t, "expectimax", a.Name())
}
