package game

import "math"

// Weights scales each heuristic feature. The positional gradient is added
// unweighted.
type Weights struct {
	Openness     float64
	Monotonicity float64
	Smoothness   float64
	Adjacency    float64
	Corner       float64
}

var DefaultWeights = Weights{
	Openness:     1000,
	Monotonicity: 800,
	Smoothness:   1500,
	Adjacency:    600,
	Corner:       3000,
}

// gradient rewards value kept near the top-left corner.
var gradient = [GridSize][GridSize]float64{
	{4096, 1024, 256, 64},
	{16, 32, 64, 128},
	{8, 4, 2, 1},
	{0, 0, 0, 0},
}

// Features holds the raw, unweighted heuristic terms of a board.
type Features struct {
	Openness     float64 // Empty cells squared
	Monotonicity float64 // Non-increasing steps along the snake path
	Smoothness   float64 // Negated log2 gaps between right/down neighbors
	Adjacency    float64 // 1/2 pairing bonuses and penalties
	Corner       float64 // Placement of the max tile relative to (0,0)
	Gradient     float64 // Values weighted by the gradient map
}

// Score combines the features with w.
func (f Features) Score(w Weights) float64 {
	return w.Openness*f.Openness +
		w.Monotonicity*f.Monotonicity +
		w.Smoothness*f.Smoothness +
		w.Adjacency*f.Adjacency +
		w.Corner*f.Corner +
		f.Gradient
}

// EvaluateBoard scores a board with DefaultWeights.
func EvaluateBoard(b *Board) float64 {
	return ScoreFeatures(b).Score(DefaultWeights)
}

// NewEvaluator returns an Evaluate using custom weights.
func NewEvaluator(w Weights) Evaluate {
	return func(b *Board) float64 {
		return ScoreFeatures(b).Score(w)
	}
}

func ScoreFeatures(b *Board) Features {
	cells := b.Cells()
	empty := float64(b.NumEmpty())
	return Features{
		Openness:     empty * empty,
		Monotonicity: monotonicity(&cells),
		Smoothness:   smoothness(&cells),
		Adjacency:    adjacency(&cells),
		Corner:       cornerIntegrity(b),
		Gradient:     weightedPosition(&cells),
	}
}

// monotonicity walks the rows in a snake (even rows left to right, odd rows
// right to left) and counts steps where an occupied cell is followed by a value
// no greater than its own.
func monotonicity(cells *Cells) float64 {
	var path [GridSize * GridSize]int
	i := 0
	for r := 0; r < GridSize; r++ {
		for k := 0; k < GridSize; k++ {
			c := k
			if r%2 == 1 {
				c = GridSize - 1 - k
			}
			path[i] = cells[r][c]
			i++
		}
	}
	score := 0.0
	for i := 0; i < len(path)-1; i++ {
		if path[i] > 0 && path[i] >= path[i+1] {
			score++
		}
	}
	return score
}

func smoothness(cells *Cells) float64 {
	score := 0.0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			v := cells[r][c]
			if v == 0 {
				continue
			}
			logValue := math.Log2(float64(v))
			if c < GridSize-1 && cells[r][c+1] != 0 {
				score -= math.Abs(logValue - math.Log2(float64(cells[r][c+1])))
			}
			if r < GridSize-1 && cells[r+1][c] != 0 {
				score -= math.Abs(logValue - math.Log2(float64(cells[r+1][c])))
			}
		}
	}
	return score
}

var neighbors = [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// adjacency scores every 1 or 2 against each occupied neighbor: +10 for a
// mergeable 1/2 pair, -5 for a 1 next to 1 or 2 next to 2, -3 next to 3 or more.
// A pair of small tiles is seen from both sides.
func adjacency(cells *Cells) float64 {
	score := 0.0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			v := cells[r][c]
			if v != 1 && v != 2 {
				continue
			}
			for _, n := range neighbors {
				row, col := r+n.Row, c+n.Col
				if !inBounds(row, col) || cells[row][col] == 0 {
					continue
				}
				switch other := cells[row][col]; {
				case other >= 3:
					score -= 3
				case other == v:
					score -= 5
				default:
					score += 10
				}
			}
		}
	}
	return score
}

func cornerIntegrity(b *Board) float64 {
	t, ok := b.MaxTile()
	if !ok {
		return 0
	}
	value := float64(t.Value)
	switch {
	case t.Row == 0 && t.Col == 0:
		return value * 1000
	case t.Row == 0 || t.Col == 0:
		return value * 300
	default:
		return -value * 500
	}
}

func weightedPosition(cells *Cells) float64 {
	score := 0.0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			score += float64(cells[r][c]) * gradient[r][c]
		}
	}
	return score
}
