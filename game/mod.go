package game

import (
	"errors"
	"fmt"
	"strings"
	"threes/meta"

	"github.com/samber/lo"
)

const GridSize = meta.GRID_SIZE

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrCellOccupied     = errors.New("cell occupied")
	ErrInvalidValue     = errors.New("invalid tile value")
)

// Direction is a swipe direction. The declaration order is the order in which
// the search tries moves, so it also decides ties.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in search order.
var Directions = []Direction{Up, Down, Left, Right}

var directionNames = []string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// delta returns the single step a tile takes when moving in d.
func (d Direction) delta() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// ParseDirection maps a command ("up", "down", "left", "right") to a Direction.
func ParseDirection(s string) (Direction, error) {
	i := lo.IndexOf(directionNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return Direction(i), nil
}

type TileID int

// NoTile marks an empty grid cell.
const NoTile TileID = 0

type Tile struct {
	ID    TileID
	Value int
	Row   int
	Col   int
}

type Position struct {
	Row int
	Col int
}

type StateHash uint64

// Evaluates a board to a heuristic score, higher is better. Must be deterministic.
type Evaluate func(*Board) float64
