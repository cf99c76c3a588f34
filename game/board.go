package game

import (
	"fmt"
	"slices"
	"strings"
)

// Cells is the canonical value view of a board: tile values by position, 0 for
// empty cells. It is comparable and ignores tile identity.
type Cells [GridSize][GridSize]int

// Board is the grid of tile ids plus the tiles it references. The grid and the
// tiles' coordinates are only ever changed together, through place, relocate
// and absorb.
type Board struct {
	grid   [GridSize][GridSize]TileID
	tiles  []Tile // Ascending ID
	nextID TileID
}

// Slide summarizes a move applied to a board.
type Slide struct {
	Moved  bool
	Merges int // Tiles absorbed, each removes one tile
	Points int // Sum of merged values
}

// traversals holds, per direction, the cells that may move in processing
// order: nearest to the target edge first, the edge row or column skipped.
var traversals = func() [4][]Position {
	var t [4][]Position
	for i := 0; i < GridSize; i++ {
		for j := 1; j < GridSize; j++ {
			t[Left] = append(t[Left], Position{Row: i, Col: j})
			t[Up] = append(t[Up], Position{Row: j, Col: i})
		}
		for j := GridSize - 2; j >= 0; j-- {
			t[Right] = append(t[Right], Position{Row: i, Col: j})
			t[Down] = append(t[Down], Position{Row: j, Col: i})
		}
	}
	return t
}()

func NewBoard() *Board {
	return &Board{nextID: 1}
}

// BoardFromValues builds a board from rows of values, 0 meaning empty. Tile ids
// are assigned in row-major order.
func BoardFromValues(rows [][]int) (*Board, error) {
	if len(rows) != GridSize {
		return nil, fmt.Errorf("expected %d rows, got %d", GridSize, len(rows))
	}
	b := NewBoard()
	for r, row := range rows {
		if len(row) != GridSize {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", r, GridSize, len(row))
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if _, err := b.Place(v, r, c); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func (b *Board) Copy() *Board {
	return &Board{
		grid:   b.grid,
		tiles:  slices.Clone(b.tiles),
		nextID: b.nextID,
	}
}

// Place creates a tile of value at (row, col).
func (b *Board) Place(value, row, col int) (TileID, error) {
	if !inBounds(row, col) {
		return NoTile, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	if b.grid[row][col] != NoTile {
		return NoTile, fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, row, col)
	}
	if !IsValidValue(value) {
		return NoTile, fmt.Errorf("%w: %d", ErrInvalidValue, value)
	}
	return b.place(value, row, col), nil
}

func (b *Board) place(value, row, col int) TileID {
	id := b.nextID
	b.nextID++
	b.tiles = append(b.tiles, Tile{ID: id, Value: value, Row: row, Col: col})
	b.grid[row][col] = id
	return id
}

func (b *Board) relocate(i, row, col int) {
	t := &b.tiles[i]
	b.grid[t.Row][t.Col] = NoTile
	t.Row, t.Col = row, col
	b.grid[row][col] = t.ID
}

// absorb merges tile i into tile target; target keeps its id and position.
func (b *Board) absorb(i, target, value int) {
	b.tiles[target].Value = value
	t := b.tiles[i]
	b.grid[t.Row][t.Col] = NoTile
	b.tiles = slices.Delete(b.tiles, i, i+1)
}

func (b *Board) index(id TileID) int {
	for i := range b.tiles {
		if b.tiles[i].ID == id {
			return i
		}
	}
	return -1
}

// Tiles returns a copy of the tiles in ascending id order.
func (b *Board) Tiles() []Tile {
	return slices.Clone(b.tiles)
}

func (b *Board) NumTiles() int {
	return len(b.tiles)
}

// TileAt returns the tile at (row, col), if any.
func (b *Board) TileAt(row, col int) (Tile, bool) {
	if !inBounds(row, col) || b.grid[row][col] == NoTile {
		return Tile{}, false
	}
	return b.tiles[b.index(b.grid[row][col])], true
}

func (b *Board) Cells() Cells {
	var cells Cells
	for _, t := range b.tiles {
		cells[t.Row][t.Col] = t.Value
	}
	return cells
}

// EmptyCells returns the empty positions in grid-scan order.
func (b *Board) EmptyCells() []Position {
	empty := make([]Position, 0, GridSize*GridSize-len(b.tiles))
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if b.grid[r][c] == NoTile {
				empty = append(empty, Position{Row: r, Col: c})
			}
		}
	}
	return empty
}

func (b *Board) NumEmpty() int {
	return GridSize*GridSize - len(b.tiles)
}

// MaxTile returns the first tile, in id order, holding the greatest value.
func (b *Board) MaxTile() (Tile, bool) {
	var best Tile
	for _, t := range b.tiles {
		if t.Value > best.Value {
			best = t
		}
	}
	return best, best.ID != NoTile
}

func (b *Board) MaxValue() int {
	t, _ := b.MaxTile()
	return t.Value
}

// Move slides the board in place.
func (b *Board) Move(dir Direction) Slide {
	return b.slide(dir)
}

// Simulate slides a copy of the board, leaving the receiver untouched. ok is
// false when nothing would move or merge.
func (b *Board) Simulate(dir Direction) (next *Board, result Slide, ok bool) {
	next = b.Copy()
	result = next.slide(dir)
	if !result.Moved {
		return nil, result, false
	}
	return next, result, true
}

// slide moves every tile at most one step toward the edge of dir. A tile
// either enters an empty cell, merges into its neighbor, or stays.
func (b *Board) slide(dir Direction) Slide {
	var result Slide
	if !dir.Valid() {
		return result
	}
	dRow, dCol := dir.delta()
	for _, p := range traversals[dir] {
		id := b.grid[p.Row][p.Col]
		if id == NoTile {
			continue
		}
		row, col := p.Row+dRow, p.Col+dCol
		targetID := b.grid[row][col]
		i := b.index(id)
		if targetID == NoTile {
			b.relocate(i, row, col)
			result.Moved = true
			continue
		}
		target := b.index(targetID)
		value, targetValue := b.tiles[i].Value, b.tiles[target].Value
		if CanMerge(value, targetValue) {
			merged := MergedValue(value, targetValue)
			b.absorb(i, target, merged)
			result.Moved = true
			result.Merges++
			result.Points += merged
		}
	}
	return result
}

// CanMove reports whether sliding in dir would change the board.
func (b *Board) CanMove(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	cells := b.Cells()
	dRow, dCol := dir.delta()
	for _, p := range traversals[dir] {
		value := cells[p.Row][p.Col]
		if value == 0 {
			continue
		}
		target := cells[p.Row+dRow][p.Col+dCol]
		if target == 0 || CanMerge(value, target) {
			return true
		}
	}
	return false
}

// ValidMoves returns the directions that change the board, in search order.
func (b *Board) ValidMoves() []Direction {
	var moves []Direction
	for _, dir := range Directions {
		if b.CanMove(dir) {
			moves = append(moves, dir)
		}
	}
	return moves
}

// IsGameOver reports whether the grid is full and no adjacent pair can merge.
func (b *Board) IsGameOver() bool {
	if b.NumEmpty() > 0 {
		return false
	}
	cells := b.Cells()
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if c < GridSize-1 && CanMerge(cells[r][c], cells[r][c+1]) {
				return false
			}
			if r < GridSize-1 && CanMerge(cells[r][c], cells[r+1][c]) {
				return false
			}
		}
	}
	return true
}

// Validate checks that grid and tiles agree and every value is legal.
func (b *Board) Validate() error {
	seen := 0
	for i, t := range b.tiles {
		if i > 0 && b.tiles[i-1].ID >= t.ID {
			return fmt.Errorf("tile %d: ids out of order", t.ID)
		}
		if t.ID == NoTile || t.ID >= b.nextID {
			return fmt.Errorf("tile %d: id out of range", t.ID)
		}
		if !IsValidValue(t.Value) {
			return fmt.Errorf("tile %d: %w: %d", t.ID, ErrInvalidValue, t.Value)
		}
		if !inBounds(t.Row, t.Col) || b.grid[t.Row][t.Col] != t.ID {
			return fmt.Errorf("tile %d: grid does not hold it at (%d,%d)", t.ID, t.Row, t.Col)
		}
	}
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if b.grid[r][c] != NoTile {
				seen++
			}
		}
	}
	if seen != len(b.tiles) {
		return fmt.Errorf("grid holds %d tiles, board has %d", seen, len(b.tiles))
	}
	return nil
}

func (b *Board) String() string {
	var sb strings.Builder
	cells := b.Cells()
	for r, row := range cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if v == 0 {
				sb.WriteString("    .")
			} else {
				fmt.Fprintf(&sb, "%5d", v)
			}
		}
	}
	return sb.String()
}

func inBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}
