package searcher

import "threes/game"

type nodeKind uint8

const (
	maxNode nodeKind = iota
	chanceNode
)

type ttKey struct {
	kind  nodeKind
	hash  game.StateHash
	depth int
}

// ttEntry keeps the full cell values so that two boards sharing a hash never
// share a score.
type ttEntry struct {
	cells game.Cells
	score float64
}

type table struct {
	entries map[ttKey]ttEntry
}

func newTable() *table {
	return &table{entries: make(map[ttKey]ttEntry)}
}

func (t *table) reset() {
	clear(t.entries)
}

func (t *table) lookup(key ttKey, cells *game.Cells) (float64, bool) {
	entry, ok := t.entries[key]
	if !ok || entry.cells != *cells {
		return 0, false
	}
	return entry.score, true
}

func (t *table) store(key ttKey, cells *game.Cells, score float64) {
	t.entries[key] = ttEntry{cells: *cells, score: score}
}

func (t *table) len() int {
	return len(t.entries)
}
