package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Hash returns a hash of the cell values in row-major order. Equal Cells always
// hash equally; tile ids never contribute.
func (c Cells) Hash() StateHash {
	var buf [GridSize * GridSize * 4]byte
	i := 0
	for _, row := range c {
		for _, v := range row {
			binary.LittleEndian.PutUint32(buf[i:], uint32(v))
			i += 4
		}
	}
	return StateHash(xxhash.Sum64(buf[:]))
}

func (b *Board) Hash() StateHash {
	return b.Cells().Hash()
}
