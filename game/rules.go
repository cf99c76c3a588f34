package game

// CanMerge reports whether two tiles combine: 1 and 2 in either order, or two
// equal values of at least 3.
func CanMerge(a, b int) bool {
	if (a == 1 && b == 2) || (a == 2 && b == 1) {
		return true
	}
	return a == b && a >= 3
}

// MergedValue returns the value of the tile produced by merging a and b. When
// the pair cannot merge, a is returned unchanged.
func MergedValue(a, b int) int {
	if (a == 1 && b == 2) || (a == 2 && b == 1) {
		return 3
	}
	if a == b && a >= 3 {
		return a * 2
	}
	return a
}

// IsValidValue reports whether v can appear on a tile: 1, 2, or 3*2^k.
func IsValidValue(v int) bool {
	if v == 1 || v == 2 {
		return true
	}
	if v < 3 || v%3 != 0 {
		return false
	}
	q := v / 3
	return q&(q-1) == 0
}
