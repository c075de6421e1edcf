package utils

// AlignUp rounds n up to the next multiple of align. align must be a
// power of two.
func AlignUp(n, align int) int {
	mask := align - 1
	return (n + mask) &^ mask
}

// PadFor returns the padding needed to advance offset to align. align
// must be a power of two.
func PadFor(offset, align int) int {
	return AlignUp(offset, align) - offset
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
