package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, align, expect int
	}{
		{0, 8, 0}, {1, 8, 8}, {7, 8, 8}, {8, 8, 8}, {9, 8, 16},
		{3, 1, 3}, {3, 2, 4}, {5, 4, 8}, {16, 16, 16}, {17, 16, 32},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expect, AlignUp(tc.n, tc.align), "AlignUp(%d, %d)", tc.n, tc.align)
	}
}

func TestPadFor(t *testing.T) {
	assert.Equal(t, 0, PadFor(8, 8))
	assert.Equal(t, 7, PadFor(1, 8))
	assert.Equal(t, 3, PadFor(5, 8))
	assert.Equal(t, 0, PadFor(0, 4))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 8, Max(4, 8))
	assert.Equal(t, 8, Max(8, 4))
	assert.Equal(t, -1, Max(-1, -2))
}
