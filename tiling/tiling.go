// Package tiling derives the side of a square transpose tile from the
// geometry of the L1 data cache.
package tiling

import (
	"fmt"

	"github.com/sarchlab/transposebench/cacheprobe"
)

// ElementsPerLine returns how many elements share one cache line. It is at
// least 1, even when an element is wider than a line.
func ElementsPerLine(g cacheprobe.Geometry, elementSize int) int {
	n := g.LineSizeBytes / elementSize
	if n < 1 {
		return 1
	}

	return n
}

// LinesPerBlock returns the number of cache lines a side×side tile spans.
func LinesPerBlock(g cacheprobe.Geometry, elementSize, side int) int {
	return side * side * elementSize / g.LineSizeBytes
}

// ConflictLimit is the largest number of lines a tile may span. It allows
// half of the ways of every set, leaving the other half to the
// destination tile.
func ConflictLimit(g cacheprobe.Geometry) int {
	return g.NumSets() * (g.Associativity / 2)
}

// BlockSide returns the side of the square tile used to transpose an n×n
// matrix of elementSize-byte elements. The tile takes at most half of the
// L1. Its side is a multiple of the elements per line. It is shrunk until
// it spans no more lines than ConflictLimit. The result is never less than
// one line of elements and never more than n.
//
// BlockSide panics if g is invalid or elementSize is not positive.
func BlockSide(g cacheprobe.Geometry, elementSize, n int) int {
	mustBeValid(g, elementSize)

	if n < 1 {
		n = 1
	}

	budget := g.SizeBytes / 2
	maxElements := budget / elementSize
	side := isqrt(maxElements)

	perLine := ElementsPerLine(g, elementSize)
	side -= side % perLine

	limit := ConflictLimit(g)
	for LinesPerBlock(g, elementSize, side) > limit && side > perLine {
		side -= perLine
	}

	side = max(side, perLine)
	side = min(side, n)

	return side
}

func mustBeValid(g cacheprobe.Geometry, elementSize int) {
	if err := g.Validate(); err != nil {
		panic(err)
	}

	if elementSize < 1 {
		panic(fmt.Sprintf("element size must be positive, got %d", elementSize))
	}
}

// isqrt returns floor(sqrt(x)) for x >= 0.
func isqrt(x int) int {
	if x < 2 {
		return max(x, 0)
	}

	r := x
	for {
		next := (r + x/r) / 2
		if next >= r {
			return r
		}

		r = next
	}
}
