package transpose

import "fmt"

// Naive writes the transpose of a into b, element by element. It reads a
// row by row and therefore writes b column by column.
//
// Naive panics if the dimensions differ or if a and b share storage.
func Naive(a, b *Matrix) {
	mustBeCompatible(a, b)

	n := a.n
	src, dst := a.data, b.data

	for i := 0; i < n; i++ {
		row := src[i*n : i*n+n]
		for j, v := range row {
			dst[j*n+i] = v
		}
	}
}

// Blocked writes the transpose of a into b, one side×side tile at a time.
// Tiles on the right and bottom edges are clipped at N. Within a tile the
// elements are visited in the same order as Naive. A side below 1 is
// treated as 1 and a side above N as N.
//
// Blocked panics if the dimensions differ or if a and b share storage.
func Blocked(a, b *Matrix, side int) {
	mustBeCompatible(a, b)

	n := a.n
	src, dst := a.data, b.data

	ForEachTile(n, side, func(r0, r1, c0, c1 int) {
		for i := r0; i < r1; i++ {
			row := src[i*n+c0 : i*n+c1]
			for k, v := range row {
				dst[(c0+k)*n+i] = v
			}
		}
	})
}

// ClampSide limits a tile side to [1, n].
func ClampSide(n, side int) int {
	return max(1, min(side, n))
}

// ForEachTile calls fn with the half-open row range [r0, r1) and column
// range [c0, c1) of every tile, row of tiles by row of tiles.
func ForEachTile(n, side int, fn func(r0, r1, c0, c1 int)) {
	side = ClampSide(n, side)

	for r0 := 0; r0 < n; r0 += side {
		r1 := min(r0+side, n)
		for c0 := 0; c0 < n; c0 += side {
			fn(r0, r1, c0, min(c0+side, n))
		}
	}
}

// Visit calls fn with every index pair (i, j) of the source matrix in the
// order Blocked reads them. Visit(n, n, fn) yields the order of Naive.
func Visit(n, side int, fn func(i, j int)) {
	ForEachTile(n, side, func(r0, r1, c0, c1 int) {
		for i := r0; i < r1; i++ {
			for j := c0; j < c1; j++ {
				fn(i, j)
			}
		}
	})
}

func mustBeCompatible(a, b *Matrix) {
	if a.n != b.n {
		panic(fmt.Sprintf("dimension mismatch: %d and %d", a.n, b.n))
	}

	if a.sharesStorage(b) {
		panic("source and destination must not share storage")
	}
}
