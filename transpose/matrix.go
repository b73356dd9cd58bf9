// Package transpose implements the naive and the cache-blocked transpose of
// square integer matrices.
package transpose

import (
	"fmt"
	"unsafe"
)

// Element is the type stored in a Matrix.
type Element = int32

// ElementSize is the size of an Element in bytes.
const ElementSize = int(unsafe.Sizeof(Element(0)))

// A Matrix is an N×N matrix stored row-major in a single slice.
type Matrix struct {
	n    int
	data []Element
}

// NewMatrix creates a zeroed n×n matrix. It panics if n is not positive.
func NewMatrix(n int) *Matrix {
	if n < 1 {
		panic(fmt.Sprintf("matrix dimension must be positive, got %d", n))
	}

	return &Matrix{
		n:    n,
		data: make([]Element, n*n),
	}
}

// NewSequential creates an n×n matrix with element (i, j) set to i*n + j.
// The value wraps around for matrices with more than 2^31 elements.
func NewSequential(n int) *Matrix {
	m := NewMatrix(n)
	for k := range m.data {
		m.data[k] = Element(k)
	}

	return m
}

// N returns the dimension of the matrix.
func (m *Matrix) N() int {
	return m.n
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) Element {
	return m.data[i*m.n+j]
}

// Set sets element (i, j).
func (m *Matrix) Set(i, j int, v Element) {
	m.data[i*m.n+j] = v
}

// Reset zeroes all elements.
func (m *Matrix) Reset() {
	clear(m.data)
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		n:    m.n,
		data: make([]Element, len(m.data)),
	}
	copy(c.data, m.data)

	return c
}

// Equal reports whether both matrices have the same dimension and elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.n != o.n {
		return false
	}

	for k, v := range m.data {
		if o.data[k] != v {
			return false
		}
	}

	return true
}

func (m *Matrix) sharesStorage(o *Matrix) bool {
	return m == o || unsafe.SliceData(m.data) == unsafe.SliceData(o.data)
}
