// Package cacheprobe discovers the geometry of the L1 data cache.
package cacheprobe

import (
	"fmt"
)

// KB is the number of bytes in a kilobyte.
const KB = 1024

// Geometry describes an L1 data cache.
type Geometry struct {
	SizeBytes     int
	Associativity int
	LineSizeBytes int
}

// Fallback is the geometry used when the cache cannot be detected. It
// matches a 32 KB, 8-way L1d with 64-byte lines.
var Fallback = Geometry{
	SizeBytes:     32 * KB,
	Associativity: 8,
	LineSizeBytes: 64,
}

// Validate checks that all fields are positive, that the line size is a
// power of two, and that the cache holds an integer number of sets.
func (g Geometry) Validate() error {
	if g.SizeBytes <= 0 || g.Associativity <= 0 || g.LineSizeBytes <= 0 {
		return fmt.Errorf("invalid cache geometry %s: fields must be positive", g)
	}

	if g.LineSizeBytes&(g.LineSizeBytes-1) != 0 {
		return fmt.Errorf(
			"invalid cache geometry %s: line size must be a power of two", g)
	}

	setSize := g.LineSizeBytes * g.Associativity
	if g.SizeBytes%setSize != 0 {
		return fmt.Errorf(
			"invalid cache geometry %s: cache must have a integer number of sets",
			g)
	}

	return nil
}

// NumLines returns the number of cache lines.
func (g Geometry) NumLines() int {
	return g.SizeBytes / g.LineSizeBytes
}

// NumSets returns the number of sets.
func (g Geometry) NumSets() int {
	return g.NumLines() / g.Associativity
}

// KB returns the cache size in kilobytes.
func (g Geometry) KB() int {
	return g.SizeBytes / KB
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dB/%d-way/%dB-line",
		g.SizeBytes, g.Associativity, g.LineSizeBytes)
}
