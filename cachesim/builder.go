package cachesim

import (
	"github.com/sarchlab/transposebench/cacheprobe"
)

// Builder can build caches.
type Builder struct {
	cacheByteSize    int
	wayAssociativity int
	lineSize         int
}

// MakeBuilder creates a new builder with the fallback L1 geometry.
func MakeBuilder() Builder {
	return Builder{
		cacheByteSize:    cacheprobe.Fallback.SizeBytes,
		wayAssociativity: cacheprobe.Fallback.Associativity,
		lineSize:         cacheprobe.Fallback.LineSizeBytes,
	}
}

// WithGeometry copies all parameters from a probed geometry.
func (b Builder) WithGeometry(g cacheprobe.Geometry) Builder {
	b.cacheByteSize = g.SizeBytes
	b.wayAssociativity = g.Associativity
	b.lineSize = g.LineSizeBytes

	return b
}

// WithByteSize sets the capacity of the cache.
func (b Builder) WithByteSize(byteSize int) Builder {
	b.cacheByteSize = byteSize
	return b
}

// WithWayAssociativity sets the way associativity of the builder.
func (b Builder) WithWayAssociativity(wayAssociativity int) Builder {
	b.wayAssociativity = wayAssociativity
	return b
}

// WithLineSize sets the cache line size in bytes.
func (b Builder) WithLineSize(lineSize int) Builder {
	b.lineSize = lineSize
	return b
}

// Geometry returns the geometry the builder will build.
func (b Builder) Geometry() cacheprobe.Geometry {
	return cacheprobe.Geometry{
		SizeBytes:     b.cacheByteSize,
		Associativity: b.wayAssociativity,
		LineSizeBytes: b.lineSize,
	}
}

// Build builds a cache. It panics if the parameters do not describe a whole
// number of sets.
func (b Builder) Build(name string) *Cache {
	g := b.Geometry()
	if err := g.Validate(); err != nil {
		panic(err)
	}

	return &Cache{
		HookableBase: NewHookableBase(),
		name:         name,
		tags:         NewTagArray(g.NumSets(), g.Associativity, g.LineSizeBytes),
	}
}
