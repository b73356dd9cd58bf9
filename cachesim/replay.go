package cachesim

import (
	"github.com/sarchlab/transposebench/transpose"
)

// PageSize is the alignment of the destination matrix in a Layout.
const PageSize = 4096

// A Layout places a source and a destination matrix in one address space.
type Layout struct {
	N           int
	ElementSize int
	SrcBase     uint64
	DstBase     uint64
}

// NewLayout places the source at address 0 and the destination at the first
// page boundary after it, the way two large allocations usually land.
func NewLayout(n, elementSize int) Layout {
	srcBytes := uint64(n) * uint64(n) * uint64(elementSize)

	return Layout{
		N:           n,
		ElementSize: elementSize,
		SrcBase:     0,
		DstBase:     (srcBytes + PageSize - 1) / PageSize * PageSize,
	}
}

// Src returns the address of source element (i, j).
func (l Layout) Src(i, j int) uint64 {
	return l.SrcBase + uint64(i*l.N+j)*uint64(l.ElementSize)
}

// Dst returns the address of destination element (i, j).
func (l Layout) Dst(i, j int) uint64 {
	return l.DstBase + uint64(i*l.N+j)*uint64(l.ElementSize)
}

// Replay resets c and runs the access stream of a transpose with the given
// tile side through it: every source element is read and the mirrored
// destination element is written. A side of N or more replays the naive
// transpose.
func Replay(c *Cache, l Layout, side int) Stats {
	c.Reset()

	transpose.Visit(l.N, side, func(i, j int) {
		c.Read(l.Src(i, j))
		c.Write(l.Dst(j, i))
	})

	return c.Stats()
}

// HotSet is the set that missed most during a replay. SetID is -1 when
// nothing missed.
type HotSet struct {
	SetID  int
	Misses uint64
}

// Comparison holds the simulated stats of both transpose variants.
type Comparison struct {
	BlockSide int
	Naive     Stats
	Blocked   Stats

	NaiveHotSet   HotSet
	BlockedHotSet HotSet
}

// MissReduction returns naive misses divided by blocked misses, or 0 when
// the blocked variant did not miss.
func (c Comparison) MissReduction() float64 {
	if c.Blocked.Misses == 0 {
		return 0
	}

	return float64(c.Naive.Misses) / float64(c.Blocked.Misses)
}

// Compare replays the naive and the blocked transpose of an n×n matrix
// through a cache built by b. A ConflictTracer attached to the cache finds
// the hottest set of each replay.
func Compare(b Builder, n, elementSize, side int) Comparison {
	c := b.Build("L1")
	l := NewLayout(n, elementSize)

	tracer := NewConflictTracer()
	c.AcceptHook(tracer)

	cmp := Comparison{BlockSide: side}

	cmp.Naive = Replay(c, l, n)
	cmp.NaiveHotSet = hotSet(tracer)
	tracer.Reset()

	cmp.Blocked = Replay(c, l, side)
	cmp.BlockedHotSet = hotSet(tracer)

	return cmp
}

func hotSet(t *ConflictTracer) HotSet {
	setID, misses := t.HottestSet()
	return HotSet{SetID: setID, Misses: misses}
}
