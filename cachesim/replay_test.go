package cachesim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/transposebench/cacheprobe"
	"github.com/sarchlab/transposebench/tiling"
	"github.com/sarchlab/transposebench/transpose"
)

var _ = Describe("Replay", func() {
	It("should place the destination on a page boundary", func() {
		l := NewLayout(10, 4)

		Expect(l.DstBase).To(Equal(uint64(PageSize)))
		Expect(l.Src(1, 2)).To(Equal(uint64(48)))
		Expect(l.Dst(1, 2)).To(Equal(uint64(PageSize + 48)))
	})

	It("should read and write every element once", func() {
		c := MakeBuilder().Build("L1")

		s := Replay(c, NewLayout(17, transpose.ElementSize), 16)

		Expect(s.Reads).To(Equal(uint64(17 * 17)))
		Expect(s.Writes).To(Equal(uint64(17 * 17)))
		Expect(s.Hits + s.Misses).To(Equal(s.Accesses()))
	})

	It("should not miss beyond compulsory misses when both fit", func() {
		c := MakeBuilder().Build("L1")
		n := 32

		s := Replay(c, NewLayout(n, transpose.ElementSize), n)

		lines := uint64(2 * n * n * transpose.ElementSize / 64)
		Expect(s.Misses).To(Equal(lines))
		Expect(s.Evictions).To(BeZero())
	})

	It("should miss less with the computed block side", func() {
		n := 1000
		g := cacheprobe.Fallback
		side := tiling.BlockSide(g, transpose.ElementSize, n)

		cmp := Compare(
			MakeBuilder().WithGeometry(g), n, transpose.ElementSize, side)

		Expect(cmp.BlockSide).To(Equal(64))
		Expect(cmp.Naive.MissRate()).To(BeNumerically(">", 0.45))
		Expect(cmp.Blocked.Misses * 4).To(BeNumerically("<", cmp.Naive.Misses))
		Expect(cmp.MissReduction()).To(BeNumerically(">", 4))
	})

	It("should find a hotter set in the naive replay", func() {
		n := 1000
		g := cacheprobe.Fallback

		cmp := Compare(MakeBuilder().WithGeometry(g), n, transpose.ElementSize,
			tiling.BlockSide(g, transpose.ElementSize, n))

		Expect(cmp.NaiveHotSet.SetID).To(BeNumerically(">=", 0))
		Expect(cmp.NaiveHotSet.SetID).To(BeNumerically("<", g.NumSets()))
		Expect(cmp.BlockedHotSet.SetID).To(BeNumerically(">=", 0))
		Expect(cmp.NaiveHotSet.Misses).
			To(BeNumerically(">", cmp.BlockedHotSet.Misses))
		Expect(cmp.NaiveHotSet.Misses * uint64(g.NumSets())).
			To(BeNumerically(">=", cmp.Naive.Misses))
	})

	It("should report no hot set when nothing missed", func() {
		Expect(hotSet(NewConflictTracer())).To(Equal(HotSet{SetID: -1}))
	})

	It("should report no reduction without blocked misses", func() {
		Expect(Comparison{}.MissReduction()).To(BeZero())
	})
})
