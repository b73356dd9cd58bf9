package cacheprobe

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Probe", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockSource
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockSource(mockCtrl)
		source.EXPECT().Name().Return("mock").AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report the detected geometry", func() {
		g := Geometry{SizeBytes: 48 * KB, Associativity: 12, LineSizeBytes: 64}
		source.EXPECT().L1Data().Return(g, nil)

		r := Probe(source)

		Expect(r.Geometry).To(Equal(g))
		Expect(r.Source).To(Equal("mock"))
		Expect(r.UsedFallback).To(BeFalse())
		Expect(r.Reason).NotTo(HaveOccurred())
	})

	It("should fall back when detection fails", func() {
		source.EXPECT().L1Data().Return(Geometry{}, ErrUnavailable)

		r := Probe(source)

		Expect(r.Geometry).To(Equal(Geometry{
			SizeBytes:     32768,
			Associativity: 8,
			LineSizeBytes: 64,
		}))
		Expect(r.UsedFallback).To(BeTrue())
		Expect(r.Source).To(Equal("fallback"))
		Expect(r.Reason).To(MatchError(ErrUnavailable))
	})

	It("should fall back on an invalid geometry", func() {
		source.EXPECT().L1Data().Return(
			Geometry{SizeBytes: 32 * KB, Associativity: 0, LineSizeBytes: 64},
			nil)

		r := Probe(source)

		Expect(r.UsedFallback).To(BeTrue())
		Expect(r.Geometry).To(Equal(Fallback))
	})

	It("should fall back without a source", func() {
		r := Probe(nil)

		Expect(r.UsedFallback).To(BeTrue())
		Expect(r.Reason).To(MatchError(ErrUnavailable))
	})

	It("should fall back on unsupported platforms", func() {
		r := Probe(Unsupported{Platform: "wasm"})

		Expect(r.UsedFallback).To(BeTrue())
		Expect(r.Reason.Error()).To(ContainSubstring("wasm"))
	})

	Context("with a chain", func() {
		var second *MockSource

		BeforeEach(func() {
			second = NewMockSource(mockCtrl)
			second.EXPECT().Name().Return("second").AnyTimes()
		})

		It("should use the first source that succeeds", func() {
			source.EXPECT().L1Data().Return(Geometry{}, ErrUnavailable)
			second.EXPECT().L1Data().Return(Fallback, nil)

			r := Probe(Chain{source, second})

			Expect(r.UsedFallback).To(BeFalse())
			Expect(r.Source).To(Equal("second"))
			Expect(r.Geometry).To(Equal(Fallback))
		})

		It("should not query later sources after a success", func() {
			g := Geometry{SizeBytes: 64 * KB, Associativity: 4, LineSizeBytes: 64}
			source.EXPECT().L1Data().Return(g, nil)

			r := Probe(Chain{source, second})

			Expect(r.Geometry).To(Equal(g))
			Expect(r.Source).To(Equal("mock"))
		})

		It("should join the errors when all sources fail", func() {
			source.EXPECT().L1Data().Return(Geometry{}, ErrUnavailable)
			second.EXPECT().L1Data().Return(Geometry{}, ErrNoDataCache)

			r := Probe(Chain{source, second})

			Expect(r.UsedFallback).To(BeTrue())
			Expect(errors.Is(r.Reason, ErrUnavailable)).To(BeTrue())
			Expect(errors.Is(r.Reason, ErrNoDataCache)).To(BeTrue())
		})

		It("should name all chained sources", func() {
			Expect(Chain{source, second}.Name()).To(Equal("mock,second"))
		})
	})
})

var _ = Describe("Geometry", func() {
	It("should derive counts", func() {
		g := Geometry{SizeBytes: 48 * KB, Associativity: 12, LineSizeBytes: 64}

		Expect(g.Validate()).To(Succeed())
		Expect(g.NumLines()).To(Equal(768))
		Expect(g.NumSets()).To(Equal(64))
		Expect(g.KB()).To(Equal(48))
	})

	It("should reject a line size that is not a power of two", func() {
		g := Geometry{SizeBytes: 48 * KB, Associativity: 12, LineSizeBytes: 48}

		Expect(g.Validate()).NotTo(Succeed())
	})

	It("should reject a partial set", func() {
		g := Geometry{SizeBytes: 1000, Associativity: 4, LineSizeBytes: 64}

		Expect(g.Validate()).NotTo(Succeed())
	})
})
