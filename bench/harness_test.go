package bench

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/transposebench/cacheprobe"
)

var _ = Describe("Harness", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockSource
		logs     *bytes.Buffer
		builder  Builder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockSource(mockCtrl)
		source.EXPECT().Name().Return("mock").AnyTimes()

		logs = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logs,
			&slog.HandlerOptions{Level: slog.LevelDebug}))

		builder = MakeBuilder().WithSource(source).WithLogger(logger)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should time both variants with the detected geometry", func() {
		g := cacheprobe.Geometry{
			SizeBytes:     48 * cacheprobe.KB,
			Associativity: 12,
			LineSizeBytes: 64,
		}
		source.EXPECT().L1Data().Return(g, nil)

		r := builder.Build().Run(128)

		Expect(r.RunID).NotTo(BeEmpty())
		Expect(r.Dimension).To(Equal(128))
		Expect(r.Probe.Geometry).To(Equal(g))
		Expect(r.Probe.UsedFallback).To(BeFalse())
		Expect(r.BlockSide).To(Equal(64))
		Expect(r.Naive.Variant).To(Equal(Naive))
		Expect(r.Blocked.Variant).To(Equal(Blocked))
		Expect(r.Blocked.BlockSide).To(Equal(64))
		Expect(r.Naive.Duration).To(BeNumerically(">=", 0))
		Expect(r.Blocked.Duration).To(BeNumerically(">=", 0))
		Expect(r.Verified).To(BeTrue())
		Expect(r.Sweep).To(BeEmpty())
		Expect(r.Simulation).To(BeNil())
		Expect(logs.String()).To(ContainSubstring("run_id=" + r.RunID))
	})

	It("should flag and log the fallback geometry", func() {
		source.EXPECT().L1Data().Return(
			cacheprobe.Geometry{}, cacheprobe.ErrUnavailable)

		r := builder.Build().Run(64)

		Expect(r.Probe.UsedFallback).To(BeTrue())
		Expect(r.Probe.Geometry).To(Equal(cacheprobe.Fallback))
		Expect(r.BlockSide).To(Equal(64))
		Expect(logs.String()).To(ContainSubstring("fallback"))
	})

	It("should use the default dimension for invalid input", func() {
		source.EXPECT().L1Data().Return(cacheprobe.Fallback, nil).Times(2)
		h := builder.Build()

		Expect(h.Run(0).Dimension).To(Equal(DefaultDimension))
		Expect(h.Run(-5).Dimension).To(Equal(DefaultDimension))
		Expect(logs.String()).To(ContainSubstring("invalid matrix dimension"))
	})

	It("should handle a single element matrix", func() {
		source.EXPECT().L1Data().Return(cacheprobe.Fallback, nil)

		r := builder.Build().Run(1)

		Expect(r.BlockSide).To(Equal(1))
		Expect(r.Verified).To(BeTrue())
	})

	It("should time every sweep side", func() {
		source.EXPECT().L1Data().Return(cacheprobe.Fallback, nil)

		r := builder.WithSweep(16, 32, 1000).Build().Run(100)

		Expect(r.Sweep).To(HaveLen(3))
		Expect(r.Sweep[0].BlockSide).To(Equal(16))
		Expect(r.Sweep[1].BlockSide).To(Equal(32))
		Expect(r.Sweep[2].BlockSide).To(Equal(100))
		for _, t := range r.Sweep {
			Expect(t.Variant).To(Equal(Blocked))
		}
		Expect(r.Verified).To(BeTrue())
	})

	It("should simulate both variants", func() {
		source.EXPECT().L1Data().Return(cacheprobe.Fallback, nil)

		r := builder.WithSimulation(true).Build().Run(1000)

		Expect(r.Simulation).NotTo(BeNil())
		Expect(r.Simulation.BlockSide).To(Equal(r.BlockSide))
		Expect(r.Simulation.Naive.Reads).To(Equal(uint64(1000 * 1000)))
		Expect(r.Simulation.Blocked.Misses).
			To(BeNumerically("<", r.Simulation.Naive.Misses))
		Expect(r.Simulation.NaiveHotSet.Misses).
			To(BeNumerically(">", r.Simulation.BlockedHotSet.Misses))
		Expect(logs.String()).To(ContainSubstring("naive_hot_set="))
	})

	It("should log to the default logger when given none", func() {
		h := MakeBuilder().
			WithSource(cacheprobe.Unsupported{Platform: "test"}).
			WithLogger(nil).
			Build()

		var r Result
		Expect(func() { r = h.Run(8) }).NotTo(Panic())
		Expect(r.Probe.UsedFallback).To(BeTrue())
		Expect(r.Verified).To(BeTrue())
	})

	It("should skip verification when disabled", func() {
		source.EXPECT().L1Data().Return(cacheprobe.Fallback, nil)

		r := builder.WithVerification(false).Build().Run(32)

		Expect(r.Verified).To(BeFalse())
	})
})

var _ = Describe("Result", func() {
	It("should compute the ratio", func() {
		r := Result{
			Naive:   Timing{Duration: 300},
			Blocked: Timing{Duration: 100},
		}

		Expect(r.Ratio()).To(BeNumerically("~", 3.0))
	})

	It("should not divide by zero", func() {
		Expect(Result{Naive: Timing{Duration: 300}}.Ratio()).To(BeZero())
	})

	It("should name the variants", func() {
		Expect(Naive.String()).To(Equal("naive"))
		Expect(Blocked.String()).To(Equal("blocked"))
		Expect(Variant(7).String()).To(Equal("unknown"))
	})
})
