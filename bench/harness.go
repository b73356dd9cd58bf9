// Package bench times the naive and the blocked transpose against each
// other.
package bench

import (
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/transposebench/cacheprobe"
	"github.com/sarchlab/transposebench/cachesim"
	"github.com/sarchlab/transposebench/tiling"
	"github.com/sarchlab/transposebench/transpose"
)

// DefaultDimension is used when the requested dimension is not positive.
const DefaultDimension = 512

// Variant identifies a transpose algorithm.
type Variant int

// The transpose variants.
const (
	Naive Variant = iota
	Blocked
)

func (v Variant) String() string {
	switch v {
	case Naive:
		return "naive"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Timing is the elapsed time of one transpose.
type Timing struct {
	Variant   Variant
	BlockSide int
	Duration  time.Duration
}

// Result is everything one run measured.
type Result struct {
	RunID     string
	Dimension int
	Probe     cacheprobe.Result
	BlockSide int
	Naive     Timing
	Blocked   Timing

	// Sweep holds one blocked timing per extra block side.
	Sweep []Timing

	// Simulation is set when simulation is enabled.
	Simulation *cachesim.Comparison

	// Verified reports that every blocked output matched the naive output.
	// It is false when verification is disabled.
	Verified bool
}

// Ratio returns the naive time divided by the blocked time. It is 0 when the
// blocked time is 0.
func (r Result) Ratio() float64 {
	if r.Blocked.Duration <= 0 {
		return 0
	}

	return float64(r.Naive.Duration) / float64(r.Blocked.Duration)
}

// Harness runs one measurement at a time.
type Harness struct {
	source   cacheprobe.Source
	logger   *slog.Logger
	sweep    []int
	simulate bool
	verify   bool
}

// Run probes the cache, sizes the tile and times each variant once on an
// n×n matrix. A dimension that is not positive is replaced by
// DefaultDimension.
func (h *Harness) Run(n int) Result {
	r := Result{RunID: xid.New().String()}
	logger := h.logger.With("run_id", r.RunID)

	if n <= 0 {
		logger.Warn("invalid matrix dimension, using default",
			"dimension", n, "default", DefaultDimension)

		n = DefaultDimension
	}

	r.Dimension = n
	r.Probe = h.probe(logger)
	r.BlockSide = tiling.BlockSide(
		r.Probe.Geometry, transpose.ElementSize, n)

	logger.Debug("block side computed",
		"block_side", r.BlockSide,
		"lines_per_block", tiling.LinesPerBlock(
			r.Probe.Geometry, transpose.ElementSize, r.BlockSide),
		"conflict_limit", tiling.ConflictLimit(r.Probe.Geometry))

	a := transpose.NewSequential(n)
	b1 := transpose.NewMatrix(n)
	b2 := transpose.NewMatrix(n)

	r.Naive = Timing{
		Variant:   Naive,
		BlockSide: n,
		Duration:  measure(func() { transpose.Naive(a, b1) }),
	}
	r.Blocked = Timing{
		Variant:   Blocked,
		BlockSide: r.BlockSide,
		Duration:  measure(func() { transpose.Blocked(a, b2, r.BlockSide) }),
	}

	verified := !h.verify || h.check(logger, b1, b2, r.BlockSide)

	for _, side := range h.sweep {
		side = transpose.ClampSide(n, side)
		b2.Reset()

		r.Sweep = append(r.Sweep, Timing{
			Variant:   Blocked,
			BlockSide: side,
			Duration:  measure(func() { transpose.Blocked(a, b2, side) }),
		})

		if h.verify {
			verified = h.check(logger, b1, b2, side) && verified
		}
	}

	r.Verified = h.verify && verified

	if h.simulate {
		r.Simulation = h.simulateRun(logger, r.Probe.Geometry, n, r.BlockSide)
	}

	logger.Info("transpose measured",
		"dimension", n,
		"block_side", r.BlockSide,
		"naive", r.Naive.Duration,
		"blocked", r.Blocked.Duration,
		"ratio", r.Ratio())

	return r
}

func (h *Harness) probe(logger *slog.Logger) cacheprobe.Result {
	p := cacheprobe.Probe(h.source)

	if p.UsedFallback {
		logger.Warn("cache detection failed, using fallback geometry",
			"geometry", p.Geometry.String(),
			"reason", p.Reason)
	} else {
		logger.Debug("cache geometry detected",
			"geometry", p.Geometry.String(),
			"source", p.Source)
	}

	return p
}

func (h *Harness) check(
	logger *slog.Logger,
	want, got *transpose.Matrix,
	side int,
) bool {
	if want.Equal(got) {
		return true
	}

	logger.Error("blocked transpose differs from naive transpose",
		"block_side", side)

	return false
}

func (h *Harness) simulateRun(
	logger *slog.Logger,
	g cacheprobe.Geometry,
	n, side int,
) *cachesim.Comparison {
	cmp := cachesim.Compare(
		cachesim.MakeBuilder().WithGeometry(g),
		n, transpose.ElementSize, side)

	logger.Debug("cache simulation finished",
		"naive_misses", cmp.Naive.Misses,
		"blocked_misses", cmp.Blocked.Misses,
		"naive_hot_set", cmp.NaiveHotSet.SetID,
		"naive_hot_set_misses", cmp.NaiveHotSet.Misses,
		"blocked_hot_set", cmp.BlockedHotSet.SetID,
		"blocked_hot_set_misses", cmp.BlockedHotSet.Misses)

	return &cmp
}

func measure(fn func()) time.Duration {
	start := time.Now()
	fn()

	return time.Since(start)
}
