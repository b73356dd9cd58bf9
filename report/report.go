// Package report prints benchmark results as aligned columns.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sarchlab/transposebench/bench"
	"github.com/sarchlab/transposebench/cachesim"
)

// Write prints r to w. Resources may be nil.
func Write(w io.Writer, r bench.Result, res *Resources) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	g := r.Probe.Geometry

	source := r.Probe.Source
	if r.Probe.UsedFallback {
		source = fmt.Sprintf("fallback (%v)", r.Probe.Reason)
	}

	fmt.Fprintf(tw, "Matrix size\t%d x %d\n", r.Dimension, r.Dimension)
	fmt.Fprintf(tw, "L1 cache size\t%d KB\n", g.KB())
	fmt.Fprintf(tw, "Associativity\t%d-way\n", g.Associativity)
	fmt.Fprintf(tw, "Cache line size\t%d bytes\n", g.LineSizeBytes)
	fmt.Fprintf(tw, "Cache source\t%s\n", source)
	fmt.Fprintf(tw, "Block side\t%d\n", r.BlockSide)
	fmt.Fprintf(tw, "Naive time\t%s\n", formatDuration(r.Naive.Duration))
	fmt.Fprintf(tw, "Blocked time\t%s\n", formatDuration(r.Blocked.Duration))
	fmt.Fprintf(tw, "Ratio (naive/blocked)\t%.2fx\n", r.Ratio())

	if res != nil {
		fmt.Fprintf(tw, "Resident memory\t%.1f MB\n",
			float64(res.RSSBytes)/(1<<20))
		fmt.Fprintf(tw, "CPU usage\t%.1f%%\n", res.CPUPercent)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Sweep) > 0 {
		if err := writeSweep(w, r); err != nil {
			return err
		}
	}

	if r.Simulation != nil {
		return writeSimulation(w, *r.Simulation)
	}

	return nil
}

func writeSweep(w io.Writer, r bench.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w)
	fmt.Fprintf(tw, "Block side\tTime\tRatio vs naive\t\n")

	for _, t := range r.Sweep {
		ratio := 0.0
		if t.Duration > 0 {
			ratio = float64(r.Naive.Duration) / float64(t.Duration)
		}

		fmt.Fprintf(tw, "%d\t%s\t%.2fx\t\n",
			t.BlockSide, formatDuration(t.Duration), ratio)
	}

	return tw.Flush()
}

func writeSimulation(w io.Writer, c cachesim.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w)
	fmt.Fprintf(tw, "Simulated L1\tNaive\tBlocked\t\n")
	fmt.Fprintf(tw, "Accesses\t%d\t%d\t\n",
		c.Naive.Accesses(), c.Blocked.Accesses())
	fmt.Fprintf(tw, "Misses\t%d\t%d\t\n", c.Naive.Misses, c.Blocked.Misses)
	fmt.Fprintf(tw, "Miss rate\t%.2f%%\t%.2f%%\t\n",
		100*c.Naive.MissRate(), 100*c.Blocked.MissRate())
	fmt.Fprintf(tw, "Evictions\t%d\t%d\t\n",
		c.Naive.Evictions, c.Blocked.Evictions)
	fmt.Fprintf(tw, "Write-backs\t%d\t%d\t\n",
		c.Naive.WriteBacks, c.Blocked.WriteBacks)
	fmt.Fprintf(tw, "Hottest set\t%s\t%s\t\n",
		formatHotSet(c.NaiveHotSet), formatHotSet(c.BlockedHotSet))
	fmt.Fprintf(tw, "Miss reduction\t\t%.2fx\t\n", c.MissReduction())

	return tw.Flush()
}

func formatHotSet(h cachesim.HotSet) string {
	if h.SetID < 0 {
		return "-"
	}

	return fmt.Sprintf("%d (%d misses)", h.SetID, h.Misses)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}
