package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/transposebench/cacheprobe"
	"github.com/sarchlab/transposebench/tiling"
)

// WriteProbe prints a probe result and the block side derived from it for
// an n×n matrix of elementSize-byte elements.
func WriteProbe(
	w io.Writer,
	p cacheprobe.Result,
	n, elementSize, side int,
) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	g := p.Geometry

	fmt.Fprintf(tw, "Source\t%s\n", p.Source)
	fmt.Fprintf(tw, "Fallback\t%t\n", p.UsedFallback)

	if p.Reason != nil {
		fmt.Fprintf(tw, "Reason\t%v\n", p.Reason)
	}

	fmt.Fprintf(tw, "L1 cache size\t%d KB\n", g.KB())
	fmt.Fprintf(tw, "Associativity\t%d-way\n", g.Associativity)
	fmt.Fprintf(tw, "Cache line size\t%d bytes\n", g.LineSizeBytes)
	fmt.Fprintf(tw, "Sets\t%d\n", g.NumSets())
	fmt.Fprintf(tw, "Matrix size\t%d x %d\n", n, n)
	fmt.Fprintf(tw, "Block side\t%d\n", side)
	fmt.Fprintf(tw, "Lines per block\t%d of %d\n",
		tiling.LinesPerBlock(g, elementSize, side), tiling.ConflictLimit(g))

	return tw.Flush()
}
