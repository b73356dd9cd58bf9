package cmd

import (
	"github.com/sarchlab/transposebench/bench"
	"github.com/sarchlab/transposebench/cacheprobe"
	"github.com/sarchlab/transposebench/report"
	"github.com/sarchlab/transposebench/tiling"
	"github.com/sarchlab/transposebench/transpose"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe [flags] [--] [size]",
	Short: "Print the detected L1 data cache and the block side it gives.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := sizeFromArgs(args, cfg.size)
		if err != nil {
			return err
		}

		if size <= 0 {
			size = bench.DefaultDimension
		}

		p := cacheprobe.Probe(cacheprobe.DefaultSource())
		side := tiling.BlockSide(p.Geometry, transpose.ElementSize, size)

		return report.WriteProbe(
			cmd.OutOrStdout(), p, size, transpose.ElementSize, side)
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
