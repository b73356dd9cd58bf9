// Package cmd provides the command-line interface for transposebench.
package cmd

import (
	"log/slog"

	"github.com/sarchlab/transposebench/affinity"
	"github.com/sarchlab/transposebench/bench"
	"github.com/sarchlab/transposebench/report"
	"github.com/spf13/cobra"
)

// defaultSweep holds the block sides timed by --sweep-default.
var defaultSweep = []int{16, 32, 64, 128, 256}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transposebench [flags] [--] [size]",
	Short: "Compare a naive and a cache-blocked matrix transpose.",
	Long: `transposebench transposes a size x size matrix of 32-bit integers ` +
		`twice, once element by element and once tile by tile, and reports ` +
		`both times. The tile side is derived from the L1 data cache ` +
		`geometry of the processor.` + "\n\n" +
		`A size below 1 falls back to 512. Pass a negative size after -- ` +
		`or through --size, as in "transposebench -- -5" or ` +
		`"transposebench --size=-5".`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
	RunE:              runBenchmark,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		return 1
	}

	return 0
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&cfg.size, "size", "n", bench.DefaultDimension,
		"Matrix dimension. Values below 1 use the default.")
	pf.StringVar(&cfg.logLevel, "log-level", "info",
		"Log level: debug, info, warn or error.")
	pf.BoolVar(&cfg.noColor, "no-color", false, "Disable colored logs.")

	f := rootCmd.Flags()
	f.IntVarP(&cfg.core, "core", "c", 0,
		"Core to pin the benchmark to. Negative values disable pinning.")
	f.IntSliceVar(&cfg.sweep, "sweep", nil,
		"Extra block sides to time the blocked transpose with.")
	f.BoolVar(&cfg.sweepDefault, "sweep-default", false,
		"Also time the block sides 16, 32, 64, 128 and 256.")
	f.BoolVar(&cfg.simulate, "simulate", false,
		"Replay both transposes through a model of the L1 cache.")
	f.StringVar(&cfg.cpuProfile, "cpuprofile", "",
		"Write a CPU profile to this file.")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	size, err := sizeFromArgs(args, cfg.size)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.logLevel, cfg.noColor)
	if err != nil {
		return err
	}

	if cfg.cpuProfile != "" {
		if err := startCPUProfile(cfg.cpuProfile); err != nil {
			return err
		}
	}

	if cfg.core >= 0 {
		pin(logger, cfg.core)
	}

	sweep := cfg.sweep
	if cfg.sweepDefault {
		sweep = append(append([]int{}, defaultSweep...), sweep...)
	}

	h := bench.MakeBuilder().
		WithLogger(logger).
		WithSweep(sweep...).
		WithSimulation(cfg.simulate).
		Build()

	r := h.Run(size)

	var res *report.Resources

	if snapshot, err := report.CollectResources(); err != nil {
		logger.Debug("process resources unavailable", "err", err)
	} else {
		res = &snapshot
	}

	return report.Write(cmd.OutOrStdout(), r, res)
}

// pin pins the calling goroutine to core. On failure it warns with the
// cores the thread may run on, if they are known.
func pin(logger *slog.Logger, core int) {
	err := affinity.Pin(core)
	if err == nil {
		logger.Debug("pinned to core", "core", core)
		return
	}

	attrs := []any{"core", core, "err", err}
	if cores, allowedErr := affinity.Allowed(); allowedErr == nil {
		attrs = append(attrs, "allowed", cores)
	}

	logger.Warn("running unpinned", attrs...)
}
