package bench

import (
	"log/slog"
	"slices"

	"github.com/sarchlab/transposebench/cacheprobe"
)

// Builder can build harnesses.
type Builder struct {
	source   cacheprobe.Source
	logger   *slog.Logger
	sweep    []int
	simulate bool
	verify   bool
}

// MakeBuilder creates a new builder that probes the platform's default
// source, logs to the default logger and verifies the outputs.
func MakeBuilder() Builder {
	return Builder{
		source: cacheprobe.DefaultSource(),
		logger: slog.Default(),
		verify: true,
	}
}

// WithSource sets where the cache geometry comes from.
func (b Builder) WithSource(source cacheprobe.Source) Builder {
	b.source = source
	return b
}

// WithLogger sets the logger of the harness.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithSweep sets extra block sides at which the blocked transpose is also
// timed.
func (b Builder) WithSweep(sides ...int) Builder {
	b.sweep = slices.Clone(sides)
	return b
}

// WithSimulation enables replaying both variants through the cache model.
func (b Builder) WithSimulation(simulate bool) Builder {
	b.simulate = simulate
	return b
}

// WithVerification sets whether the blocked output is compared with the
// naive output after timing.
func (b Builder) WithVerification(verify bool) Builder {
	b.verify = verify
	return b
}

// Build builds a harness. A nil logger is replaced by the default logger.
func (b Builder) Build() *Harness {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Harness{
		source:   b.source,
		logger:   logger,
		sweep:    slices.Clone(b.sweep),
		simulate: b.simulate,
		verify:   b.verify,
	}
}
