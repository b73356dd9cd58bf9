package cacheprobe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable is returned when a source cannot query the processor on
	// this platform.
	ErrUnavailable = errors.New("cache detection unavailable")

	// ErrNoDataCache is returned when a source ran but found no L1 data or
	// unified cache descriptor.
	ErrNoDataCache = errors.New("no L1 data cache descriptor found")
)

// A Source can report the geometry of the L1 data cache.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string

	// L1Data returns the geometry of the L1 data cache.
	L1Data() (Geometry, error)
}

// Unsupported is the source used where the processor cannot be queried.
type Unsupported struct {
	Platform string
}

// Name returns the name of the source.
func (s Unsupported) Name() string {
	return "unsupported"
}

// L1Data always fails with ErrUnavailable.
func (s Unsupported) L1Data() (Geometry, error) {
	return Geometry{}, fmt.Errorf("%w on %s", ErrUnavailable, s.Platform)
}

// A Chain tries its sources in order and reports the first success.
type Chain []Source

// Name returns the names of the chained sources.
func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, s := range c {
		names = append(names, s.Name())
	}

	return strings.Join(names, ",")
}

// L1Data returns the geometry from the first source that succeeds. If all
// sources fail, the errors are joined.
func (c Chain) L1Data() (Geometry, error) {
	g, _, err := c.first()
	return g, err
}

func (c Chain) first() (Geometry, Source, error) {
	if len(c) == 0 {
		return Geometry{}, nil, fmt.Errorf("%w: no sources", ErrUnavailable)
	}

	var errs []error

	for _, s := range c {
		g, err := s.L1Data()
		if err == nil {
			err = g.Validate()
		}

		if err == nil {
			return g, s, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	return Geometry{}, nil, errors.Join(errs...)
}

// DefaultSource returns the sources used on this platform, most precise
// first.
func DefaultSource() Source {
	return Chain{NewCPUIDSource(), NewSysfsSource()}
}

// Result is the outcome of a probe.
type Result struct {
	Geometry Geometry

	// Source names the source that produced the geometry. It is "fallback"
	// when UsedFallback is set.
	Source string

	// UsedFallback reports that detection failed and Geometry is Fallback.
	UsedFallback bool

	// Reason holds the detection error when UsedFallback is set.
	Reason error
}

// Probe queries src for the L1 data cache geometry. Detection failures are
// not returned as errors. The fallback geometry is used instead and the
// result is flagged.
func Probe(src Source) Result {
	if src == nil {
		return fallback(fmt.Errorf("%w: no source", ErrUnavailable))
	}

	if chain, ok := src.(Chain); ok {
		g, s, err := chain.first()
		if err != nil {
			return fallback(err)
		}

		return Result{Geometry: g, Source: s.Name()}
	}

	g, err := src.L1Data()
	if err == nil {
		err = g.Validate()
	}

	if err != nil {
		return fallback(fmt.Errorf("%s: %w", src.Name(), err))
	}

	return Result{Geometry: g, Source: src.Name()}
}

func fallback(reason error) Result {
	return Result{
		Geometry:     Fallback,
		Source:       "fallback",
		UsedFallback: true,
		Reason:       reason,
	}
}
