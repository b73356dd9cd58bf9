// Package affinity pins the calling goroutine to one CPU core.
package affinity

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/cpu"
)

var (
	// ErrPlatformUnsupported is returned where thread affinity cannot be
	// set.
	ErrPlatformUnsupported = errors.New("cpu affinity not supported")

	// ErrOSDenied is returned when the operating system refuses the
	// affinity mask.
	ErrOSDenied = errors.New("cpu affinity denied")

	// ErrInvalidCore is returned for core IDs outside the machine.
	ErrInvalidCore = errors.New("invalid core id")
)

// validateCore checks core against the number of logical CPUs. If the
// count is unknown, only negative IDs are rejected.
func validateCore(core int) error {
	if core < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCore, core)
	}

	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return nil
	}

	if core >= count {
		return fmt.Errorf("%w: %d, machine has %d logical cpus",
			ErrInvalidCore, core, count)
	}

	return nil
}
