//go:build linux

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its OS thread and restricts that
// thread to core. On failure the goroutine is unlocked again.
func Pin(core int) error {
	if err := validateCore(core); err != nil {
		return err
	}

	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(core)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return fmt.Errorf("%w: core %d: %v", ErrOSDenied, core, err)
	}

	return nil
}

// Allowed returns the cores the calling thread may run on.
func Allowed() ([]int, error) {
	var set unix.CPUSet

	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOSDenied, err)
	}

	var cores []int

	for core := 0; len(cores) < set.Count(); core++ {
		if set.IsSet(core) {
			cores = append(cores, core)
		}
	}

	return cores, nil
}
