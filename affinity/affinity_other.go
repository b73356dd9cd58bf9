//go:build !linux

package affinity

import (
	"fmt"
	"runtime"
)

// Pin is not supported on this platform.
func Pin(core int) error {
	if err := validateCore(core); err != nil {
		return err
	}

	return fmt.Errorf("%w on %s", ErrPlatformUnsupported, runtime.GOOS)
}

// Allowed is not supported on this platform.
func Allowed() ([]int, error) {
	return nil, fmt.Errorf("%w on %s", ErrPlatformUnsupported, runtime.GOOS)
}
