//go:build !amd64

package cacheprobe

import "runtime"

// NewCPUIDSource returns Unsupported, as CPUID only exists on amd64.
func NewCPUIDSource() Source {
	return Unsupported{Platform: runtime.GOARCH}
}
