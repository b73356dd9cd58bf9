//go:build amd64

package cacheprobe

// cpuid is implemented in cpuid_amd64.s.
func cpuid(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

// NewCPUIDSource returns a source backed by the CPUID instruction.
func NewCPUIDSource() Source {
	return NewCPUIDSourceWithQuery(cpuid)
}
