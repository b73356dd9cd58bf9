package report

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// Resources is a snapshot of the resources used by this process.
type Resources struct {
	RSSBytes   uint64
	CPUPercent float64
}

// CollectResources reads the resident set size and CPU usage of the
// current process.
func CollectResources() (Resources, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Resources{}, err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return Resources{}, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return Resources{}, err
	}

	return Resources{
		RSSBytes:   mem.RSS,
		CPUPercent: cpuPercent,
	}, nil
}
