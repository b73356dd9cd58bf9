package cacheprobe

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
)

// SysfsCacheDir is where Linux describes the caches of the first CPU.
const SysfsCacheDir = "/sys/devices/system/cpu/cpu0/cache"

// SysfsSource reads the cache descriptors Linux exports under sysfs.
type SysfsSource struct {
	fsys fs.FS
}

// NewSysfsSource creates a SysfsSource reading SysfsCacheDir.
func NewSysfsSource() *SysfsSource {
	return NewSysfsSourceFS(os.DirFS(SysfsCacheDir))
}

// NewSysfsSourceFS creates a SysfsSource reading from fsys, whose root is
// the cache directory holding the index* entries.
func NewSysfsSourceFS(fsys fs.FS) *SysfsSource {
	return &SysfsSource{fsys: fsys}
}

// Name returns the name of the source.
func (s *SysfsSource) Name() string {
	return "sysfs"
}

// L1Data returns the first level 1 data or unified cache.
func (s *SysfsSource) L1Data() (Geometry, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Geometry{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		return Geometry{}, err
	}

	for _, dir := range cacheIndices(entries) {
		level, err := s.readInt(dir, "level")
		if err != nil || level != 1 {
			continue
		}

		kind, err := s.readString(dir, "type")
		if err != nil || (kind != "Data" && kind != "Unified") {
			continue
		}

		return s.readGeometry(dir)
	}

	return Geometry{}, ErrNoDataCache
}

// cacheIndices returns the index<N> directories ordered by N, the order in
// which the kernel lists the cache levels.
func cacheIndices(entries []fs.DirEntry) []string {
	type index struct {
		dir string
		n   int
	}

	var indices []index

	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), "index")
		if !e.IsDir() || !ok {
			continue
		}

		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}

		indices = append(indices, index{dir: e.Name(), n: n})
	}

	slices.SortFunc(indices, func(a, b index) int {
		return cmp.Compare(a.n, b.n)
	})

	dirs := make([]string, 0, len(indices))
	for _, i := range indices {
		dirs = append(dirs, i.dir)
	}

	return dirs
}

func (s *SysfsSource) readGeometry(dir string) (Geometry, error) {
	sizeText, err := s.readString(dir, "size")
	if err != nil {
		return Geometry{}, err
	}

	size, err := parseSize(sizeText)
	if err != nil {
		return Geometry{}, err
	}

	ways, err := s.readInt(dir, "ways_of_associativity")
	if err != nil {
		return Geometry{}, err
	}

	line, err := s.readInt(dir, "coherency_line_size")
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{
		SizeBytes:     size,
		Associativity: ways,
		LineSizeBytes: line,
	}, nil
}

func (s *SysfsSource) readString(dir, name string) (string, error) {
	b, err := fs.ReadFile(s.fsys, path.Join(dir, name))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func (s *SysfsSource) readInt(dir, name string) (int, error) {
	text, err := s.readString(dir, name)
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parsing %s/%s: %w", dir, name, err)
	}

	return v, nil
}

// parseSize parses sizes such as "48K" or "2048K" or "1M".
func parseSize(text string) (int, error) {
	multiplier := 1

	switch {
	case strings.HasSuffix(text, "K"):
		multiplier = KB
		text = strings.TrimSuffix(text, "K")
	case strings.HasSuffix(text, "M"):
		multiplier = KB * KB
		text = strings.TrimSuffix(text, "M")
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parsing cache size %q: %w", text, err)
	}

	return v * multiplier, nil
}
