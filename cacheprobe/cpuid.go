package cacheprobe

import (
	"encoding/binary"
	"fmt"
)

// A QueryFunc executes CPUID for a leaf and sub-leaf.
type QueryFunc func(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32)

const (
	leafVendor           = 0x0
	leafCacheParams      = 0x4
	leafExtendedMax      = 0x80000000
	leafExtendedFeatures = 0x80000001
	leafAMDCacheTopology = 0x8000001d

	// TOPOEXT, CPUID 0x80000001 ECX bit 22.
	amdTopologyExtensions = 1 << 22

	maxSubleaves = 10
)

type cacheType uint32

const (
	cacheTypeNull cacheType = iota
	cacheTypeData
	cacheTypeInstruction
	cacheTypeUnified
)

// A descriptor is one decoded deterministic cache parameters sub-leaf.
type descriptor struct {
	kind       cacheType
	level      int
	ways       int
	partitions int
	lineSize   int
	sets       int
}

func decodeDescriptor(eax, ebx, ecx uint32) descriptor {
	return descriptor{
		kind:       cacheType(eax & 0x1f),
		level:      int((eax >> 5) & 0x7),
		lineSize:   int(ebx&0xfff) + 1,
		partitions: int((ebx>>12)&0x3ff) + 1,
		ways:       int((ebx>>22)&0x3ff) + 1,
		sets:       int(ecx) + 1,
	}
}

func (d descriptor) isL1Data() bool {
	return d.level == 1 &&
		(d.kind == cacheTypeData || d.kind == cacheTypeUnified)
}

func (d descriptor) geometry() Geometry {
	return Geometry{
		SizeBytes:     d.ways * d.partitions * d.lineSize * d.sets,
		Associativity: d.ways,
		LineSizeBytes: d.lineSize,
	}
}

// CPUIDSource reads the L1 data cache geometry from the deterministic cache
// parameters leaf of CPUID. On AMD processors with topology extensions the
// equivalent extended leaf is used.
type CPUIDSource struct {
	query QueryFunc
}

// NewCPUIDSourceWithQuery creates a CPUIDSource that issues queries through
// q.
func NewCPUIDSourceWithQuery(q QueryFunc) *CPUIDSource {
	return &CPUIDSource{query: q}
}

// Name returns the name of the source.
func (s *CPUIDSource) Name() string {
	return "cpuid"
}

// L1Data walks the cache descriptors until it finds a level 1 data or
// unified cache.
func (s *CPUIDSource) L1Data() (Geometry, error) {
	if s.query == nil {
		return Geometry{}, fmt.Errorf("%w: no cpuid instruction", ErrUnavailable)
	}

	leaf, err := s.cacheLeaf()
	if err != nil {
		return Geometry{}, err
	}

	for sub := uint32(0); sub < maxSubleaves; sub++ {
		eax, ebx, ecx, _ := s.query(leaf, sub)

		d := decodeDescriptor(eax, ebx, ecx)
		if d.kind == cacheTypeNull {
			break
		}

		if d.isL1Data() {
			return d.geometry(), nil
		}
	}

	return Geometry{}, fmt.Errorf("%w in cpuid leaf %#x", ErrNoDataCache, leaf)
}

func (s *CPUIDSource) cacheLeaf() (uint32, error) {
	maxLeaf, ebx, ecx, edx := s.query(leafVendor, 0)

	if isAMDFamily(vendorString(ebx, ecx, edx)) {
		maxExt, _, _, _ := s.query(leafExtendedMax, 0)
		if maxExt >= leafAMDCacheTopology {
			_, _, features, _ := s.query(leafExtendedFeatures, 0)
			if features&amdTopologyExtensions != 0 {
				return leafAMDCacheTopology, nil
			}
		}
	}

	if maxLeaf < leafCacheParams {
		return 0, fmt.Errorf("%w: max cpuid leaf is %#x", ErrUnavailable, maxLeaf)
	}

	return leafCacheParams, nil
}

// vendorString assembles the vendor id, which CPUID returns in EBX, EDX,
// ECX order.
func vendorString(ebx, ecx, edx uint32) string {
	var b [12]byte

	binary.LittleEndian.PutUint32(b[0:], ebx)
	binary.LittleEndian.PutUint32(b[4:], edx)
	binary.LittleEndian.PutUint32(b[8:], ecx)

	return string(b[:])
}

func isAMDFamily(vendor string) bool {
	return vendor == "AuthenticAMD" || vendor == "HygonGenuine"
}
