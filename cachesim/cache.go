// Package cachesim replays memory access streams through a model of a
// set-associative, write-back, write-allocate L1 cache with LRU
// replacement.
package cachesim

// Stats counts the accesses seen by a Cache.
type Stats struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	WriteBacks uint64
}

// Accesses returns the number of reads and writes.
func (s Stats) Accesses() uint64 {
	return s.Reads + s.Writes
}

// MissRate returns the fraction of accesses that missed.
func (s Stats) MissRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}

	return float64(s.Misses) / float64(s.Accesses())
}

// Access is the hook item of hits and misses.
type Access struct {
	Address uint64
	IsWrite bool
	SetID   int
}

// Cache is a functional model of an L1 cache. It tracks tags only, not
// data.
type Cache struct {
	*HookableBase

	name  string
	tags  *TagArray
	stats Stats
}

// Name returns the name of the cache.
func (c *Cache) Name() string {
	return c.name
}

// Tags returns the tag array of the cache.
func (c *Cache) Tags() *TagArray {
	return c.tags
}

// Stats returns the counters accumulated since the last reset.
func (c *Cache) Stats() Stats {
	return c.stats
}

// Reset invalidates all lines and clears the counters.
func (c *Cache) Reset() {
	c.tags.Reset()
	c.stats = Stats{}
}

// Read accesses addr for reading and reports whether it hit.
func (c *Cache) Read(addr uint64) bool {
	c.stats.Reads++
	return c.access(addr, false)
}

// Write accesses addr for writing and reports whether it hit.
func (c *Cache) Write(addr uint64) bool {
	c.stats.Writes++
	return c.access(addr, true)
}

func (c *Cache) access(addr uint64, isWrite bool) bool {
	block, hit := c.tags.Lookup(addr)
	if hit {
		c.stats.Hits++

		if isWrite && !block.IsDirty {
			block.IsDirty = true
			c.tags.Update(block)
		}

		c.tags.Visit(block)
		c.invoke(HookPosHit, Access{addr, isWrite, block.SetID})

		return true
	}

	c.stats.Misses++

	victim := c.tags.FindVictim(addr)
	if victim.IsValid {
		c.evict(victim)
	}

	victim.Tag = c.tags.LineAddress(addr)
	victim.IsValid = true
	victim.IsDirty = isWrite
	c.tags.Update(victim)
	c.tags.Visit(victim)

	c.invoke(HookPosMiss, Access{addr, isWrite, victim.SetID})

	return false
}

func (c *Cache) evict(victim Block) {
	c.stats.Evictions++

	if victim.IsDirty {
		c.stats.WriteBacks++
	}

	c.invoke(HookPosEvict, victim)
}

func (c *Cache) invoke(pos *HookPos, item interface{}) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(HookCtx{Domain: c, Pos: pos, Item: item})
}
