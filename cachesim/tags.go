package cachesim

// A Block records which line a way of a set holds.
type Block struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool
}

// A Set holds the ways a line may be placed in. LRUQueue lists the way IDs
// from the least to the most recently used.
type Set struct {
	Blocks   []Block
	LRUQueue []int
}

// A TagArray tracks which lines are held by each set of the cache.
type TagArray struct {
	NumSets   int
	NumWays   int
	BlockSize int
	Sets      []Set
}

// NewTagArray creates a tag array with all blocks invalid.
func NewTagArray(numSets, numWays, blockSize int) *TagArray {
	t := &TagArray{
		NumSets:   numSets,
		NumWays:   numWays,
		BlockSize: blockSize,
	}

	t.Reset()

	return t
}

// TotalSize returns the capacity in bytes.
func (t *TagArray) TotalSize() uint64 {
	return uint64(t.NumSets) * uint64(t.NumWays) * uint64(t.BlockSize)
}

// LineAddress returns the address of the line holding addr.
func (t *TagArray) LineAddress(addr uint64) uint64 {
	return addr / uint64(t.BlockSize) * uint64(t.BlockSize)
}

// GetSet returns the set addr maps to.
func (t *TagArray) GetSet(addr uint64) (set *Set, setID int) {
	setID = int(addr / uint64(t.BlockSize) % uint64(t.NumSets))
	set = &t.Sets[setID]

	return
}

// Lookup finds the block holding the line of addr.
func (t *TagArray) Lookup(addr uint64) (Block, bool) {
	tag := t.LineAddress(addr)
	set, _ := t.GetSet(addr)

	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == tag {
			return block, true
		}
	}

	return Block{}, false
}

// Update writes block back into its set and way.
func (t *TagArray) Update(block Block) {
	t.Sets[block.SetID].Blocks[block.WayID] = block
}

// Visit moves the block to the most recently used end of its LRU queue.
func (t *TagArray) Visit(block Block) {
	queue := t.Sets[block.SetID].LRUQueue

	pos := 0
	for pos < len(queue) && queue[pos] != block.WayID {
		pos++
	}

	if pos == len(queue) {
		return
	}

	copy(queue[pos:], queue[pos+1:])
	queue[len(queue)-1] = block.WayID
}

// FindVictim returns the block to replace for addr: an invalid block if the
// set has one, otherwise the least recently used block.
func (t *TagArray) FindVictim(addr uint64) Block {
	set, _ := t.GetSet(addr)

	for _, wayID := range set.LRUQueue {
		if !set.Blocks[wayID].IsValid {
			return set.Blocks[wayID]
		}
	}

	return set.Blocks[set.LRUQueue[0]]
}

// Reset marks all the blocks invalid.
func (t *TagArray) Reset() {
	t.Sets = make([]Set, t.NumSets)

	for i := range t.Sets {
		t.Sets[i].Blocks = make([]Block, t.NumWays)
		t.Sets[i].LRUQueue = make([]int, t.NumWays)

		for j := 0; j < t.NumWays; j++ {
			t.Sets[i].Blocks[j] = Block{SetID: i, WayID: j}
			t.Sets[i].LRUQueue[j] = j
		}
	}
}
