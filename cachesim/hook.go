package cachesim

// HookPos names a point in an access where hooks run.
type HookPos struct {
	Name string
}

// HookCtx tells a hook where it was triggered and on what.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable is implemented by caches that report accesses to hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

var (
	// HookPosHit triggers when an access finds its line. The item is an
	// Access.
	HookPosHit = &HookPos{Name: "Hit"}

	// HookPosMiss triggers when an access allocates its line. The item is an
	// Access.
	HookPosMiss = &HookPos{Name: "Miss"}

	// HookPosEvict triggers when a valid block is replaced. The item is the
	// evicted Block.
	HookPosEvict = &HookPos{Name: "Evict"}
)

// A Hook observes a Hookable.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase keeps the hooks of a Hookable and invokes them.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase without hooks.
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)

	return h
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every hook with ctx, in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// ConflictTracer counts misses per set. A set with many more misses than
// the others points at addresses that map to the same set.
type ConflictTracer struct {
	misses map[int]uint64
}

// NewConflictTracer creates a ConflictTracer.
func NewConflictTracer() *ConflictTracer {
	return &ConflictTracer{misses: make(map[int]uint64)}
}

// Func records misses.
func (t *ConflictTracer) Func(ctx HookCtx) {
	if ctx.Pos != HookPosMiss {
		return
	}

	t.misses[ctx.Item.(Access).SetID]++
}

// Misses returns the number of misses recorded for a set.
func (t *ConflictTracer) Misses(setID int) uint64 {
	return t.misses[setID]
}

// HottestSet returns the set with the most misses. Ties go to the lowest
// set ID. It returns -1 if no miss was recorded.
func (t *ConflictTracer) HottestSet() (setID int, misses uint64) {
	setID = -1

	for id, m := range t.misses {
		if m > misses || (m == misses && id < setID) {
			setID, misses = id, m
		}
	}

	return setID, misses
}

// Reset forgets all recorded misses.
func (t *ConflictTracer) Reset() {
	clear(t.misses)
}
