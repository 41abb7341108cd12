package vango

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// globalIDCounter is the source of unique IDs for owners and subscriptions.
var globalIDCounter uint64

// nextID returns the next unique ID. IDs are never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// NextID exposes the runtime ID sequence so other packages can mint
// identities that never collide with owner IDs.
func NextID() uint64 {
	return nextID()
}

// HookType identifies the type of hook call for order validation.
type HookType uint8

const (
	HookContext HookType = iota + 1
	HookExternalStore
	HookSlot
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookContext:
		return "Context"
	case HookExternalStore:
		return "ExternalStore"
	case HookSlot:
		return "Slot"
	default:
		return "Unknown"
	}
}

// Owner represents a component scope.
// When an Owner is disposed, its child owners are disposed first and then its
// cleanups run in reverse registration order.
//
// Owners form a hierarchy: each component creates an Owner that is a child
// of its parent component's Owner.
type Owner struct {
	id uint64

	// parent is nil for the root Owner (typically the session).
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	// cleanups are registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// values stores context values for this scope.
	values   map[any]any
	valuesMu sync.RWMutex

	disposed atomic.Bool

	// Dev-mode hook order tracking (only used when DebugMode is true)
	hookOrder   []HookType
	hookIndex   int
	renderCount int

	// Hook slot storage for stable identity across renders.
	hookSlots   []any
	hookSlotIdx int
}

// NewOwner creates a new Owner with the given parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
// On an already disposed Owner the function runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Dispose disposes this Owner and all its children.
// Children are disposed in reverse order (last created first).
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.hookSlots = nil
}

// =============================================================================
// Render phase and hook order validation
// =============================================================================

// StartRender is called at the beginning of a component render.
// It resets the hook slot index, and in debug mode the order index too.
func (o *Owner) StartRender() {
	o.hookSlotIdx = 0
	if DebugMode {
		o.hookIndex = 0
	}
}

// EndRender is called at the end of a component render.
// In debug mode, it validates that all expected hooks were called.
func (o *Owner) EndRender() {
	if !DebugMode {
		return
	}
	if o.renderCount == 0 {
		o.renderCount = 1
	} else if o.hookIndex < len(o.hookOrder) {
		panic(fmt.Sprintf("[REFSTORE E101] Hook order changed: expected %d hooks, got %d",
			len(o.hookOrder), o.hookIndex))
	}
}

// TrackHook records a hook call during render for order validation.
// Violations panic in debug mode.
func (o *Owner) TrackHook(ht HookType) {
	if !DebugMode {
		return
	}

	if o.renderCount == 0 {
		o.hookOrder = append(o.hookOrder, ht)
	} else {
		if o.hookIndex >= len(o.hookOrder) {
			panic(fmt.Sprintf("[REFSTORE E101] Hook order changed: extra %s hook at index %d",
				ht, o.hookIndex))
		}
		if expected := o.hookOrder[o.hookIndex]; expected != ht {
			panic(fmt.Sprintf("[REFSTORE E101] Hook order changed at index %d: expected %s, got %s",
				o.hookIndex, expected, ht))
		}
	}
	o.hookIndex++
}

// UseHookSlot returns the stored value for the current hook slot, or nil on
// the first render. The caller creates the value and stores it with
// SetHookSlot.
//
//	slot := owner.UseHookSlot()
//	if slot != nil {
//	    return slot.(*state)
//	}
//	s := &state{}
//	owner.SetHookSlot(s)
func (o *Owner) UseHookSlot() any {
	idx := o.hookSlotIdx
	o.hookSlotIdx++

	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the slot last returned by UseHookSlot,
// replacing whatever it held.
func (o *Owner) SetHookSlot(value any) {
	idx := o.hookSlotIdx - 1
	if idx < 0 {
		idx = 0
	}
	for len(o.hookSlots) <= idx {
		o.hookSlots = append(o.hookSlots, nil)
	}
	o.hookSlots[idx] = value
}

// trackHook records a hook on the current owner, if any.
func trackHook(ht HookType) {
	if owner := getCurrentOwner(); owner != nil {
		owner.TrackHook(ht)
	}
}
