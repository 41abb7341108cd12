package vango

import "sync"

// externalStoreSlot is the per-component state behind UseSyncExternalStore.
type externalStoreSlot[T any] struct {
	mu          sync.Mutex
	listener    Listener
	getSnapshot func() T
	last        T
	unsubscribe func()
}

// onStoreChange runs on every store notification. It recomputes the snapshot
// and marks the component dirty only when the value differs from the one it
// last rendered.
func (s *externalStoreSlot[T]) onStoreChange() {
	s.mu.Lock()
	getSnapshot := s.getSnapshot
	last := s.last
	listener := s.listener
	s.mu.Unlock()

	if getSnapshot == nil || listener == nil {
		return
	}
	if Equal(last, getSnapshot()) {
		return
	}
	listener.MarkDirty()
}

// UseSyncExternalStore reads a value from a store that lives outside the
// runtime and keeps the rendering component in sync with it.
//
// subscribe registers a change callback and returns its unsubscribe
// function. It is called once per component instance, on first render; the
// unsubscribe runs when the component's owner is disposed.
//
// getSnapshot is called on every render and after every notification, so the
// returned value always reflects the store at the time of the call. The
// component is re-rendered only if a notification yields a snapshot that is
// not Equal to the one it last rendered.
//
// Outside a component render it simply returns getSnapshot().
func UseSyncExternalStore[T any](subscribe func(onChange func()) func(), getSnapshot func() T) T {
	owner := getCurrentOwner()
	value := getSnapshot()
	if owner == nil {
		return value
	}
	owner.TrackHook(HookExternalStore)

	slot, _ := owner.UseHookSlot().(*externalStoreSlot[T])
	if slot == nil {
		slot = &externalStoreSlot[T]{listener: getCurrentListener()}
		owner.SetHookSlot(slot)
		slot.unsubscribe = subscribe(slot.onStoreChange)
		owner.OnCleanup(func() {
			if slot.unsubscribe != nil {
				slot.unsubscribe()
			}
		})
	}

	slot.mu.Lock()
	slot.getSnapshot = getSnapshot
	slot.last = value
	slot.mu.Unlock()

	return value
}
