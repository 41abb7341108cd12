package vango

import "testing"

type testListener struct {
	id    uint64
	dirty int
}

func (l *testListener) MarkDirty() { l.dirty++ }
func (l *testListener) ID() uint64 { return l.id }

// fakeStore is a minimal external store with a subscriber list.
type fakeStore struct {
	value int
	label string
	subs  map[int]func()
	next  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{subs: make(map[int]func())}
}

func (s *fakeStore) subscribe(fn func()) func() {
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *fakeStore) set(value int, label string) {
	s.value = value
	s.label = label
	for _, fn := range s.subs {
		fn()
	}
}

func renderWith(owner *Owner, l Listener, fn func()) {
	WithOwner(owner, func() {
		owner.StartRender()
		WithListener(l, fn)
		owner.EndRender()
	})
}

func TestUseSyncExternalStoreOutsideRender(t *testing.T) {
	s := newFakeStore()
	s.value = 7

	got := UseSyncExternalStore(s.subscribe, func() int { return s.value })
	if got != 7 {
		t.Errorf("got %v, want 7", got)
	}
	if len(s.subs) != 0 {
		t.Error("no subscription should be made outside a render")
	}
}

func TestUseSyncExternalStoreSubscribesOnce(t *testing.T) {
	s := newFakeStore()
	owner := NewOwner(nil)
	l := &testListener{id: NextID()}

	for i := 0; i < 3; i++ {
		renderWith(owner, l, func() {
			UseSyncExternalStore(s.subscribe, func() int { return s.value })
		})
	}

	if len(s.subs) != 1 {
		t.Errorf("subscriptions = %d, want 1", len(s.subs))
	}

	owner.Dispose()
	if len(s.subs) != 0 {
		t.Errorf("subscriptions after dispose = %d, want 0", len(s.subs))
	}
}

func TestUseSyncExternalStoreMarksDirtyOnlyOnChange(t *testing.T) {
	s := newFakeStore()
	owner := NewOwner(nil)
	l := &testListener{id: NextID()}

	var got int
	renderWith(owner, l, func() {
		got = UseSyncExternalStore(s.subscribe, func() int { return s.value })
	})
	if got != 0 {
		t.Fatalf("initial = %v, want 0", got)
	}

	// The selected slice is unchanged.
	s.set(0, "other")
	if l.dirty != 0 {
		t.Errorf("dirty = %d after unrelated change, want 0", l.dirty)
	}

	s.set(5, "other")
	if l.dirty != 1 {
		t.Errorf("dirty = %d after selected change, want 1", l.dirty)
	}

	renderWith(owner, l, func() {
		got = UseSyncExternalStore(s.subscribe, func() int { return s.value })
	})
	if got != 5 {
		t.Errorf("re-render = %v, want 5", got)
	}

	// Same value again after re-render: no further dirty mark.
	s.set(5, "again")
	if l.dirty != 1 {
		t.Errorf("dirty = %d, want 1", l.dirty)
	}
}

func TestUseSyncExternalStoreStructSnapshot(t *testing.T) {
	type pair struct{ A, B string }
	s := newFakeStore()
	owner := NewOwner(nil)
	l := &testListener{id: NextID()}

	renderWith(owner, l, func() {
		UseSyncExternalStore(s.subscribe, func() pair { return pair{A: s.label} })
	})

	s.set(1, "")
	if l.dirty != 0 {
		t.Errorf("dirty = %d, want 0", l.dirty)
	}
	s.set(1, "x")
	if l.dirty != 1 {
		t.Errorf("dirty = %d, want 1", l.dirty)
	}
}

func TestEqual(t *testing.T) {
	type named string
	if !Equal(1, 1) || Equal(1, 2) {
		t.Error("int equality broken")
	}
	if !Equal("a", "a") || Equal("a", "b") {
		t.Error("string equality broken")
	}
	if !Equal(named("dark"), named("dark")) || Equal(named("dark"), named("light")) {
		t.Error("named string equality broken")
	}
	if !Equal([]int{1, 2}, []int{1, 2}) {
		t.Error("slices should compare deeply")
	}
}
