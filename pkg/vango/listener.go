package vango

// Listener is anything that can be notified when a dependency changes.
// Mounted components implement it: MarkDirty schedules a re-render.
type Listener interface {
	// MarkDirty notifies the listener that something it rendered from changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	ID() uint64
}

// Cleanup is a function run when an owner is disposed.
type Cleanup func()
