package vango

import (
	"runtime"
	"sync"
)

// DebugMode enables dev-time validation such as hook order checking.
// It should be set at startup and not changed while sessions are running.
var DebugMode bool

// TrackingContext holds the render state for a goroutine.
type TrackingContext struct {
	// currentOwner is the Owner of the component being rendered.
	currentOwner *Owner

	// currentListener is the component that hooks subscribe on behalf of.
	// nil means reads do not create subscriptions.
	currentListener Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns the current goroutine's ID parsed from the
// "goroutine <id> " stack header.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// CurrentOwner returns the owner of the component currently rendering on
// this goroutine, or nil outside a render.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// WithOwner runs fn with owner as the current owner.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with l as the current listener.
// The host uses this while rendering a component so hooks subscribe it.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// ReleaseGoroutine drops the tracking context of the current goroutine.
// Long-lived goroutines (one per websocket session) call it on exit.
func ReleaseGoroutine() {
	trackingContexts.Delete(getGoroutineID())
}
