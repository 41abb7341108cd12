// Package vango is the component runtime that refstore stores plug into.
//
// It provides the pieces a UI host needs to keep derived views fresh:
//
//   - Owner: a component scope. Owners form a tree mirroring the component
//     tree, carry context values for their descendants, store per-component
//     hook state across renders, and run cleanups when disposed.
//   - Listener: anything that can be marked dirty (a mounted component).
//   - Context[T]: typed dependency injection through the owner tree.
//   - UseSyncExternalStore: subscribes the rendering component to an external
//     store and returns a fresh snapshot on every render.
//
// # Tracking
//
// The current owner and listener are tracked per goroutine. The host sets them
// while rendering a component:
//
//	vango.WithOwner(instance.Owner, func() {
//	    instance.Owner.StartRender()
//	    defer instance.Owner.EndRender()
//	    vango.WithListener(instance, func() {
//	        tree = instance.Component.Render()
//	    })
//	})
//
// # External stores
//
//	theme := vango.UseSyncExternalStore(store.SubscribeFunc, func() string {
//	    return store.Get().Theme
//	})
//
// The component is marked dirty only when a notification produces a snapshot
// different from the one it last rendered.
package vango
