package refstore

import (
	"fmt"

	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/vango"
	"github.com/vango-dev/refstore/pkg/vdom"
)

// ObserverContext carries an Observer to every Provider below the owner
// that sets it. The server sets it on each session root.
var ObserverContext = vango.CreateContext[Observer](nil)

// RefContext declares a store shape. It creates stores through Provider and
// gives descendants access to the nearest one through Use.
type RefContext[S any] struct {
	initial S
	opts    []Option
	ctx     *vango.Context[*Store[S]]
}

// CreateRefContext declares a store with the given initial state. Each
// Provider instance starts from its own copy of initial.
// It panics with E202 if S is not a struct type.
func CreateRefContext[S any](initial S, opts ...Option) *RefContext[S] {
	if err := checkStateType[S](); err != nil {
		panic(err)
	}
	return &RefContext[S]{
		initial: initial,
		opts:    opts,
		ctx:     vango.CreateContext[*Store[S]](nil),
	}
}

// Provider returns a component that owns one Store for its lifetime and
// renders children beneath it. The store is created on first render and its
// subscribers are cleared when the component is unmounted.
func (c *RefContext[S]) Provider(children ...any) *vdom.VNode {
	return vdom.Mount(vdom.Func(func() *vdom.VNode {
		return c.ctx.Provider(c.useStore(), children...)
	}))
}

// useStore returns the store held in the current component's hook slot,
// creating it on first render.
func (c *RefContext[S]) useStore() *Store[S] {
	owner := vango.CurrentOwner()
	if owner == nil {
		return New(c.initial, c.storeOptions()...)
	}

	owner.TrackHook(vango.HookSlot)
	if store, ok := owner.UseHookSlot().(*Store[S]); ok {
		return store
	}
	store := New(c.initial, c.storeOptions()...)
	owner.SetHookSlot(store)
	owner.OnCleanup(store.clearSubscribers)
	return store
}

func (c *RefContext[S]) storeOptions() []Option {
	opts := c.opts
	if obs, ok := ObserverContext.Lookup(); ok && obs != nil {
		opts = append(append([]Option(nil), opts...), WithObserver(obs))
	}
	return opts
}

// Store returns the store of the nearest Provider above the rendering
// component. It panics with E201 when there is none.
func (c *RefContext[S]) Store() *Store[S] {
	store, ok := c.ctx.Lookup()
	if !ok || store == nil {
		var zero S
		panic(errors.New("E201").WithDetail(fmt.Sprintf("no Provider for %T above this component", zero)))
	}
	return store
}

// Use returns selector applied to the nearest store's state, and the
// store's Set.
//
// The value is recomputed from the store on every render. The calling
// component is subscribed once and marked for re-render only when a write
// changes the selected value. Use panics with E201 outside a Provider.
func Use[S, T any](c *RefContext[S], selector func(S) T) (T, func(Partial)) {
	store := c.Store()
	value := vango.UseSyncExternalStore(store.SubscribeFunc, func() T {
		return selector(store.Get())
	})
	return value, store.Set
}
