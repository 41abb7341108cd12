package vango

import (
	"github.com/vango-dev/refstore/pkg/vdom"
)

// Context provides dependency injection through the component tree.
// Create a context with CreateContext, provide values with Provider,
// and consume values with Use.
//
//	var ThemeContext = vango.CreateContext("light")
//
//	func App() *vdom.VNode {
//	    return ThemeContext.Provider("dark", Header(), Main())
//	}
//
//	func Button() *vdom.VNode {
//	    theme := ThemeContext.Use()
//	    return vdom.Button(vdom.Class("btn-" + theme))
//	}
type Context[T any] struct {
	key          any
	defaultValue T
}

// contextKey wraps Context to create a unique key type.
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a new context with the given default value.
// The default value is returned by Use when no Provider is found.
func CreateContext[T any](defaultValue T) *Context[T] {
	ctx := &Context[T]{
		defaultValue: defaultValue,
	}
	ctx.key = contextKey[T]{ctx: ctx}
	return ctx
}

// Provider stores value on the current owner and returns children as a
// fragment. Must be called while rendering the providing component.
func (c *Context[T]) Provider(value T, children ...any) *vdom.VNode {
	c.Set(value)
	return vdom.Fragment(children...)
}

// Set stores value on the current owner without producing a node.
func (c *Context[T]) Set(value T) {
	if owner := getCurrentOwner(); owner != nil {
		owner.SetValue(c.key, value)
	}
}

// Use retrieves the value from the nearest Provider ancestor, or the
// default value when there is none. Call it unconditionally during render.
func (c *Context[T]) Use() T {
	trackHook(HookContext)
	value, _ := c.Lookup()
	return value
}

// Lookup is Use without hook tracking. ok is false when no Provider set a
// value of type T above the current owner.
func (c *Context[T]) Lookup() (value T, ok bool) {
	owner := getCurrentOwner()
	if owner != nil {
		if v := owner.GetValue(c.key); v != nil {
			if typed, isT := v.(T); isT {
				return typed, true
			}
		}
	}
	return c.defaultValue, false
}

// Default returns the default value for this context.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
