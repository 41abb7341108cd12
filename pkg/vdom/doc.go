// Package vdom is the virtual node tree components render into.
//
// Elements are built with plain functions taking a variadic list of
// attributes, event handlers, children and text:
//
//	vdom.Form(
//	    vdom.ID("login_form"),
//	    vdom.OnSubmit(func(e *vango.Event) { e.PreventDefault() }),
//	    vdom.Label(vdom.For("input_email"), "Email"),
//	    vdom.Input(vdom.ID("input_email"), vdom.Type("email"), vdom.Value(email)),
//	)
//
// Nested components appear as KindComponent nodes; the host mounts them as
// separate component instances. Interactive elements (those with on*
// handlers) receive hydration IDs so events can be routed back to them.
package vdom
