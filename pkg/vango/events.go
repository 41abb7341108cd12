package vango

// Event is a DOM event forwarded by the client.
//
// Handlers may take *Event to read the value or cancel the default action:
//
//	vdom.OnSubmit(func(e *vango.Event) {
//	    e.PreventDefault()
//	})
//
//	vdom.OnInput(func(e *vango.Event) {
//	    set(refstore.Partial{"email": e.Value})
//	})
type Event struct {
	// HID is the hydration ID of the target element.
	HID string

	// Type is the DOM event name without the "on" prefix ("click", "input").
	Type string

	// Value is the target's value for input and change events.
	Value string

	defaultPrevented bool
}

// PreventDefault marks the browser's default action as cancelled. The reply
// to the client reports it.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}
