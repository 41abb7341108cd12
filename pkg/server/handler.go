package server

import (
	"github.com/vango-dev/refstore/pkg/vango"
)

// Handler is the internal event handler function type.
type Handler func(event *vango.Event)

// wrapHandler converts a handler value from a VNode prop into a Handler.
// Supported forms are func(), func(*vango.Event), func(vango.Event) and
// func(string), the last receiving the event value. Other values yield nil.
func wrapHandler(value any) Handler {
	switch h := value.(type) {
	case func():
		return func(e *vango.Event) { h() }

	case func(*vango.Event):
		return h

	case func(vango.Event):
		return func(e *vango.Event) { h(*e) }

	case func(string):
		return func(e *vango.Event) { h(e.Value) }

	case Handler:
		return h

	default:
		return nil
	}
}
