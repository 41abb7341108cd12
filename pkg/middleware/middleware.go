package middleware

import (
	"context"

	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/vango"
)

// Handler processes one client event.
type Handler func(ctx context.Context, ev *vango.Event) error

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain applies mws around h. The first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type sessionIDKey struct{}

// WithSessionID returns ctx carrying the session ID for spans and logs.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionID returns the session ID stored in ctx, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// status maps an event error to a low-cardinality label.
func status(err error) string {
	if err == nil {
		return "ok"
	}
	switch errors.Code(err) {
	case "E110":
		return "not_found"
	case "E111":
		return "panic"
	case "E112":
		return "closed"
	default:
		return "error"
	}
}
