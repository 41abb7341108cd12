package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/features/refstore"
	"github.com/vango-dev/refstore/pkg/middleware"
	"github.com/vango-dev/refstore/pkg/render"
	"github.com/vango-dev/refstore/pkg/vango"
	"github.com/vango-dev/refstore/pkg/vdom"
)

// ServerMessage is the reply sent to the client after mount and after every
// event.
type ServerMessage struct {
	HTML           string `json:"html,omitempty"`
	PreventDefault bool   `json:"preventDefault,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ClientMessage is a DOM event forwarded by the client.
type ClientMessage struct {
	HID   string `json:"hid"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Session is one mounted component tree. Events are processed one at a
// time; a handler's store writes, the resulting dirty marks and the render
// pass all complete before the next event starts.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time

	rootFn   func() *vdom.VNode
	root     *ComponentInstance
	owner    *vango.Owner
	hidGen   *vdom.HIDGenerator
	handlers map[string]Handler
	tree     *vdom.VNode

	renderer *render.Renderer
	dispatch middleware.Handler
	metrics  *middleware.Metrics
	config   *SessionConfig
	logger   *slog.Logger

	opened     bool
	closed     atomic.Bool
	eventCount atomic.Uint64
	renders    atomic.Uint64
}

var _ refstore.Observer = (*Session)(nil)

// NewSession creates an unmounted session for root. metrics may be nil.
func NewSession(root func() *vdom.VNode, config *SessionConfig, logger *slog.Logger, metrics *middleware.Metrics) *Session {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default().With("component", "session")
	}

	now := time.Now()
	id := uuid.NewString()

	s := &Session{
		ID:         id,
		CreatedAt:  now,
		lastActive: now,
		rootFn:     root,
		owner:      vango.NewOwner(nil),
		hidGen:     vdom.NewHIDGenerator(),
		handlers:   make(map[string]Handler),
		renderer:   render.NewRenderer(render.RendererConfig{}),
		metrics:    metrics,
		config:     config,
		logger:     logger.With("session_id", id),
	}

	s.dispatch = middleware.Chain(s.handleEvent,
		middleware.OpenTelemetry(),
		metrics.Middleware(),
	)

	// Stores created under this session report their writes here.
	vango.WithOwner(s.owner, func() {
		refstore.ObserverContext.Set(s)
	})

	return s
}

// Mount renders the root component and all its descendants.
func (s *Session) Mount() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return errors.New("E112")
	}
	if s.root != nil {
		return fmt.Errorf("session %s already mounted", s.ID)
	}

	defer func() {
		if r := recover(); r != nil {
			err = s.renderPanic(r)
		}
	}()

	s.root = newComponentInstance(vdom.Func(s.rootFn), nil, s)
	s.root.InstanceID = "root"
	s.renderInstance(s.root)
	s.compose()

	s.opened = true
	s.metrics.SessionOpened()
	s.logger.Info("mounted root component",
		"handlers", len(s.handlers),
		"hid_counter", s.hidGen.Current())
	return nil
}

// HandleEvent runs the handler bound to ev, re-renders dirty components and
// returns the reply for the client. The reply carries HTML only if something
// re-rendered.
func (s *Session) HandleEvent(ctx context.Context, ev *vango.Event) (*ServerMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		err := errors.New("E112")
		return &ServerMessage{Error: err.Error()}, err
	}

	s.eventCount.Add(1)
	s.lastActive = time.Now()

	before := s.renders.Load()
	err := s.dispatch(middleware.WithSessionID(ctx, s.ID), ev)

	reply := &ServerMessage{PreventDefault: ev.DefaultPrevented()}
	if err != nil {
		reply.Error = err.Error()
	}
	if s.renders.Load() != before {
		html, rerr := s.renderer.RenderToString(s.tree)
		if rerr != nil {
			return reply, fmt.Errorf("render session %s: %w", s.ID, rerr)
		}
		reply.HTML = html
	}
	return reply, err
}

// handleEvent is the innermost middleware handler.
func (s *Session) handleEvent(ctx context.Context, ev *vango.Event) error {
	key := ev.HID + "_on" + strings.ToLower(ev.Type)
	handler, ok := s.handlers[key]
	if !ok {
		s.logger.Warn("handler not found", "hid", ev.HID, "type", ev.Type, "key", key)
		return errors.New("E110").WithDetail(key)
	}

	s.logger.Debug("event", "hid", ev.HID, "type", ev.Type)

	handlerErr := s.safeExecute(handler, ev)
	if err := s.renderDirty(); err != nil {
		return err
	}
	return handlerErr
}

// safeExecute runs a handler with panic recovery.
func (s *Session) safeExecute(handler Handler, ev *vango.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", ev.HID,
				"type", ev.Type,
				"stack", string(debug.Stack()))
			err = errors.New("E111").WithDetail(fmt.Sprint(r))
		}
	}()

	handler(ev)
	return nil
}

func (s *Session) renderPanic(r any) error {
	s.logger.Error("render panic", "panic", r, "stack", string(debug.Stack()))
	if err, ok := r.(error); ok {
		return errors.New("E113").Wrap(err)
	}
	return errors.New("E113").WithDetail(fmt.Sprint(r))
}

// renderDirty re-renders dirty components top-down until none are left,
// then recomposes the tree. A render that writes to a store can dirty
// components again; MaxRenderPasses bounds that loop.
func (s *Session) renderDirty() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = s.renderPanic(r)
		}
	}()

	total := 0
	for pass := 0; ; pass++ {
		if pass == s.config.MaxRenderPasses {
			s.logger.Warn("render passes exhausted", "passes", pass)
			break
		}
		n := s.renderDirtyIn(s.root)
		if n == 0 {
			break
		}
		total += n
	}

	if total > 0 {
		s.compose()
		s.metrics.RecordRenders(total)
		s.logger.Debug("rendered dirty components", "count", total)
	}
	return nil
}

// renderDirtyIn re-renders the topmost dirty instances below c and returns
// how many instances were rendered.
func (s *Session) renderDirtyIn(c *ComponentInstance) int {
	if c == nil {
		return 0
	}
	if c.IsDirty() {
		return s.renderInstance(c)
	}
	n := 0
	for _, child := range c.Children {
		n += s.renderDirtyIn(child)
	}
	return n
}

// renderInstance renders c and reconciles its children by position: the
// i-th component node in the output reuses the i-th child instance when it
// is the same component with the same key, otherwise the old instance is
// disposed and a new one mounted. Extra nodes mount new instances and
// leftover instances are disposed. Returns the number of instances rendered.
func (s *Session) renderInstance(c *ComponentInstance) int {
	c.ClearDirty()
	tree := c.Render()
	s.renders.Add(1)
	rendered := 1

	idx := 0
	eachComponentNode(tree, func(node *vdom.VNode) {
		var child *ComponentInstance
		switch {
		case idx >= len(c.Children):
			child = newComponentInstance(node.Comp, c, s)
			child.key = node.Key
			c.Children = append(c.Children, child)
		case c.Children[idx].key == node.Key && vdom.SameComponent(c.Children[idx].Component, node.Comp):
			child = c.Children[idx]
			child.Component = node.Comp
		default:
			c.Children[idx].Dispose()
			child = newComponentInstance(node.Comp, c, s)
			child.key = node.Key
			c.Children[idx] = child
		}
		idx++
		rendered += s.renderInstance(child)
	})

	for i := len(c.Children) - 1; i >= idx; i-- {
		c.Children[i].Dispose()
	}
	c.Children = c.Children[:idx]

	return rendered
}

// compose builds the session tree by substituting each component node with
// its instance's output, assigns hydration IDs and rebuilds the handler map.
func (s *Session) compose() {
	idx := 0
	tree := s.composeNode(s.root.lastTree, s.root, &idx)

	s.hidGen.Reset()
	vdom.AssignHIDs(tree, s.hidGen)

	handlers := make(map[string]Handler)
	collectHandlers(tree, handlers)

	s.tree = tree
	s.handlers = handlers
}

func (s *Session) composeNode(node *vdom.VNode, c *ComponentInstance, idx *int) *vdom.VNode {
	if node == nil {
		return nil
	}
	if node.Kind == vdom.KindComponent {
		if node.Comp == nil || *idx >= len(c.Children) {
			return nil
		}
		child := c.Children[*idx]
		*idx++
		childIdx := 0
		return s.composeNode(child.lastTree, child, &childIdx)
	}

	cp := *node
	cp.HID = ""
	if len(node.Children) > 0 {
		cp.Children = make([]*vdom.VNode, 0, len(node.Children))
		for _, ch := range node.Children {
			if composed := s.composeNode(ch, c, idx); composed != nil {
				cp.Children = append(cp.Children, composed)
			}
		}
	}
	return &cp
}

// collectHandlers registers every on* prop of nodes with a HID under
// "<hid>_<prop>", e.g. "h1_onclick".
func collectHandlers(node *vdom.VNode, handlers map[string]Handler) {
	if node == nil {
		return
	}
	if node.HID != "" {
		for key, value := range node.Props {
			if !strings.HasPrefix(key, "on") {
				continue
			}
			if h := wrapHandler(value); h != nil {
				handlers[node.HID+"_"+strings.ToLower(key)] = h
			}
		}
	}
	for _, child := range node.Children {
		collectHandlers(child, handlers)
	}
}

// StoreSet implements refstore.Observer.
func (s *Session) StoreSet(store string, keys []string, subscribers int) {
	s.logger.Debug("store set", "store", store, "keys", keys, "subscribers", subscribers)
	s.metrics.StoreSet(store, keys, subscribers)
}

// HTML renders the current tree.
func (s *Session) HTML() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderToString(s.tree)
}

// WritePage writes a full HTML document for the current tree.
func (s *Session) WritePage(w io.Writer, title, wsPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderPage(w, render.PageData{
		Body:      s.tree,
		Title:     title,
		SessionID: s.ID,
		WSPath:    wsPath,
	})
}

// Tree returns the composed tree with hydration IDs assigned.
func (s *Session) Tree() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Handlers returns the registered handler keys.
func (s *Session) Handlers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.handlers))
	for k := range s.handlers {
		keys = append(keys, k)
	}
	return keys
}

// LastActive returns when the session last processed an event.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Close disposes the component tree. Safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root != nil {
		s.root.Dispose()
		s.root = nil
	}
	s.owner.Dispose()
	s.handlers = nil

	if s.opened {
		s.metrics.SessionClosed()
	}
	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"renders", s.renders.Load())
}
