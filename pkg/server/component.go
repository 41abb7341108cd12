package server

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/refstore/pkg/vango"
	"github.com/vango-dev/refstore/pkg/vdom"
)

// ComponentInstance is a mounted component: its owner scope, its last
// rendered output and its mounted children, in tree order.
type ComponentInstance struct {
	// InstanceID is the unique instance identifier.
	InstanceID string

	// Component is the component being rendered.
	Component vdom.Component

	// Owner scopes hook slots, context values and cleanups.
	Owner *vango.Owner

	// Parent is the parent component instance (nil for root).
	Parent *ComponentInstance

	// Children are child component instances in tree order.
	Children []*ComponentInstance

	key      string
	depth    int
	dirty    atomic.Bool
	session  *Session
	lastTree *vdom.VNode
}

var _ vango.Listener = (*ComponentInstance)(nil)

var componentIDCounter atomic.Uint64

func generateComponentID() string {
	return fmt.Sprintf("c%d", componentIDCounter.Add(1))
}

func newComponentInstance(component vdom.Component, parent *ComponentInstance, session *Session) *ComponentInstance {
	var parentOwner *vango.Owner
	depth := 0
	if parent != nil {
		parentOwner = parent.Owner
		depth = parent.depth + 1
	} else if session != nil {
		parentOwner = session.owner
	}

	return &ComponentInstance{
		InstanceID: generateComponentID(),
		Component:  component,
		Owner:      vango.NewOwner(parentOwner),
		Parent:     parent,
		depth:      depth,
		session:    session,
	}
}

// Render runs the component with its owner and itself as listener, so hooks
// called during render subscribe this instance.
func (c *ComponentInstance) Render() *vdom.VNode {
	if c.Component == nil {
		return nil
	}

	var tree *vdom.VNode
	vango.WithOwner(c.Owner, func() {
		c.Owner.StartRender()
		defer c.Owner.EndRender()

		vango.WithListener(c, func() {
			tree = c.Component.Render()
		})
	})

	c.lastTree = tree
	return tree
}

// MarkDirty marks the component as needing re-render. The session picks it
// up after the current event handler returns.
func (c *ComponentInstance) MarkDirty() {
	if c.dirty.CompareAndSwap(false, true) && c.session != nil {
		c.session.logger.Debug("component marked dirty", "component", c.InstanceID)
	}
}

// ID implements vango.Listener.
func (c *ComponentInstance) ID() uint64 {
	if c.Owner != nil {
		return c.Owner.ID()
	}
	return 0
}

// IsDirty returns whether the component needs re-rendering.
func (c *ComponentInstance) IsDirty() bool {
	return c.dirty.Load()
}

// ClearDirty clears the dirty flag.
func (c *ComponentInstance) ClearDirty() {
	c.dirty.Store(false)
}

// Depth returns the distance from the root instance.
func (c *ComponentInstance) Depth() int {
	return c.depth
}

// LastTree returns the last rendered VNode tree.
func (c *ComponentInstance) LastTree() *vdom.VNode {
	return c.lastTree
}

// Dispose disposes the component instance and all its children. The owner's
// cleanups run, which removes store subscriptions made by hooks.
func (c *ComponentInstance) Dispose() {
	for i := len(c.Children) - 1; i >= 0; i-- {
		c.Children[i].Dispose()
	}
	c.Children = nil

	if c.Owner != nil {
		c.Owner.Dispose()
	}

	c.Component = nil
	c.lastTree = nil
}

// eachComponentNode calls fn for every KindComponent node in tree order,
// without descending into them.
func eachComponentNode(node *vdom.VNode, fn func(*vdom.VNode)) {
	if node == nil {
		return
	}
	if node.Kind == vdom.KindComponent {
		if node.Comp != nil {
			fn(node)
		}
		return
	}
	for _, child := range node.Children {
		eachComponentNode(child, fn)
	}
}
