package server

import (
	"context"
	"testing"

	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/features/refstore"
	"github.com/vango-dev/refstore/pkg/vango"
	"github.com/vango-dev/refstore/pkg/vdom"
)

type counterState struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

var counterStore = refstore.CreateRefContext(counterState{Label: "start"}, refstore.WithName("counter"))

type renderCounts struct {
	counter int
	labeler int
	static  int
}

// newCounterApp returns a root with a counter, a label editor and a static
// child sharing one store.
func newCounterApp() (func() *vdom.VNode, *renderCounts) {
	counts := &renderCounts{}

	counter := func() *vdom.VNode {
		counts.counter++
		count, set := refstore.Use(counterStore, func(s counterState) int { return s.Count })
		return vdom.Button(
			vdom.ID("inc"),
			vdom.OnClick(func() { set(refstore.Partial{"count": count + 1}) }),
			vdom.Textf("Count: %d", count),
		)
	}

	labeler := func() *vdom.VNode {
		counts.labeler++
		label, set := refstore.Use(counterStore, func(s counterState) string { return s.Label })
		return vdom.Div(
			vdom.Input(
				vdom.ID("label"),
				vdom.Value(label),
				vdom.OnInput(func(v string) { set(refstore.Partial{"label": v}) }),
			),
			vdom.Form(
				vdom.ID("form"),
				vdom.OnSubmit(func(e *vango.Event) { e.PreventDefault() }),
			),
			vdom.Button(
				vdom.ID("boom"),
				vdom.OnClick(func() { panic("boom") }),
			),
		)
	}

	static := func() *vdom.VNode {
		counts.static++
		return vdom.P(vdom.Text("static"))
	}

	root := func() *vdom.VNode {
		return counterStore.Provider(vdom.Func(counter), vdom.Func(labeler), vdom.Func(static))
	}
	return root, counts
}

func mountSession(t *testing.T, root func() *vdom.VNode) *Session {
	t.Helper()
	s := NewSession(root, nil, nil, nil)
	if err := s.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// hidOf returns the hydration ID of the element with the given id attribute.
func hidOf(t *testing.T, s *Session, id string) string {
	t.Helper()
	var found string
	var walk func(n *vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil || found != "" {
			return
		}
		if n.Props["id"] == id {
			found = n.HID
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.Tree())
	if found == "" {
		t.Fatalf("no hydrated element with id %q", id)
	}
	return found
}

func send(t *testing.T, s *Session, hid, typ, value string) (*ServerMessage, error) {
	t.Helper()
	return s.HandleEvent(context.Background(), &vango.Event{HID: hid, Type: typ, Value: value})
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := errors.Code(err); got != code {
		t.Fatalf("error code = %q (%v), want %s", got, err, code)
	}
}
