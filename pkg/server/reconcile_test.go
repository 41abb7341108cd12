package server

import (
	"strings"
	"testing"

	"github.com/vango-dev/refstore/pkg/features/refstore"
	"github.com/vango-dev/refstore/pkg/vdom"
)

type swapState struct {
	ShowA bool `json:"showA"`
	Count int  `json:"count"`
}

var swapStore = refstore.CreateRefContext(swapState{ShowA: true}, refstore.WithName("swap"))

type swapApp struct {
	store    *refstore.Store[swapState]
	aRenders int
	bRenders int
}

// newSwapApp returns a root whose parent shows a count reader while ShowA
// holds. With withB set, a static reader takes its place; otherwise the
// slot is left empty.
func newSwapApp(withB bool) (func() *vdom.VNode, *swapApp) {
	app := &swapApp{}

	a := func() *vdom.VNode {
		app.aRenders++
		count, _ := refstore.Use(swapStore, func(s swapState) int { return s.Count })
		return vdom.P(vdom.ID("a"), vdom.Textf("A: %d", count))
	}
	b := func() *vdom.VNode {
		app.bRenders++
		show, _ := refstore.Use(swapStore, func(s swapState) bool { return s.ShowA })
		return vdom.P(vdom.ID("b"), vdom.Textf("B: %t", show))
	}

	parent := func() *vdom.VNode {
		app.store = swapStore.Store()
		show, set := refstore.Use(swapStore, func(s swapState) bool { return s.ShowA })
		var slot *vdom.VNode
		if withB {
			slot = vdom.IfElse(show, vdom.Mount(vdom.Func(a)), vdom.Mount(vdom.Func(b)))
		} else {
			slot = vdom.If(show, vdom.Mount(vdom.Func(a)))
		}
		return vdom.Div(
			vdom.Button(vdom.ID("toggle"), vdom.OnClick(func() { set(refstore.Partial{"showA": !show}) })),
			vdom.Button(vdom.ID("bump"), vdom.OnClick(func() {
				app.store.Set(refstore.Partial{"count": app.store.Get().Count + 1})
			})),
			slot,
		)
	}

	root := func() *vdom.VNode { return swapStore.Provider(vdom.Func(parent)) }
	return root, app
}

func click(t *testing.T, s *Session, id string) string {
	t.Helper()
	reply, err := send(t, s, hidOf(t, s, id), "click", "")
	if err != nil {
		t.Fatalf("click %s: HandleEvent() error = %v", id, err)
	}
	return reply.HTML
}

func TestSessionSwapComponentUnsubscribes(t *testing.T) {
	root, app := newSwapApp(true)
	s := mountSession(t, root)

	if got := app.store.Len(); got != 2 {
		t.Fatalf("Len() after mount = %d, want 2", got)
	}

	for i := 0; i < 3; i++ {
		click(t, s, "toggle")
		if got, want := app.store.Len(), 2; got != want {
			t.Fatalf("Len() after toggle %d = %d, want %d", i+1, got, want)
		}
	}

	// B is showing; count writes must reach nobody but the parent's
	// unchanged selection.
	rendersBefore := app.bRenders
	aBefore := app.aRenders
	for i := 0; i < 5; i++ {
		click(t, s, "bump")
	}
	if got := app.store.Len(); got != 2 {
		t.Errorf("Len() after bumps = %d, want 2", got)
	}
	if app.bRenders != rendersBefore {
		t.Errorf("B renders = %d, want %d", app.bRenders, rendersBefore)
	}
	if app.aRenders != aBefore {
		t.Errorf("unmounted A rendered %d times", app.aRenders-aBefore)
	}

	html := click(t, s, "toggle")
	if !strings.Contains(html, "A: 5") {
		t.Errorf("remounted A should read fresh state:\n%s", html)
	}
	if strings.Contains(html, "B:") {
		t.Errorf("B should be gone after swap:\n%s", html)
	}
}

func TestSessionRemoveComponentUnsubscribes(t *testing.T) {
	root, app := newSwapApp(false)
	s := mountSession(t, root)

	tests := []struct {
		name    string
		wantLen int
		wantA   bool
	}{
		{"hide", 1, false},
		{"show", 2, true},
		{"hide again", 1, false},
	}
	for _, tt := range tests {
		html := click(t, s, "toggle")
		if got := app.store.Len(); got != tt.wantLen {
			t.Errorf("%s: Len() = %d, want %d", tt.name, got, tt.wantLen)
		}
		if got := strings.Contains(html, "A:"); got != tt.wantA {
			t.Errorf("%s: A rendered = %v, want %v", tt.name, got, tt.wantA)
		}
	}

	aBefore := app.aRenders
	click(t, s, "bump")
	if app.aRenders != aBefore {
		t.Errorf("removed A rendered after count write")
	}
}
