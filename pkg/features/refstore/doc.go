// Package refstore provides a shared state container with selective
// subscriptions for server-rendered components.
//
// A RefContext is declared once per state type. Each Provider rendered from
// it owns exactly one Store; components below the Provider read a derived
// slice of the state with Use and only re-render when that slice changes.
//
//	type AppState struct {
//	    Email string `json:"email"`
//	    Theme string `json:"theme"`
//	}
//
//	var App = refstore.CreateRefContext(AppState{Theme: "light"})
//
//	func Root() *vdom.VNode {
//	    return App.Provider(vdom.Func(ThemeToggle))
//	}
//
//	func ThemeToggle() *vdom.VNode {
//	    theme, set := refstore.Use(App, func(s AppState) string { return s.Theme })
//	    return vdom.Button(
//	        vdom.OnClick(func() { set(refstore.Partial{"theme": "dark"}) }),
//	        vdom.Text(theme),
//	    )
//	}
//
// Writes are partial updates keyed by the struct's JSON field names and are
// shallow-merged into the current state. Every write notifies every
// subscriber synchronously; filtering happens per component by comparing the
// selected value with the one it last rendered.
package refstore
