// Package render turns composed VNode trees into HTML.
//
// The host runtime composes component output into a single tree, assigns
// hydration IDs to interactive elements and then renders it:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(tree)
//
// Elements carrying a HID are written with a data-hid attribute and one
// data-on-<event> marker per bound handler so the thin client knows which
// DOM events to forward over the websocket.
//
// RenderPage wraps a body in a full HTML document together with the inline
// client script.
//
// All text content is escaped. KindRaw nodes are written verbatim and must
// only carry trusted content.
package render
