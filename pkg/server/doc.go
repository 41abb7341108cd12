// Package server hosts component trees as live sessions over HTTP and
// WebSocket.
//
// A Session mounts a root component, keeps one ComponentInstance per mounted
// component, and after every client event re-renders exactly the components
// marked dirty. The composed tree is rendered to HTML and sent back whole;
// the thin client swaps it into the page.
//
//	srv := server.New(loginpage.App, server.DefaultServerConfig())
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Routes:
//
//	GET /         page shell with a freshly rendered tree
//	GET /ws       event transport (JSON messages)
//	GET /metrics  Prometheus exposition
//	GET /healthz  liveness
//
// Client messages are {"hid":"h3","type":"click","value":""}; replies are
// {"html":"...","preventDefault":true,"error":"..."} with empty fields
// omitted.
package server
