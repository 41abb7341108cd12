// Package middleware wraps session event handling with tracing and metrics.
//
// A session processes each client event through a Handler. Middleware wrap
// that handler:
//
//	m := middleware.Prometheus(middleware.WithNamespace("refstore"))
//	h := middleware.Chain(handleEvent,
//	    middleware.OpenTelemetry(),
//	    m.Middleware(),
//	)
//
// # OpenTelemetry
//
// One span per event named "refstore.<type>" with the event type, target
// HID and session ID as attributes. The tracer comes from the global
// provider; configure it with otel.SetTracerProvider before serving.
//
// # Prometheus
//
// Metrics are registered on the registry passed with WithRegistry, or on a
// fresh private registry. Handler serves that registry.
//
//   - refstore_events_total{type,status}
//   - refstore_event_duration_seconds{type}
//   - refstore_render_passes_total
//   - refstore_active_sessions
//   - refstore_sessions_total
//   - refstore_store_writes_total{store}
package middleware
