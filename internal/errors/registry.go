package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E100-E119)
	// ============================================

	"E101": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "Hooks must be called unconditionally and in the same order on every render of a component.",
	},
	"E102": {
		Category: CategoryRuntime,
		Message:  "Owner disposed",
		Detail:   "The component owner has been disposed. The component was unmounted before the call.",
	},
	"E110": {
		Category: CategoryRuntime,
		Message:  "Handler not found",
		Detail:   "No event handler is registered for this element. The component may have re-rendered without it.",
	},
	"E111": {
		Category: CategoryRuntime,
		Message:  "Handler panicked",
		Detail:   "An event handler panicked. The panic was recovered and the event was dropped.",
	},
	"E112": {
		Category: CategoryRuntime,
		Message:  "Session closed",
		Detail:   "The session has been closed and can no longer process events.",
	},
	"E113": {
		Category: CategoryRuntime,
		Message:  "Component render panicked",
		Detail:   "A component panicked while rendering. The render pass was abandoned.",
	},
	"E114": {
		Category: CategoryRuntime,
		Message:  "Session limit reached",
		Detail:   "The server is at its configured maximum number of sessions.",
	},

	// ============================================
	// Config Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "refstore.json could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// Protocol Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryProtocol,
		Message:  "Invalid event message",
		Detail:   "The client sent a message that is not a valid event.",
	},
	"E131": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
	},

	// ============================================
	// Store Errors (E200-E219)
	// ============================================

	"E201": {
		Category: CategoryStore,
		Message:  "Store accessor used outside its Provider",
		Detail:   "refstore.Use reads the store from the nearest Provider; no Provider for this context exists above the calling component.",
	},
	"E202": {
		Category: CategoryStore,
		Message:  "Store state must be a struct",
		Detail:   "Partial updates are merged field by field, so the state type must be a struct.",
	},
	"E203": {
		Category: CategoryStore,
		Message:  "Unknown field in partial update",
	},
	"E204": {
		Category: CategoryStore,
		Message:  "Partial update value has the wrong type",
	},

	// ============================================
	// Validation Errors (E300-E309)
	// ============================================

	"E300": {
		Category: CategoryValidation,
		Message:  "Validation failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
