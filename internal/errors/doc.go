// Package errors provides coded, actionable errors for refstore.
//
// Every error carries a short code (e.g. "E201") that maps to a registered
// template with a category, a one-line message and a longer explanation.
// Programmer misuse of the store (an accessor outside its Provider, a patch
// naming a field the state does not have) panics with one of these errors so
// the code shows up in the stack trace and in logs.
//
// # Usage
//
//	panic(errors.New("E201").
//	    WithDetail("refstore.Use called for AppStore").
//	    WithSuggestion("Render the component inside ctx.Provider(...)"))
//
// Errors are also wrapped around lower-level failures:
//
//	return errors.New("E120").Wrap(err)
package errors
