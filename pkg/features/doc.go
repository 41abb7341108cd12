// Package features groups the state and input APIs built on the vango
// runtime.
//
//   - refstore: selective-subscription stores scoped to a Provider
//   - form: field validators and object schemas
//
// Each subsystem is its own package:
//
//	import "github.com/vango-dev/refstore/pkg/features/refstore"
//	import "github.com/vango-dev/refstore/pkg/features/form"
package features
