// Package view projects a builder.Tree into the shape a generator was
// authored against. A view type mirrors some subset of the tree: struct
// fields are matched by name (or by a `view:"name"` tag), nested records and
// slices are copied recursively, string-kinded values convert into plain
// strings, and any field the view does not declare is left out.
//
//	type FieldView struct {
//		Name string
//		Kind string `view:"Type"`
//	}
//
// A view whose root is a slice projects from Tree.Schemas; any other root
// projects from the Tree itself. Check validates a view type once, at
// registration time, so Project never fails while dispatching.
package view
