// Package schema defines the metadata model that describes what a builder tree
// may contain. A field-set definition is an ordered list of descriptors, each
// either a scalar leaf or a nested node (optionally repeated). Schema types
// publish their definition through the Describer capability; the Catalog
// collects definitions, composes `extends` chains, expands nested references,
// and enforces forced extensions against the dependencies declared by
// generators. Everything in this package is pure data: descriptors are never
// mutated once handed out and every accessor returns a fresh copy.
package schema
