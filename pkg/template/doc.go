// Package template wraps a pongo2 template set for the text generators.
// Template data is normalised through its JSON form, so templates address
// values by their json tag names.
package template
