// Package rules holds validation-only generators. They write nothing and
// report the first tree element that breaks their rule as a
// generator.ValidationError.
package rules
