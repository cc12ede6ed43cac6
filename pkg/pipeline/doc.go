// Package pipeline wires the dependency check → freeze → rules → generators
// sequence: it validates field-set dependencies against a schema catalog,
// freezes and snapshots a builder backend, then runs every registered
// generator in order, collecting a Report of their outputs and failures.
package pipeline
