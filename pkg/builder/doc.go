// Package builder assembles the mutable Backend → Schema → Model → Field
// instance tree that generators consume.
//
// Every node lives in a single arena owned by the Backend. Parents store the
// ids of their children and the handles returned by the factory methods
// (Schema, Model, Field) are the same ids paired with the Backend, so a caller
// can keep mutating a node after it was appended and the change is visible to
// any later traversal from its parent:
//
//	backend := builder.NewBackend()
//	s, _ := backend.NewSchema("discordbot")
//	m, _ := s.NewModel("scheduled_alarm")
//	id, _ := m.NewInt("id")
//	id.SetDescription("primary key")
//
// Children keep creation order. Once the Backend is frozen (the dispatch
// pipeline does this before running generators) factories return ErrFrozen
// and setters are ignored; Backend.Err reports the ignored mutations.
package builder
