/*
store.go - Persistence interfaces for the timesheet console

PURPOSE:
  Defines the boundary between the engine and the persistence
  collaborator. The console consumes exactly five operations: list
  agents, list entries, create, update, delete. Implementations:
  - store/sqlite/sqlite.go: production SQLite
  - timesheet/store/memory.go: in-memory for testing/dev

ID ASSIGNMENT:
  CreateEntry receives a transient entry (empty ID) and returns the
  persisted copy with the store-assigned ID. Update and Delete require
  a persisted ID.
*/
package timesheet

import "context"

// EntryStore persists timesheet entries.
type EntryStore interface {
	// ListEntries returns all persisted entries.
	ListEntries(ctx context.Context) ([]TimesheetEntry, error)

	// CreateEntry persists a transient entry and returns it with the
	// assigned ID. Returns ErrAlreadyPersisted when the entry already
	// carries an ID.
	CreateEntry(ctx context.Context, e TimesheetEntry) (TimesheetEntry, error)

	// UpdateEntry overwrites the persisted record for e.ID.
	UpdateEntry(ctx context.Context, e TimesheetEntry) error

	// DeleteEntry removes the persisted record.
	DeleteEntry(ctx context.Context, id EntryID) error
}

// AgentDirectory supplies the read-only agent list.
type AgentDirectory interface {
	ListAgents(ctx context.Context) ([]Agent, error)
}
