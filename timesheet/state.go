/*
state.go - Explicit console state container

PURPOSE:
  Holds the in-memory entry collection, the agent list, and the filter
  parameters that the shipped console kept as ad hoc component-local
  state. Making the container explicit lets the calendar generator,
  entry resolver, and query engine be exercised without any rendering
  harness.

TWO-PHASE EDITS:
  An edit is "apply locally" followed by "reconcile against the
  collaborator response". Field edits (hours, rate, approval, paid
  flag) mutate the local representation immediately. Save and delete
  then talk to the collaborator:
  - a failed save leaves the optimistic local mutation in place and
    returns the error; recovery is a subsequent full Load
  - a failed delete leaves the entry in the collection
  - a failed Load falls back to empty collections so the caller can
    render an empty state instead of crashing

CONCURRENCY:
  The console runs one single-threaded session; State carries no
  locking. Callers that share a State across goroutines must
  serialize access themselves (the HTTP handler does).
*/
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// State is the injectable container for the console's working set.
type State struct {
	Entries []TimesheetEntry
	Agents  []Agent
	Filters QueryOptions
	Horizon Horizon

	entries EntryStore
	agents  AgentDirectory
}

// NewState creates a state container over the given collaborators,
// using the default five-year horizon.
func NewState(entries EntryStore, agents AgentDirectory) *State {
	return &State{
		entries: entries,
		agents:  agents,
		Horizon: DefaultHorizon(),
	}
}

// =============================================================================
// LOAD / REFRESH
// =============================================================================

// Load refetches agents and entries from the collaborators. Any list
// that fails to load is replaced with an empty collection; the error
// is returned so the caller can surface it.
func (s *State) Load(ctx context.Context) error {
	var errs []error

	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		agents = nil
		errs = append(errs, fmt.Errorf("list agents: %w", err))
	}
	s.Agents = agents

	entries, err := s.entries.ListEntries(ctx)
	if err != nil {
		entries = nil
		errs = append(errs, fmt.Errorf("list entries: %w", err))
	}
	s.Entries = entries

	return errors.Join(errs...)
}

// AgentNames returns the id -> display name map for the loaded agents.
func (s *State) AgentNames() map[AgentID]string {
	names := make(map[AgentID]string, len(s.Agents))
	for _, a := range s.Agents {
		names[a.ID] = a.Name
	}
	return names
}

// =============================================================================
// RESOLUTION AND LOCAL-PHASE EDITS
// =============================================================================

// Resolve returns the entry for the agent's week enclosing the date,
// persisted or transient, without mutating the collection.
func (s *State) Resolve(agentID AgentID, date time.Time) TimesheetEntry {
	return ResolveEntry(agentID, date, s.Entries)
}

// SetHours applies an hours edit locally and returns the updated entry.
func (s *State) SetHours(e TimesheetEntry, raw string) TimesheetEntry {
	updated := SetHoursWorked(e, raw)
	s.applyLocal(updated)
	return updated
}

// SetRate applies a rate edit locally and returns the updated entry.
func (s *State) SetRate(e TimesheetEntry, raw string) TimesheetEntry {
	updated := SetHourlyRate(e, raw)
	s.applyLocal(updated)
	return updated
}

// SetApproval applies an approval transition locally.
func (s *State) SetApproval(e TimesheetEntry, next ApprovalStatus, comment string) (TimesheetEntry, error) {
	updated, err := Transition(e, next, comment)
	if err != nil {
		return e, err
	}
	s.applyLocal(updated)
	return updated, nil
}

// SetPaidToBank toggles the paid flag locally.
func (s *State) SetPaidToBank(e TimesheetEntry, paid PaidStatus) TimesheetEntry {
	e.PaidToBank = paid
	s.applyLocal(e)
	return e
}

// applyLocal replaces the collection's copy of a persisted entry.
// Transient entries live only in the caller's hands until saved.
func (s *State) applyLocal(e TimesheetEntry) {
	if !e.Persisted() {
		return
	}
	for i := range s.Entries {
		if s.Entries[i].ID == e.ID {
			s.Entries[i] = e
			return
		}
	}
}

// =============================================================================
// PERSIST-PHASE OPERATIONS
// =============================================================================

// SaveEntry reconciles an edited entry with the collaborator. Persisted
// entries are applied locally first (optimistic) and then updated; a
// failed update keeps the local mutation. Transient entries are created
// and appended to the collection with the store-assigned id. Duplicate
// (agent, week) creation is deliberately permitted; the shipped console
// never enforced uniqueness and this preserves that behavior.
func (s *State) SaveEntry(ctx context.Context, e TimesheetEntry) (TimesheetEntry, error) {
	if e.Persisted() {
		s.applyLocal(e)
		if err := s.entries.UpdateEntry(ctx, e); err != nil {
			return e, fmt.Errorf("update entry %s: %w", e.ID, err)
		}
		return e, nil
	}

	created, err := s.entries.CreateEntry(ctx, e)
	if err != nil {
		return e, fmt.Errorf("create entry for agent %s: %w", e.AgentID, err)
	}
	s.Entries = append(s.Entries, created)
	return created, nil
}

// DeleteEntry removes a persisted entry. The local copy is dropped only
// after the collaborator confirms; a failed delete keeps it visible.
func (s *State) DeleteEntry(ctx context.Context, id EntryID) error {
	if id == "" {
		return ErrNotPersisted
	}
	if err := s.entries.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			break
		}
	}
	return nil
}

// =============================================================================
// DISPLAY QUERY
// =============================================================================

// Query runs the query engine over the local collection with agent
// names resolved from the loaded directory.
func (s *State) Query(opts QueryOptions) QueryResult {
	return Query(s.Entries, s.AgentNames(), opts)
}
