/*
errors.go - Centralized error types for the timesheet engine

PURPOSE:
  All sentinel errors in one place. Collaborator-call failures are
  caught at the call site, logged, and surfaced to the user; none are
  retried automatically. Malformed numeric input is NOT an error (see
  payroll.go coercion policy).

USAGE:
  if errors.Is(err, timesheet.ErrEntryNotFound) { ... }
*/
package timesheet

import "errors"

var (
	// ErrEntryNotFound is returned when a persisted entry id has no record.
	ErrEntryNotFound = errors.New("timesheet entry not found")

	// ErrAgentNotFound is returned when a referenced agent doesn't exist.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrNotPersisted is returned when an operation requires a saved
	// entry but was given a transient one.
	ErrNotPersisted = errors.New("entry is not persisted")

	// ErrAlreadyPersisted is returned when creating an entry that
	// already carries a store-assigned id.
	ErrAlreadyPersisted = errors.New("entry is already persisted")

	// ErrInvalidStatus is returned for an unknown approval status value.
	ErrInvalidStatus = errors.New("invalid approval status")

	// ErrOutsideHorizon is returned when a date falls outside the
	// configured week-generation horizon.
	ErrOutsideHorizon = errors.New("date outside configured horizon")
)

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrAgentNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrNotPersisted) ||
		errors.Is(err, ErrAlreadyPersisted) ||
		errors.Is(err, ErrOutsideHorizon)
}
