/*
entry.go - Timesheet entry model and (agent, week) resolution

PURPOSE:
  Defines the TimesheetEntry record and the resolver that maps an
  (agent, date) pair to either the persisted entry for that agent's
  week or a freshly synthesized zero-valued transient entry.

LIFECYCLE:
  transient (no ID)  --save-->  persisted (store-assigned ID)
  A transient entry is never added to the collection as a side effect
  of resolution; it only becomes visible once explicitly saved.

PRECISION:
  Hours, rate and total use decimal.Decimal so the derived total is
  exact under multiplication. See payroll.go for the edit rules.
*/
package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type AgentID string
type EntryID string

// Agent is a read-only record supplied by the agent directory.
type Agent struct {
	ID   AgentID
	Name string
}

// PaidStatus marks whether an entry's amount has been paid out.
type PaidStatus string

const (
	PaidYes PaidStatus = "yes"
	PaidNo  PaidStatus = "no"
)

// =============================================================================
// TIMESHEET ENTRY
// =============================================================================

// TimesheetEntry is one agent's pay record for one calendar week.
// TotalAmount is derived and never independently settable; all edits
// to HoursWorked or HourlyRate go through payroll.go.
type TimesheetEntry struct {
	ID      EntryID // empty until persisted
	AgentID AgentID
	Week    WeekDescriptor

	HoursWorked decimal.Decimal
	HourlyRate  decimal.Decimal
	TotalAmount decimal.Decimal

	ApprovalStatus     ApprovalStatus
	ConditionalComment string // meaningful only when conditionally approved
	PaidToBank         PaidStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Persisted reports whether the entry has been saved to the collaborator.
func (e TimesheetEntry) Persisted() bool { return e.ID != "" }

// NewTransientEntry synthesizes a zero-valued entry for an agent/week pair.
func NewTransientEntry(agentID AgentID, week WeekDescriptor) TimesheetEntry {
	return TimesheetEntry{
		AgentID:        agentID,
		Week:           week,
		HoursWorked:    decimal.Zero,
		HourlyRate:     decimal.Zero,
		TotalAmount:    decimal.Zero,
		ApprovalStatus: StatusNotApproved,
		PaidToBank:     PaidNo,
	}
}

// =============================================================================
// ENTRY RESOLUTION
// =============================================================================

// ResolveEntry returns the persisted entry whose agent and week start
// match the resolved week of the given date, or a transient zero-valued
// entry when none exists. Resolution has no side effect on the
// collection: calling it twice with the same inputs returns value-equal
// results. When duplicate persisted entries exist for the same
// agent/week (creation is permissive, see State.SaveEntry), the first
// in collection order wins.
func ResolveEntry(agentID AgentID, date time.Time, persisted []TimesheetEntry) TimesheetEntry {
	week := ResolveWeek(date)
	for _, e := range persisted {
		if e.AgentID == agentID && e.Week.WeekStart.Equal(week.WeekStart) {
			return e
		}
	}
	return NewTransientEntry(agentID, week)
}
