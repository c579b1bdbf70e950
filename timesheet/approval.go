/*
approval.go - Approval lifecycle for timesheet entries

STATES:
  not_approved (initial) | approved | conditionally_approved

  Transitions are unrestricted: any state is reachable from any other
  and there is no terminal state. The status is descriptive metadata;
  it gates neither payroll computation nor deletion.

COMMENT RULE:
  Moving to any state other than conditionally_approved clears the
  conditional comment. Moving to conditionally_approved accepts free
  text for it.
*/
package timesheet

import "fmt"

type ApprovalStatus string

const (
	StatusNotApproved           ApprovalStatus = "not_approved"
	StatusApproved              ApprovalStatus = "approved"
	StatusConditionallyApproved ApprovalStatus = "conditionally_approved"
)

// Valid reports whether s is one of the three known statuses.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusNotApproved, StatusApproved, StatusConditionallyApproved:
		return true
	}
	return false
}

// Transition moves an entry to the given status. The comment argument
// is honored only when the new status is conditionally_approved;
// otherwise the stored comment is cleared.
func Transition(e TimesheetEntry, next ApprovalStatus, comment string) (TimesheetEntry, error) {
	if !next.Valid() {
		return e, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	e.ApprovalStatus = next
	if next == StatusConditionallyApproved {
		e.ConditionalComment = comment
	} else {
		e.ConditionalComment = ""
	}
	return e, nil
}
