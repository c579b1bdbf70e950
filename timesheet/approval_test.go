package timesheet_test

import (
	"errors"
	"testing"

	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// APPROVAL TRANSITION TESTS
// =============================================================================

func TestTransition_AnyStateReachableFromAnyOther(t *testing.T) {
	// GIVEN: All nine ordered pairs of known statuses
	// WHEN: Transitioning between them
	// THEN: Every transition succeeds

	statuses := []timesheet.ApprovalStatus{
		timesheet.StatusNotApproved,
		timesheet.StatusApproved,
		timesheet.StatusConditionallyApproved,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			e := blankEntry()
			e.ApprovalStatus = from

			got, err := timesheet.Transition(e, to, "")
			if err != nil {
				t.Errorf("transition %s -> %s failed: %v", from, to, err)
				continue
			}
			if got.ApprovalStatus != to {
				t.Errorf("transition %s -> %s landed on %s", from, to, got.ApprovalStatus)
			}
		}
	}
}

func TestTransition_ConditionalAcceptsComment(t *testing.T) {
	// GIVEN: A not-approved entry
	// WHEN: Moving it to conditionally_approved with a comment
	// THEN: The comment is stored

	e := blankEntry()
	got, err := timesheet.Transition(e, timesheet.StatusConditionallyApproved, "pending client sign-off")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ConditionalComment != "pending client sign-off" {
		t.Errorf("expected comment stored, got %q", got.ConditionalComment)
	}
}

func TestTransition_LeavingConditionalClearsComment(t *testing.T) {
	// GIVEN: A conditionally approved entry with a comment
	// WHEN: Moving it to approved
	// THEN: The comment is cleared

	e := blankEntry()
	e, _ = timesheet.Transition(e, timesheet.StatusConditionallyApproved, "verify hours")

	got, err := timesheet.Transition(e, timesheet.StatusApproved, "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ConditionalComment != "" {
		t.Errorf("expected comment cleared, got %q", got.ConditionalComment)
	}
}

func TestTransition_CommentIgnoredForNonConditional(t *testing.T) {
	// GIVEN: A fresh entry
	// WHEN: Moving to approved with a comment supplied
	// THEN: The comment is discarded

	got, err := timesheet.Transition(blankEntry(), timesheet.StatusApproved, "should vanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ConditionalComment != "" {
		t.Errorf("expected no comment, got %q", got.ConditionalComment)
	}
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	// GIVEN: A status outside the known set
	// WHEN: Transitioning
	// THEN: ErrInvalidStatus is returned and the entry is unchanged

	e := blankEntry()
	got, err := timesheet.Transition(e, "rejected", "")
	if !errors.Is(err, timesheet.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if got.ApprovalStatus != e.ApprovalStatus {
		t.Errorf("entry mutated on invalid transition: %s", got.ApprovalStatus)
	}
}

func TestTransition_DoesNotTouchPayrollFields(t *testing.T) {
	// GIVEN: An entry with hours and rate set
	// WHEN: Approving it
	// THEN: The payroll fields are untouched

	e := blankEntry()
	e = timesheet.SetHoursWorked(e, "37.5")
	e = timesheet.SetHourlyRate(e, "18.00")

	got, err := timesheet.Transition(e, timesheet.StatusApproved, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.HoursWorked.Equal(e.HoursWorked) || !got.TotalAmount.Equal(e.TotalAmount) {
		t.Errorf("approval mutated payroll fields: %+v", got)
	}
}
