/*
Package timesheet provides the weekly scheduling and payroll engine.

PURPOSE:
  This package contains the pure computation core behind the timesheet
  console: enumerating calendar weeks over a multi-year horizon,
  resolving an (agent, week) pair to a pay entry, recomputing payroll
  totals, and driving the approval lifecycle. Everything here is
  deterministic and store-agnostic; persistence is reached only
  through the interfaces in store.go.

KEY CONCEPTS IN THIS FILE (week.go):
  - WeekDescriptor: A week's boundaries plus its display labels
  - ResolveWeek:    Any date -> its enclosing Sunday-to-Saturday week
  - Horizon:        The fixed date range weeks are enumerated over
  - GenerateWeeks:  The gapless, restartable week sequence

CALENDAR RULES:
  1. Weeks run Sunday 00:00:00.000 through Saturday 23:59:59.999.
  2. A week's ordinal counts weeks whose START falls in the month:
     ordinal = floor((weekStart - firstOfMonth) / 7) + 1.
     A week spanning a month boundary is numbered by its start month
     only, so ordinals reset per month rather than following an
     ISO week-of-year scheme. This matches the shipped console and
     is deliberately preserved.
  3. All dates are normalized to UTC midnight before any arithmetic.

SEE ALSO:
  - entry.go:   TimesheetEntry embeds a WeekDescriptor
  - payroll.go: Derived-total recomputation
*/
package timesheet

import (
	"fmt"
	"time"
)

// =============================================================================
// WEEK DESCRIPTOR - Boundaries and display labels for one calendar week
// =============================================================================

type WeekDescriptor struct {
	WeekStart  time.Time // Sunday 00:00:00.000 UTC
	WeekEnd    time.Time // Saturday 23:59:59.999 UTC
	WeekNumber string    // "Week N of <Month> <Year>"
	DateRange  string    // human label spanning WeekStart..WeekEnd
}

// SameWeek reports whether two descriptors describe the same week.
func (w WeekDescriptor) SameWeek(other WeekDescriptor) bool {
	return w.WeekStart.Equal(other.WeekStart)
}

// ResolveWeek returns the descriptor of the week enclosing the given date.
// The time-of-day portion of the input is dropped before resolution.
func ResolveWeek(d time.Time) WeekDescriptor {
	day := truncateToDay(d)
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	endDay := weekStart.AddDate(0, 0, 6)
	weekEnd := time.Date(endDay.Year(), endDay.Month(), endDay.Day(),
		23, 59, 59, 999*int(time.Millisecond), time.UTC)

	ordinal := (weekStart.Day()-1)/7 + 1

	return WeekDescriptor{
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		WeekNumber: fmt.Sprintf("Week %d of %s %d", ordinal, weekStart.Month(), weekStart.Year()),
		DateRange:  rangeLabel(weekStart, endDay),
	}
}

func truncateToDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// rangeLabel collapses the month and year when both boundaries share them.
func rangeLabel(start, end time.Time) string {
	if start.Month() == end.Month() && start.Year() == end.Year() {
		return fmt.Sprintf("%s %d–%d, %d", start.Month(), start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d, %d – %s %d, %d",
		start.Month(), start.Day(), start.Year(),
		end.Month(), end.Day(), end.Year())
}

// =============================================================================
// HORIZON - The fixed range weeks are enumerated over
// =============================================================================

type Horizon struct {
	Start time.Time
	End   time.Time
}

// DefaultHorizon spans the first day of December 2025 through the last
// day of December five years later.
func DefaultHorizon() Horizon {
	return NewHorizon(2025, time.December, 5)
}

// NewHorizon builds a horizon from the first day of the given month
// through the last day of the same month `years` later.
func NewHorizon(year int, month time.Month, years int) Horizon {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+years, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return Horizon{Start: start, End: end}
}

// WeekCount returns the number of weeks GenerateWeeks will produce,
// computed directly from the horizon length.
func (h Horizon) WeekCount() int {
	days := int(truncateToDay(h.End).Sub(truncateToDay(h.Start)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days/7 + 1
}

// Contains reports whether a week descriptor belongs to the sequence
// this horizon generates.
func (h Horizon) Contains(w WeekDescriptor) bool {
	first := ResolveWeek(h.Start).WeekStart
	last := ResolveWeek(h.End).WeekStart
	return !w.WeekStart.Before(first) && !w.WeekStart.After(last)
}

// GenerateWeeks enumerates the week sequence for the horizon. Starting
// from the horizon start, it resolves the enclosing week and advances
// the cursor by exactly seven days while the cursor stays inside the
// horizon. Consecutive descriptors never overlap and leave no gap.
func GenerateWeeks(h Horizon) []WeekDescriptor {
	var weeks []WeekDescriptor
	cursor := truncateToDay(h.Start)
	end := truncateToDay(h.End)
	for !cursor.After(end) {
		weeks = append(weeks, ResolveWeek(cursor))
		cursor = cursor.AddDate(0, 0, 7)
	}
	return weeks
}
