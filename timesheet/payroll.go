/*
payroll.go - Numeric coercion and derived-total recomputation

COERCION POLICY:
  Field edits arrive as raw strings from the console. A value that is
  empty, malformed, or negative coerces to zero; no error is ever
  raised for bad numeric input. This is the documented contract of the
  shipped console, surfaced here as a named function rather than
  silently upgraded to a validation error.

RECOMPUTATION:
  TotalAmount = HoursWorked * HourlyRate after every edit to either
  factor. The calculator touches no other field.
*/
package timesheet

import "github.com/shopspring/decimal"

// ParseNumeric parses a raw field value as a non-negative decimal.
// Empty, malformed, and negative input all coerce to zero.
func ParseNumeric(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SetHoursWorked applies a raw hours edit and recomputes the total.
func SetHoursWorked(e TimesheetEntry, raw string) TimesheetEntry {
	e.HoursWorked = ParseNumeric(raw)
	return recomputeTotal(e)
}

// SetHourlyRate applies a raw rate edit and recomputes the total.
func SetHourlyRate(e TimesheetEntry, raw string) TimesheetEntry {
	e.HourlyRate = ParseNumeric(raw)
	return recomputeTotal(e)
}

func recomputeTotal(e TimesheetEntry) TimesheetEntry {
	e.TotalAmount = e.HoursWorked.Mul(e.HourlyRate)
	return e
}
