/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

NUMERIC FIELDS:
  Edits to hours and rate arrive as raw strings and pass through the
  engine's zero-default coercion; responses carry float64 renderings
  of the stored decimals.
*/
package api

import (
	"time"

	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AgentDTO represents an agent in API responses.
type AgentDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WeekDTO represents one calendar week of the horizon.
type WeekDTO struct {
	WeekStart  string `json:"week_start"`
	WeekEnd    string `json:"week_end"`
	WeekNumber string `json:"week_number"`
	DateRange  string `json:"date_range"`
}

// EntryDTO represents a timesheet entry in API responses.
// ID is empty for a transient (not yet persisted) entry.
type EntryDTO struct {
	ID                 string  `json:"id,omitempty"`
	AgentID            string  `json:"agent_id"`
	WeekStart          string  `json:"week_start"`
	WeekEnd            string  `json:"week_end"`
	WeekNumber         string  `json:"week_number"`
	DateRange          string  `json:"date_range"`
	HoursWorked        float64 `json:"hours_worked"`
	HourlyRate         float64 `json:"hourly_rate"`
	TotalAmount        float64 `json:"total_amount"`
	ApprovalStatus     string  `json:"approval_status"`
	ConditionalComment string  `json:"conditional_comment,omitempty"`
	PaidToBank         string  `json:"paid_to_bank"`
}

// CreateEntryRequest persists a new entry for an agent's week.
// Date is any ISO date inside the target week; hours and rate are raw
// field values subject to zero-default coercion.
type CreateEntryRequest struct {
	AgentID            string `json:"agent_id"`
	Date               string `json:"date"`
	HoursWorked        string `json:"hours_worked"`
	HourlyRate         string `json:"hourly_rate"`
	ApprovalStatus     string `json:"approval_status,omitempty"`
	ConditionalComment string `json:"conditional_comment,omitempty"`
	PaidToBank         string `json:"paid_to_bank,omitempty"`
}

// UpdateEntryRequest carries field edits; nil fields are untouched.
type UpdateEntryRequest struct {
	HoursWorked        *string `json:"hours_worked,omitempty"`
	HourlyRate         *string `json:"hourly_rate,omitempty"`
	ApprovalStatus     *string `json:"approval_status,omitempty"`
	ConditionalComment *string `json:"conditional_comment,omitempty"`
	PaidToBank         *string `json:"paid_to_bank,omitempty"`
}

// QueryResponse is one page of the filtered collection.
type QueryResponse struct {
	Entries       []EntryDTO `json:"entries"`
	TotalMatching int        `json:"total_matching"`
	Page          int        `json:"page"`
	PageSize      int        `json:"page_size"`
	TotalPages    int        `json:"total_pages"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEntryDTO(e timesheet.TimesheetEntry) EntryDTO {
	hours, _ := e.HoursWorked.Float64()
	rate, _ := e.HourlyRate.Float64()
	total, _ := e.TotalAmount.Float64()
	return EntryDTO{
		ID:                 string(e.ID),
		AgentID:            string(e.AgentID),
		WeekStart:          e.Week.WeekStart.Format(time.RFC3339),
		WeekEnd:            e.Week.WeekEnd.Format(time.RFC3339Nano),
		WeekNumber:         e.Week.WeekNumber,
		DateRange:          e.Week.DateRange,
		HoursWorked:        hours,
		HourlyRate:         rate,
		TotalAmount:        total,
		ApprovalStatus:     string(e.ApprovalStatus),
		ConditionalComment: e.ConditionalComment,
		PaidToBank:         string(e.PaidToBank),
	}
}

func toEntryDTOs(entries []timesheet.TimesheetEntry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	return dtos
}

func toWeekDTO(w timesheet.WeekDescriptor) WeekDTO {
	return WeekDTO{
		WeekStart:  w.WeekStart.Format(time.RFC3339),
		WeekEnd:    w.WeekEnd.Format(time.RFC3339Nano),
		WeekNumber: w.WeekNumber,
		DateRange:  w.DateRange,
	}
}
