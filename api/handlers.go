/*
handlers.go - HTTP API handlers for the timesheet console

PURPOSE:
  Exposes the timesheet engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the state
  container and engine functions.

ENDPOINTS:
  GET    /api/agents                List agents
  GET    /api/weeks                 Week calendar for the horizon
  GET    /api/timesheets            Filtered, paginated entry listing
  GET    /api/timesheets/resolve    Resolve (agent, date) to an entry
  POST   /api/timesheets            Persist a transient entry
  PUT    /api/timesheets/{id}       Persist field edits
  DELETE /api/timesheets/{id}       Remove a persisted entry

ERROR HANDLING:
  Collaborator failures are logged and returned as JSON with the
  appropriate status:
  - 400: invalid input (bad date, unknown status, bad paid flag)
  - 404: entry not found
  - 500: persistence failures
  A failed entry/agent load degrades to an empty listing rather than
  an error page; a failed save or delete reports the error while the
  optimistic local state keeps the documented non-rollback behavior.

CONCURRENCY:
  The engine's state container assumes one session and carries no
  locks, so the handler serializes access with a mutex.
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	State *timesheet.State

	mu sync.Mutex
}

// NewHandler creates a new handler over the given state container.
func NewHandler(state *timesheet.State) *Handler {
	return &Handler{State: state}
}

// =============================================================================
// AGENT / WEEK HANDLERS
// =============================================================================

// ListAgents returns the agent directory.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.State.Load(r.Context()); err != nil {
		log.Printf("load state: %v", err)
	}

	dtos := make([]AgentDTO, len(h.State.Agents))
	for i, a := range h.State.Agents {
		dtos[i] = AgentDTO{ID: string(a.ID), Name: a.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListWeeks returns the generated week calendar for the horizon.
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	horizon := h.State.Horizon
	h.mu.Unlock()

	weeks := timesheet.GenerateWeeks(horizon)
	dtos := make([]WeekDTO, len(weeks))
	for i, wk := range weeks {
		dtos[i] = toWeekDTO(wk)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// TIMESHEET HANDLERS
// =============================================================================

// ListTimesheets returns one page of the filtered entry collection.
// Query params: search, agent, status, page.
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Load failure degrades to an empty listing (the console renders
	// an empty state), so the error is logged but not returned.
	if err := h.State.Load(r.Context()); err != nil {
		log.Printf("load state: %v", err)
	}

	opts := timesheet.QueryOptions{
		Search: r.URL.Query().Get("search"),
		Agent:  timesheet.AgentID(r.URL.Query().Get("agent")),
		Status: timesheet.ApprovalStatus(r.URL.Query().Get("status")),
	}
	if p := r.URL.Query().Get("page"); p != "" {
		opts.Page, _ = strconv.Atoi(p)
	}
	if opts.Status != "" && !opts.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown approval status", timesheet.ErrInvalidStatus)
		return
	}

	result := h.State.Query(opts)
	writeJSON(w, http.StatusOK, QueryResponse{
		Entries:       toEntryDTOs(result.Entries),
		TotalMatching: result.TotalMatching,
		Page:          result.Page,
		PageSize:      result.PageSize,
		TotalPages:    result.TotalPages,
	})
}

// ResolveTimesheet returns the persisted or transient entry for an
// (agent, date) pair. Query params: agent, date (ISO date).
func (h *Handler) ResolveTimesheet(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	agentID := timesheet.AgentID(r.URL.Query().Get("agent"))
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "Missing agent parameter", nil)
		return
	}
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	if err := h.State.Load(r.Context()); err != nil {
		log.Printf("load state: %v", err)
	}

	entry := h.State.Resolve(agentID, date)
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// CreateTimesheet persists a new entry for the week enclosing the
// given date. An existing entry for the same agent/week does not block
// creation.
func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.AgentID == "" {
		writeError(w, http.StatusBadRequest, "Missing agent_id", nil)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	week := timesheet.ResolveWeek(date)
	if !h.State.Horizon.Contains(week) {
		writeError(w, http.StatusBadRequest, "Date outside the scheduling horizon", timesheet.ErrOutsideHorizon)
		return
	}

	entry := timesheet.NewTransientEntry(timesheet.AgentID(req.AgentID), week)
	entry = timesheet.SetHoursWorked(entry, req.HoursWorked)
	entry = timesheet.SetHourlyRate(entry, req.HourlyRate)

	if req.ApprovalStatus != "" {
		entry, err = timesheet.Transition(entry, timesheet.ApprovalStatus(req.ApprovalStatus), req.ConditionalComment)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown approval status", err)
			return
		}
	}
	if req.PaidToBank != "" {
		paid, ok := parsePaidStatus(req.PaidToBank)
		if !ok {
			writeError(w, http.StatusBadRequest, "paid_to_bank must be yes or no", nil)
			return
		}
		entry.PaidToBank = paid
	}

	created, err := h.State.SaveEntry(r.Context(), entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(created))
}

// UpdateTimesheet applies field edits to a persisted entry. The edit
// is applied to the local collection before the collaborator call; a
// failed save reports the error without rolling the local edit back.
func (h *Handler) UpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := timesheet.EntryID(chi.URLParam(r, "id"))

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, ok := h.findEntry(r, id)
	if !ok {
		writeError(w, http.StatusNotFound, "Entry not found", timesheet.ErrEntryNotFound)
		return
	}

	if req.HoursWorked != nil {
		entry = h.State.SetHours(entry, *req.HoursWorked)
	}
	if req.HourlyRate != nil {
		entry = h.State.SetRate(entry, *req.HourlyRate)
	}
	if req.ApprovalStatus != nil {
		comment := entry.ConditionalComment
		if req.ConditionalComment != nil {
			comment = *req.ConditionalComment
		}
		var err error
		entry, err = h.State.SetApproval(entry, timesheet.ApprovalStatus(*req.ApprovalStatus), comment)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown approval status", err)
			return
		}
	} else if req.ConditionalComment != nil && entry.ApprovalStatus == timesheet.StatusConditionallyApproved {
		entry.ConditionalComment = *req.ConditionalComment
	}
	if req.PaidToBank != nil {
		paid, ok := parsePaidStatus(*req.PaidToBank)
		if !ok {
			writeError(w, http.StatusBadRequest, "paid_to_bank must be yes or no", nil)
			return
		}
		entry = h.State.SetPaidToBank(entry, paid)
	}

	saved, err := h.State.SaveEntry(r.Context(), entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(saved))
}

// DeleteTimesheet removes a persisted entry.
func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := timesheet.EntryID(chi.URLParam(r, "id"))
	if err := h.State.DeleteEntry(r.Context(), id); err != nil {
		switch {
		case timesheet.IsNotFound(err):
			writeError(w, http.StatusNotFound, "Entry not found", err)
		case timesheet.IsClientError(err):
			writeError(w, http.StatusBadRequest, "Entry is not persisted", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete entry", err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// findEntry locates a persisted entry in the local collection,
// refreshing from the collaborator when it is not loaded yet.
func (h *Handler) findEntry(r *http.Request, id timesheet.EntryID) (timesheet.TimesheetEntry, bool) {
	for _, e := range h.State.Entries {
		if e.ID == id {
			return e, true
		}
	}
	if err := h.State.Load(r.Context()); err != nil {
		log.Printf("load state: %v", err)
	}
	for _, e := range h.State.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return timesheet.TimesheetEntry{}, false
}

func parsePaidStatus(s string) (timesheet.PaidStatus, bool) {
	switch timesheet.PaidStatus(s) {
	case timesheet.PaidYes:
		return timesheet.PaidYes, true
	case timesheet.PaidNo:
		return timesheet.PaidNo, true
	}
	return "", false
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Code = errorCode(err)
	}
	writeJSON(w, status, resp)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, timesheet.ErrEntryNotFound):
		return "entry_not_found"
	case errors.Is(err, timesheet.ErrAgentNotFound):
		return "agent_not_found"
	case errors.Is(err, timesheet.ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, timesheet.ErrNotPersisted):
		return "not_persisted"
	case errors.Is(err, timesheet.ErrAlreadyPersisted):
		return "already_persisted"
	case errors.Is(err, timesheet.ErrOutsideHorizon):
		return "outside_horizon"
	default:
		return ""
	}
}
