/*
query.go - Filtering, search, and pagination over the entry collection

FILTERING:
  Conjunctive: an entry passes when the agent filter is empty or equal,
  the status filter is empty or equal, and the search term is empty or
  a case-insensitive substring of the resolved agent's display name or
  of the entry's week label.

PAGINATION:
  Fixed windows of PageSize (default 20), 1-based page numbers.
  TotalMatching is the filtered-set size; page count is
  ceil(TotalMatching / PageSize).
*/
package timesheet

import "strings"

const DefaultPageSize = 20

// QueryOptions are the console's filter parameters. Zero values mean
// "no filter"; Page below 1 is treated as page 1 and PageSize below 1
// falls back to DefaultPageSize.
type QueryOptions struct {
	Search   string
	Agent    AgentID
	Status   ApprovalStatus
	Page     int
	PageSize int
}

// QueryResult is one page of the filtered collection.
type QueryResult struct {
	Entries       []TimesheetEntry
	TotalMatching int
	Page          int
	PageSize      int
	TotalPages    int
}

// Query applies the filters and slices out the requested page.
// agentNames maps agent ids to display names for the search term;
// an entry whose agent is missing from the map matches on its week
// label only.
func Query(entries []TimesheetEntry, agentNames map[AgentID]string, opts QueryOptions) QueryResult {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	term := strings.ToLower(strings.TrimSpace(opts.Search))

	var matched []TimesheetEntry
	for _, e := range entries {
		if opts.Agent != "" && e.AgentID != opts.Agent {
			continue
		}
		if opts.Status != "" && e.ApprovalStatus != opts.Status {
			continue
		}
		if term != "" && !matchesSearch(e, agentNames[e.AgentID], term) {
			continue
		}
		matched = append(matched, e)
	}

	total := len(matched)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	var pageOf []TimesheetEntry
	if start < total {
		end := start + size
		if end > total {
			end = total
		}
		pageOf = matched[start:end]
	}

	return QueryResult{
		Entries:       pageOf,
		TotalMatching: total,
		Page:          page,
		PageSize:      size,
		TotalPages:    totalPages,
	}
}

func matchesSearch(e TimesheetEntry, agentName, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(agentName), lowerTerm) ||
		strings.Contains(strings.ToLower(e.Week.WeekNumber), lowerTerm)
}
