/*
Package sqlite provides the SQLite-backed persistence collaborator.

PURPOSE:
  Implements timesheet.EntryStore and timesheet.AgentDirectory using
  SQLite. The same patterns apply to PostgreSQL in production; only
  minor SQL dialect differences.

KEY TABLES:
  agents:             Read-only agent directory (seeded out of band)
  timesheet_entries:  One row per persisted (agent, week) pay record

ID ASSIGNMENT:
  CreateEntry assigns ids of the form ts-<unix-nano>. The caller sends
  a transient entry (empty id) and receives the persisted copy back.

DUPLICATES:
  (agent_id, week_start) is indexed but NOT unique. The console
  permits creating a second blank entry for a week that already has
  one; preserving that is a recorded product decision.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. WAL mode for better concurrent
  reads and crash recovery.

USAGE:
  store, err := sqlite.New("./data/timesheets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - timesheet/store.go: Interface definitions
  - timesheet/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/timesheet-engine/timesheet"
)

// Store implements the persistence interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Agents (read-only directory)
	CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Timesheet entries: one row per persisted (agent, week) record
	CREATE TABLE IF NOT EXISTS timesheet_entries (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		week_end TEXT NOT NULL,
		week_number TEXT NOT NULL,
		date_range TEXT NOT NULL,
		hours_worked TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		approval_status TEXT NOT NULL DEFAULT 'not_approved',
		conditional_comment TEXT,
		paid_to_bank TEXT NOT NULL DEFAULT 'no',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Non-unique on purpose: duplicate (agent, week) rows are allowed
	CREATE INDEX IF NOT EXISTS idx_entries_agent_week
		ON timesheet_entries(agent_id, week_start);
	CREATE INDEX IF NOT EXISTS idx_entries_status
		ON timesheet_entries(approval_status);
	CREATE INDEX IF NOT EXISTS idx_entries_week_start
		ON timesheet_entries(week_start);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// AGENT DIRECTORY (timesheet.AgentDirectory interface)
// =============================================================================

// SaveAgent upserts an agent record. Used by fixtures and tests; the
// console itself treats the directory as read-only.
func (s *Store) SaveAgent(ctx context.Context, a timesheet.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO agents (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Name, time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListAgents returns all agents ordered by name.
func (s *Store) ListAgents(ctx context.Context) ([]timesheet.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM agents ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	var agents []timesheet.Agent
	for rows.Next() {
		var a timesheet.Agent
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// GetAgent retrieves an agent by id.
func (s *Store) GetAgent(ctx context.Context, id timesheet.AgentID) (*timesheet.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var a timesheet.Agent
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM agents WHERE id = ?", id,
	).Scan(&a.ID, &a.Name)

	if err == sql.ErrNoRows {
		return nil, timesheet.ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// =============================================================================
// ENTRY STORE (timesheet.EntryStore interface)
// =============================================================================

const entryColumns = `id, agent_id, week_start, week_end, week_number, date_range,
	hours_worked, hourly_rate, total_amount, approval_status,
	conditional_comment, paid_to_bank, created_at, updated_at`

// ListEntries returns all persisted entries ordered by week start.
func (s *Store) ListEntries(ctx context.Context) ([]timesheet.TimesheetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries
		ORDER BY week_start ASC, agent_id ASC, created_at ASC
	`

	return s.queryEntries(ctx, query)
}

// CreateEntry persists a transient entry, assigning its id.
func (s *Store) CreateEntry(ctx context.Context, e timesheet.TimesheetEntry) (timesheet.TimesheetEntry, error) {
	if e.Persisted() {
		return e, timesheet.ErrAlreadyPersisted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = timesheet.EntryID(fmt.Sprintf("ts-%d", time.Now().UnixNano()))
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO timesheet_entries
		(` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.AgentID,
		e.Week.WeekStart.Format(time.RFC3339),
		e.Week.WeekEnd.Format(time.RFC3339Nano),
		e.Week.WeekNumber,
		e.Week.DateRange,
		e.HoursWorked.String(),
		e.HourlyRate.String(),
		e.TotalAmount.String(),
		e.ApprovalStatus,
		nullString(e.ConditionalComment),
		e.PaidToBank,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return e, fmt.Errorf("failed to insert entry: %w", err)
	}

	return e, nil
}

// UpdateEntry overwrites the persisted record for the entry's id.
func (s *Store) UpdateEntry(ctx context.Context, e timesheet.TimesheetEntry) error {
	if !e.Persisted() {
		return timesheet.ErrNotPersisted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE timesheet_entries SET
			agent_id = ?,
			week_start = ?,
			week_end = ?,
			week_number = ?,
			date_range = ?,
			hours_worked = ?,
			hourly_rate = ?,
			total_amount = ?,
			approval_status = ?,
			conditional_comment = ?,
			paid_to_bank = ?,
			updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		e.AgentID,
		e.Week.WeekStart.Format(time.RFC3339),
		e.Week.WeekEnd.Format(time.RFC3339Nano),
		e.Week.WeekNumber,
		e.Week.DateRange,
		e.HoursWorked.String(),
		e.HourlyRate.String(),
		e.TotalAmount.String(),
		e.ApprovalStatus,
		nullString(e.ConditionalComment),
		e.PaidToBank,
		time.Now().UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

// DeleteEntry removes a persisted entry.
func (s *Store) DeleteEntry(ctx context.Context, id timesheet.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM timesheet_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

// GetEntry retrieves a single entry by id.
func (s *Store) GetEntry(ctx context.Context, id timesheet.EntryID) (*timesheet.TimesheetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries
		WHERE id = ?
	`

	entries, err := s.queryEntries(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, timesheet.ErrEntryNotFound
	}
	return &entries[0], nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]timesheet.TimesheetEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimesheetEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (timesheet.TimesheetEntry, error) {
	var (
		e                  timesheet.TimesheetEntry
		weekStart, weekEnd string
		hours, rate, total string
		comment            sql.NullString
		createdAt          string
		updatedAt          string
	)

	err := rows.Scan(
		&e.ID, &e.AgentID, &weekStart, &weekEnd, &e.Week.WeekNumber, &e.Week.DateRange,
		&hours, &rate, &total, &e.ApprovalStatus,
		&comment, &e.PaidToBank, &createdAt, &updatedAt,
	)
	if err != nil {
		return e, fmt.Errorf("failed to scan entry: %w", err)
	}

	e.Week.WeekStart, _ = time.Parse(time.RFC3339, weekStart)
	e.Week.WeekEnd, _ = time.Parse(time.RFC3339Nano, weekEnd)
	e.HoursWorked = parseDecimal(hours)
	e.HourlyRate = parseDecimal(rate)
	e.TotalAmount = parseDecimal(total)
	e.ConditionalComment = comment.String
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return e, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"timesheet_entries", "agents"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
