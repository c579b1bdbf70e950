// Package store provides EntryStore implementations.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	agents  []timesheet.Agent
	entries []timesheet.TimesheetEntry
	nextID  int
}

func NewMemory() *Memory {
	return &Memory{}
}

// SeedAgents replaces the agent directory contents.
func (m *Memory) SeedAgents(agents []timesheet.Agent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents = append([]timesheet.Agent{}, agents...)
}

func (m *Memory) ListAgents(_ context.Context) ([]timesheet.Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]timesheet.Agent, len(m.agents))
	copy(result, m.agents)
	return result, nil
}

func (m *Memory) ListEntries(_ context.Context) ([]timesheet.TimesheetEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]timesheet.TimesheetEntry, len(m.entries))
	copy(result, m.entries)
	return result, nil
}

func (m *Memory) CreateEntry(_ context.Context, e timesheet.TimesheetEntry) (timesheet.TimesheetEntry, error) {
	if e.Persisted() {
		return e, timesheet.ErrAlreadyPersisted
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	e.ID = timesheet.EntryID(fmt.Sprintf("ts-%d", m.nextID))
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *Memory) UpdateEntry(_ context.Context, e timesheet.TimesheetEntry) error {
	if !e.Persisted() {
		return timesheet.ErrNotPersisted
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == e.ID {
			e.CreatedAt = m.entries[i].CreatedAt
			e.UpdatedAt = time.Now().UTC()
			m.entries[i] = e
			return nil
		}
	}
	return timesheet.ErrEntryNotFound
}

func (m *Memory) DeleteEntry(_ context.Context, id timesheet.EntryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return timesheet.ErrEntryNotFound
}
