package timesheet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timesheet-engine/timesheet"
	"github.com/warp/timesheet-engine/timesheet/store"
)

var errStoreDown = errors.New("store down")

// brokenStore fails every collaborator call. Used to exercise the
// optimistic edit and fallback paths.
type brokenStore struct{}

func (brokenStore) ListAgents(context.Context) ([]timesheet.Agent, error) {
	return nil, errStoreDown
}
func (brokenStore) ListEntries(context.Context) ([]timesheet.TimesheetEntry, error) {
	return nil, errStoreDown
}
func (brokenStore) CreateEntry(context.Context, timesheet.TimesheetEntry) (timesheet.TimesheetEntry, error) {
	return timesheet.TimesheetEntry{}, errStoreDown
}
func (brokenStore) UpdateEntry(context.Context, timesheet.TimesheetEntry) error {
	return errStoreDown
}
func (brokenStore) DeleteEntry(context.Context, timesheet.EntryID) error {
	return errStoreDown
}

func seededState(t *testing.T) (*timesheet.State, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.SeedAgents([]timesheet.Agent{
		{ID: "A", Name: "Sarah Jones"},
		{ID: "B", Name: "Mike Chen"},
	})
	s := timesheet.NewState(mem, mem)
	require.NoError(t, s.Load(context.Background()))
	return s, mem
}

func TestState_LoadFailureFallsBackToEmpty(t *testing.T) {
	s := timesheet.NewState(brokenStore{}, brokenStore{})
	s.Entries = entriesOverWeeks("A", 2)
	s.Agents = []timesheet.Agent{{ID: "A", Name: "Sarah Jones"}}

	err := s.Load(context.Background())

	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, s.Entries, "failed load must leave an empty collection, not stale data")
	assert.Empty(t, s.Agents)
}

func TestState_SaveTransientAssignsIDAndAppends(t *testing.T) {
	s, _ := seededState(t)
	entry := s.Resolve("A", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.False(t, entry.Persisted())
	entry = timesheet.SetHoursWorked(entry, "37.5")
	entry = timesheet.SetHourlyRate(entry, "18.00")

	saved, err := s.SaveEntry(context.Background(), entry)

	require.NoError(t, err)
	assert.True(t, saved.Persisted())
	require.Len(t, s.Entries, 1)
	assert.Equal(t, saved.ID, s.Entries[0].ID)
	assert.True(t, s.Entries[0].TotalAmount.Equal(saved.TotalAmount))
}

func TestState_SaveFailureKeepsLocalEdit(t *testing.T) {
	s := timesheet.NewState(brokenStore{}, brokenStore{})
	persisted := persistedEntry("ts-1", "A", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	s.Entries = []timesheet.TimesheetEntry{persisted}

	edited := s.SetHours(persisted, "40")
	_, err := s.SaveEntry(context.Background(), edited)

	require.ErrorIs(t, err, errStoreDown)
	// The optimistic local mutation stays; recovery is a later Load.
	assert.True(t, s.Entries[0].HoursWorked.Equal(edited.HoursWorked))
}

func TestState_CreateFailureLeavesCollectionUntouched(t *testing.T) {
	s := timesheet.NewState(brokenStore{}, brokenStore{})

	transient := s.Resolve("A", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC))
	_, err := s.SaveEntry(context.Background(), transient)

	require.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, s.Entries)
}

func TestState_DeleteRemovesLocallyAfterConfirmation(t *testing.T) {
	s, _ := seededState(t)
	saved, err := s.SaveEntry(context.Background(),
		s.Resolve("A", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(context.Background(), saved.ID))
	assert.Empty(t, s.Entries)
}

func TestState_DeleteFailureKeepsEntryVisible(t *testing.T) {
	s := timesheet.NewState(brokenStore{}, brokenStore{})
	s.Entries = []timesheet.TimesheetEntry{
		persistedEntry("ts-1", "A", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
	}

	err := s.DeleteEntry(context.Background(), "ts-1")

	require.ErrorIs(t, err, errStoreDown)
	assert.Len(t, s.Entries, 1)
}

func TestState_DeleteTransientRejected(t *testing.T) {
	s, _ := seededState(t)
	err := s.DeleteEntry(context.Background(), "")
	assert.ErrorIs(t, err, timesheet.ErrNotPersisted)
}

func TestState_DuplicateWeekCreationPermitted(t *testing.T) {
	s, _ := seededState(t)
	date := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)

	first, err := s.SaveEntry(context.Background(), s.Resolve("A", date))
	require.NoError(t, err)

	// Resolve now returns the persisted entry, so build the duplicate
	// directly the way a stale client would.
	dup := timesheet.NewTransientEntry("A", timesheet.ResolveWeek(date))
	second, err := s.SaveEntry(context.Background(), dup)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.Entries, 2)
	assert.Equal(t, first.ID, s.Resolve("A", date).ID, "resolution picks the first duplicate")
}

func TestState_SetApprovalInvalidStatusLeavesCollection(t *testing.T) {
	s, _ := seededState(t)
	saved, err := s.SaveEntry(context.Background(),
		s.Resolve("A", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = s.SetApproval(saved, "bogus", "")

	require.ErrorIs(t, err, timesheet.ErrInvalidStatus)
	assert.Equal(t, timesheet.StatusNotApproved, s.Entries[0].ApprovalStatus)
}

func TestState_QueryResolvesAgentNames(t *testing.T) {
	s, _ := seededState(t)
	_, err := s.SaveEntry(context.Background(),
		s.Resolve("A", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = s.SaveEntry(context.Background(),
		s.Resolve("B", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	result := s.Query(timesheet.QueryOptions{Search: "chen"})

	require.Equal(t, 1, result.TotalMatching)
	assert.Equal(t, timesheet.AgentID("B"), result.Entries[0].AgentID)
}

func TestState_FieldEditsUpdateCollectionCopy(t *testing.T) {
	s, _ := seededState(t)
	saved, err := s.SaveEntry(context.Background(),
		s.Resolve("A", time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	saved = s.SetHours(saved, "37.5")
	saved = s.SetRate(saved, "18.00")
	saved = s.SetPaidToBank(saved, timesheet.PaidYes)

	local := s.Entries[0]
	assert.True(t, local.TotalAmount.Equal(saved.TotalAmount))
	assert.Equal(t, timesheet.PaidYes, local.PaidToBank)
}
