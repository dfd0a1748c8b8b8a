package dayoff_test

import (
	"errors"
	"testing"
	"time"

	"timebank/dayoff"
	"timebank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id uint, remaining int) models.OvertimeEntry {
	return models.OvertimeEntry{
		ID:             id,
		UserID:         1,
		Date:           time.Date(2025, time.January, int(id), 0, 0, 0, 0, time.UTC),
		Hours:          remaining,
		RemainingHours: remaining,
	}
}

func planTotal(plan []dayoff.Allocation) int {
	total := 0
	for _, a := range plan {
		total += a.HoursUsed
	}
	return total
}

func TestAllocateSplitsAcrossEntries(t *testing.T) {
	pool := []models.OvertimeEntry{entry(1, 5), entry(2, 10)}

	plan, err := dayoff.Allocate(pool, 8)
	require.NoError(t, err)

	require.Len(t, plan, 2)
	assert.Equal(t, dayoff.Allocation{EntryID: 1, HoursUsed: 5}, plan[0])
	assert.Equal(t, dayoff.Allocation{EntryID: 2, HoursUsed: 3}, plan[1])
}

func TestAllocateExactSingleEntry(t *testing.T) {
	plan, err := dayoff.Allocate([]models.OvertimeEntry{entry(1, 8)}, 8)
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.Equal(t, dayoff.Allocation{EntryID: 1, HoursUsed: 8}, plan[0])
}

func TestAllocateShiftSchedule(t *testing.T) {
	plan, err := dayoff.Allocate([]models.OvertimeEntry{entry(1, 24)}, dayoff.ShiftDayOffHours)
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.Equal(t, 24, plan[0].HoursUsed)
}

func TestAllocateExactPoolTotal(t *testing.T) {
	pool := []models.OvertimeEntry{entry(1, 3), entry(2, 2), entry(3, 3)}

	plan, err := dayoff.Allocate(pool, 8)
	require.NoError(t, err)

	// Every entry appears, fully drained.
	require.Len(t, plan, 3)
	for i, a := range plan {
		assert.Equal(t, pool[i].ID, a.EntryID)
		assert.Equal(t, pool[i].RemainingHours, a.HoursUsed)
	}
	assert.Equal(t, 8, planTotal(plan))
}

func TestAllocateInsufficientHours(t *testing.T) {
	pool := []models.OvertimeEntry{entry(1, 3)}

	plan, err := dayoff.Allocate(pool, 8)
	assert.Nil(t, plan)

	var insufficient *dayoff.InsufficientHoursError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 8, insufficient.RequiredHours)
	assert.Equal(t, 3, insufficient.AvailableHours)

	// The pool itself is untouched.
	assert.Equal(t, 3, pool[0].RemainingHours)
}

func TestAllocateEmptyPool(t *testing.T) {
	_, err := dayoff.Allocate(nil, 8)

	var insufficient *dayoff.InsufficientHoursError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.AvailableHours)
}

func TestAllocateSkipsDrainedEntries(t *testing.T) {
	// A zero-remaining entry should be filtered upstream, but if it slips
	// through it contributes nothing and never shows up in the plan.
	pool := []models.OvertimeEntry{entry(1, 0), entry(2, 8)}

	plan, err := dayoff.Allocate(pool, 8)
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.Equal(t, uint(2), plan[0].EntryID)
}

func TestAllocateRejectsNonPositiveRequired(t *testing.T) {
	for _, required := range []int{0, -8} {
		_, err := dayoff.Allocate([]models.OvertimeEntry{entry(1, 8)}, required)
		assert.Error(t, err)

		var insufficient *dayoff.InsufficientHoursError
		assert.False(t, errors.As(err, &insufficient), "contract violation must not read as a business error")
	}
}

func TestAllocateDoesNotMutatePool(t *testing.T) {
	pool := []models.OvertimeEntry{entry(1, 5), entry(2, 10)}

	_, err := dayoff.Allocate(pool, 8)
	require.NoError(t, err)

	assert.Equal(t, 5, pool[0].RemainingHours)
	assert.Equal(t, 10, pool[1].RemainingHours)
}

func TestAllocatePlanProperties(t *testing.T) {
	pool := []models.OvertimeEntry{entry(1, 2), entry(2, 5), entry(3, 1), entry(4, 7)}

	plan, err := dayoff.Allocate(pool, 9)
	require.NoError(t, err)

	// Plan sums exactly to the requirement.
	assert.Equal(t, 9, planTotal(plan))

	// Entries appear in pool order, every step uses at least one hour, and
	// all but the last selected entry are fully drained.
	remaining := map[uint]int{}
	order := map[uint]int{}
	for i := range pool {
		remaining[pool[i].ID] = pool[i].RemainingHours
		order[pool[i].ID] = i
	}
	for i, a := range plan {
		assert.GreaterOrEqual(t, a.HoursUsed, 1)
		if i > 0 {
			assert.Greater(t, order[a.EntryID], order[plan[i-1].EntryID])
		}
		if i < len(plan)-1 {
			assert.Equal(t, remaining[a.EntryID], a.HoursUsed)
		}
	}
}
