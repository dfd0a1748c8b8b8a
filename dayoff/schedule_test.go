package dayoff_test

import (
	"testing"

	"timebank/dayoff"
	"timebank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredHours(t *testing.T) {
	tests := []struct {
		schedule models.WorkSchedule
		want     int
	}{
		{models.ScheduleDaily, 8},
		{models.ScheduleShift, 24},
	}

	for _, tt := range tests {
		got, err := dayoff.RequiredHours(tt.schedule)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		// Pure function: same input, same output.
		again, err := dayoff.RequiredHours(tt.schedule)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestRequiredHoursUnknownSchedule(t *testing.T) {
	_, err := dayoff.RequiredHours(models.WorkSchedule("weekly"))

	var schedErr *dayoff.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, "weekly", schedErr.Schedule)
}
