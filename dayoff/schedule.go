package dayoff

import "timebank/models"

// Hours one day off costs per work-schedule classification.
const (
	DailyDayOffHours = 8
	ShiftDayOffHours = 24
)

// RequiredHours returns how many banked overtime hours one day off costs for
// the given work schedule. Pure function; an unrecognized schedule is a
// ScheduleError.
func RequiredHours(schedule models.WorkSchedule) (int, error) {
	switch schedule {
	case models.ScheduleDaily:
		return DailyDayOffHours, nil
	case models.ScheduleShift:
		return ShiftDayOffHours, nil
	default:
		return 0, &ScheduleError{Schedule: string(schedule)}
	}
}
