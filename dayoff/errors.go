package dayoff

import "fmt"

// ScheduleError reports a work-schedule value outside the recognized set.
// It is a configuration problem on the user record, correctable by the
// client/admin, and maps to a 400-class response rather than a server fault.
type ScheduleError struct {
	Schedule string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("unknown work-schedule type %q", e.Schedule)
}

// InsufficientHoursError reports that a user's remaining overtime bank cannot
// cover the cost of a day off. It is a terminal business outcome, not a
// transient fault: retrying only helps after the user logs more overtime.
type InsufficientHoursError struct {
	RequiredHours  int
	AvailableHours int
}

func (e *InsufficientHoursError) Error() string {
	return fmt.Sprintf("insufficient overtime hours for day off: need %d, have %d",
		e.RequiredHours, e.AvailableHours)
}
