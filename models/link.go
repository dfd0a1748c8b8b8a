package models

import (
	"time"
)

// OvertimeDayOffLink records that a day off consumed HoursUsed hours from one
// overtime entry. Links are written once, never updated, and removed only
// when their day off is deleted. Deleting a day off does not restore the
// consumed hours to the entry.
type OvertimeDayOffLink struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	OvertimeEntryID uint          `gorm:"not null;index" json:"overtime_entry_id"`
	OvertimeEntry   OvertimeEntry `gorm:"foreignKey:OvertimeEntryID" json:"overtime_entry,omitempty"`
	DayOffID        uint          `gorm:"not null;index" json:"day_off_id"`
	HoursUsed       int           `gorm:"not null" json:"hours_used"`
}
