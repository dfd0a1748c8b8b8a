package models

import (
	"time"
)

// DayOff is a single absence request funded by banked overtime. Every day off
// created through the allocation path has at least one OvertimeDayOffLink and
// the links' HoursUsed sum to the schedule cost at creation time.
type DayOff struct {
	ID        uint                 `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	UserID    uint                 `gorm:"not null;index" json:"user_id"`
	User      User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date      time.Time            `gorm:"not null;type:date" json:"date"`
	Reason    string               `gorm:"size:500" json:"reason"`
	Approved  bool                 `gorm:"not null;default:false" json:"approved"`
	Links     []OvertimeDayOffLink `gorm:"foreignKey:DayOffID;constraint:OnDelete:CASCADE" json:"links,omitempty"`
}
