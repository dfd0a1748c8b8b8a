package models

import (
	"time"

	"gorm.io/gorm"
)

// OvertimeEntry is one recorded instance of extra hours worked. Hours are
// whole hours; RemainingHours tracks the unspent portion and only ever goes
// down, decremented when a day off consumes the entry. Entries are never
// deleted by allocation so the audit trail stays intact.
type OvertimeEntry struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date           time.Time      `gorm:"not null;type:date" json:"date"`
	Hours          int            `gorm:"not null" json:"hours"`
	RemainingHours int            `gorm:"not null" json:"remaining_hours"`
	// IsUsed caches RemainingHours == 0 so the eligible pool can be selected
	// with a plain indexed filter. Updated transactionally with the balance.
	IsUsed      bool   `gorm:"not null;default:false;index" json:"is_used"`
	Description string `gorm:"size:500" json:"description"`
}

// A new entry starts with its full hours unspent.
func (e *OvertimeEntry) BeforeCreate(tx *gorm.DB) error {
	e.RemainingHours = e.Hours
	return nil
}

type OvertimeFilter struct {
	UserID uint
	Month  int
	Year   int
}
