package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

// WorkSchedule classifies how a user works, which determines how many banked
// overtime hours one day off costs them (see dayoff.RequiredHours).
type WorkSchedule string

const (
	ScheduleDaily WorkSchedule = "daily"
	ScheduleShift WorkSchedule = "shift"
)

func ParseWorkSchedule(s string) (WorkSchedule, bool) {
	switch WorkSchedule(s) {
	case ScheduleDaily:
		return ScheduleDaily, true
	case ScheduleShift:
		return ScheduleShift, true
	}
	return "", false
}

type User struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
	Username           string          `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FullName           string          `gorm:"not null;size:200" json:"full_name"`
	PasswordHash       string          `gorm:"not null" json:"-"`
	Role               Role            `gorm:"not null;size:20" json:"role"`
	WorkSchedule       WorkSchedule    `gorm:"not null;size:20;default:daily" json:"work_schedule"`
	MustChangePassword bool            `gorm:"default:true" json:"must_change_password"`
	OvertimeEntries    []OvertimeEntry `gorm:"foreignKey:UserID" json:"overtime_entries,omitempty"`
	DayOffs            []DayOff        `gorm:"foreignKey:UserID" json:"day_offs,omitempty"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

func (u *User) CanManageOvertimeFor(userID uint) bool {
	if u.IsAdmin() {
		return true
	}
	return u.ID == userID
}

func (u *User) CanViewAllEntries() bool {
	return u.IsAdmin() || u.IsHR()
}

func (u *User) CanApproveDayOffs() bool {
	return u.IsAdmin() || u.IsHR()
}

func (u *User) CanExport() bool {
	return u.IsAdmin() || u.IsHR()
}

func (u *User) CanCreateInvites() bool {
	return u.IsAdmin()
}
