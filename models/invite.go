package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invite struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Code         string         `gorm:"uniqueIndex;not null;size:64" json:"code"`
	FullName     string         `gorm:"not null;size:200" json:"full_name"`
	Role         Role           `gorm:"not null;size:20" json:"role"`
	WorkSchedule WorkSchedule   `gorm:"not null;size:20;default:daily" json:"work_schedule"`
	Used         bool           `gorm:"default:false" json:"used"`
	CreatedBy    uint           `gorm:"not null" json:"created_by"`
	Creator      User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	ExpiresAt    time.Time      `gorm:"not null" json:"expires_at"`
}

func GenerateInviteCode() string {
	return uuid.NewString()
}

func (i *Invite) IsValid() bool {
	return !i.Used && time.Now().Before(i.ExpiresAt)
}
