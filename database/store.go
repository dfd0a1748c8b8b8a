package database

import (
	"context"

	"timebank/dayoff"
	"timebank/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayOffStore is the GORM-backed dayoff.Store. One instance wraps the shared
// connection; InTransaction hands callbacks a store bound to the transaction.
type DayOffStore struct {
	db *gorm.DB
}

func NewDayOffStore(db *gorm.DB) *DayOffStore {
	return &DayOffStore{db: db}
}

func (s *DayOffStore) InTransaction(ctx context.Context, fn func(tx dayoff.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DayOffStore{db: tx})
	})
}

// AvailableOvertime selects the user's eligible pool oldest-first with
// SELECT ... FOR UPDATE, so a concurrent allocation for the same user blocks
// until this transaction commits and then sees the updated balances.
func (s *DayOffStore) AvailableOvertime(ctx context.Context, userID uint) ([]models.OvertimeEntry, error) {
	var entries []models.OvertimeEntry
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND is_used = ?", userID, false).
		Order("date asc").
		Find(&entries).Error
	return entries, err
}

func (s *DayOffStore) CreateDayOff(ctx context.Context, dayOff *models.DayOff) error {
	return s.db.WithContext(ctx).Create(dayOff).Error
}

func (s *DayOffStore) CreateLinks(ctx context.Context, links []models.OvertimeDayOffLink) error {
	if len(links) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&links).Error
}

// UpdateOvertime persists the new balances. Column updates rather than Save
// so the create hook that resets RemainingHours never interferes.
func (s *DayOffStore) UpdateOvertime(ctx context.Context, entries []models.OvertimeEntry) error {
	for i := range entries {
		err := s.db.WithContext(ctx).
			Model(&models.OvertimeEntry{}).
			Where("id = ?", entries[i].ID).
			Updates(map[string]interface{}{
				"remaining_hours": entries[i].RemainingHours,
				"is_used":         entries[i].IsUsed,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
