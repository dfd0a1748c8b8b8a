package dayoff

import (
	"context"
	"time"

	"timebank/models"
)

// Store is the persistence contract behind the Service. The GORM
// implementation lives in package database; tests use an in-memory fake.
type Store interface {
	// InTransaction runs fn against a transactional view of the store and
	// commits iff fn returns nil. Methods called on the Store passed to fn
	// all join that transaction.
	InTransaction(ctx context.Context, fn func(tx Store) error) error

	// AvailableOvertime returns the user's unused entries ordered by date
	// ascending. Inside a transaction the rows are locked against concurrent
	// allocation until commit.
	AvailableOvertime(ctx context.Context, userID uint) ([]models.OvertimeEntry, error)

	CreateDayOff(ctx context.Context, dayOff *models.DayOff) error
	CreateLinks(ctx context.Context, links []models.OvertimeDayOffLink) error
	UpdateOvertime(ctx context.Context, entries []models.OvertimeEntry) error
}

// CreateRequest carries the user-supplied part of a day-off request.
type CreateRequest struct {
	Date   time.Time
	Reason string
}

// Service coordinates day-off creation: resolve the schedule cost, allocate
// from the overtime bank, and persist the day off, its funding links and the
// updated balances as one unit.
type Service struct {
	store Store
	locks *userLocks
}

func NewService(store Store) *Service {
	return &Service{store: store, locks: newUserLocks()}
}

// Create books a day off for the user, funding it from their oldest unused
// overtime. Everything is committed atomically: on any failure no day off, no
// links and no balance changes are persisted.
//
// Returns a ScheduleError for an unrecognized work schedule, an
// InsufficientHoursError when the bank cannot cover the cost, or the wrapped
// storage error otherwise. Requests for the same user are serialized so two
// concurrent day offs cannot spend the same hours twice.
func (s *Service) Create(ctx context.Context, user *models.User, req CreateRequest) (*models.DayOff, error) {
	requiredHours, err := RequiredHours(user.WorkSchedule)
	if err != nil {
		return nil, err
	}

	mu := s.locks.lock(user.ID)
	defer mu.Unlock()

	dayOff := &models.DayOff{
		UserID: user.ID,
		Date:   req.Date,
		Reason: req.Reason,
	}

	err = s.store.InTransaction(ctx, func(tx Store) error {
		pool, err := tx.AvailableOvertime(ctx, user.ID)
		if err != nil {
			return err
		}

		plan, err := Allocate(pool, requiredHours)
		if err != nil {
			return err
		}

		if err := tx.CreateDayOff(ctx, dayOff); err != nil {
			return err
		}

		byID := make(map[uint]*models.OvertimeEntry, len(pool))
		for i := range pool {
			byID[pool[i].ID] = &pool[i]
		}

		links := make([]models.OvertimeDayOffLink, 0, len(plan))
		touched := make([]models.OvertimeEntry, 0, len(plan))
		for _, alloc := range plan {
			entry := byID[alloc.EntryID]
			entry.RemainingHours -= alloc.HoursUsed
			entry.IsUsed = entry.RemainingHours == 0
			touched = append(touched, *entry)
			links = append(links, models.OvertimeDayOffLink{
				OvertimeEntryID: alloc.EntryID,
				DayOffID:        dayOff.ID,
				HoursUsed:       alloc.HoursUsed,
			})
		}

		if err := tx.CreateLinks(ctx, links); err != nil {
			return err
		}
		return tx.UpdateOvertime(ctx, touched)
	})
	if err != nil {
		return nil, err
	}
	return dayOff, nil
}
