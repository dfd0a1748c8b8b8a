package dayoff_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"timebank/dayoff"
	"timebank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory dayoff.Store for tests. InTransaction holds one
// lock for the whole callback and stages writes, committing only on success.
// That mirrors the real store: serialized access to the pool plus rollback
// when any step fails.
type memStore struct {
	mu      sync.Mutex
	nextID  uint
	entries map[uint]models.OvertimeEntry
	dayOffs map[uint]models.DayOff
	links   []models.OvertimeDayOffLink

	failCreateLinks bool
}

func newMemStore(entries ...models.OvertimeEntry) *memStore {
	s := &memStore{
		entries: map[uint]models.OvertimeEntry{},
		dayOffs: map[uint]models.DayOff{},
	}
	for _, e := range entries {
		if e.ID > s.nextID {
			s.nextID = e.ID
		}
		s.entries[e.ID] = e
	}
	return s
}

func (s *memStore) InTransaction(ctx context.Context, fn func(tx dayoff.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &memStore{
		nextID:          s.nextID,
		entries:         map[uint]models.OvertimeEntry{},
		dayOffs:         map[uint]models.DayOff{},
		links:           append([]models.OvertimeDayOffLink(nil), s.links...),
		failCreateLinks: s.failCreateLinks,
	}
	for id, e := range s.entries {
		staged.entries[id] = e
	}
	for id, d := range s.dayOffs {
		staged.dayOffs[id] = d
	}

	if err := fn(staged); err != nil {
		return err
	}

	s.nextID = staged.nextID
	s.entries = staged.entries
	s.dayOffs = staged.dayOffs
	s.links = staged.links
	return nil
}

func (s *memStore) AvailableOvertime(ctx context.Context, userID uint) ([]models.OvertimeEntry, error) {
	var pool []models.OvertimeEntry
	for _, e := range s.entries {
		if e.UserID == userID && !e.IsUsed {
			pool = append(pool, e)
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].Date.Before(pool[j].Date) })
	return pool, nil
}

func (s *memStore) CreateDayOff(ctx context.Context, dayOff *models.DayOff) error {
	s.nextID++
	dayOff.ID = s.nextID
	s.dayOffs[dayOff.ID] = *dayOff
	return nil
}

func (s *memStore) CreateLinks(ctx context.Context, links []models.OvertimeDayOffLink) error {
	if s.failCreateLinks {
		return errors.New("link insert failed")
	}
	for _, l := range links {
		s.nextID++
		l.ID = s.nextID
		s.links = append(s.links, l)
	}
	return nil
}

func (s *memStore) UpdateOvertime(ctx context.Context, entries []models.OvertimeEntry) error {
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return nil
}

func dailyUser(id uint) *models.User {
	return &models.User{ID: id, Username: "worker", WorkSchedule: models.ScheduleDaily}
}

func request(day int) dayoff.CreateRequest {
	return dayoff.CreateRequest{
		Date:   time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
		Reason: "family",
	}
}

func TestServiceCreate(t *testing.T) {
	store := newMemStore(entry(1, 5), entry(2, 10))
	svc := dayoff.NewService(store)

	created, err := svc.Create(context.Background(), dailyUser(1), request(10))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Oldest entry fully drained, newer one partially consumed.
	assert.Equal(t, 0, store.entries[1].RemainingHours)
	assert.True(t, store.entries[1].IsUsed)
	assert.Equal(t, 7, store.entries[2].RemainingHours)
	assert.False(t, store.entries[2].IsUsed)

	require.Len(t, store.links, 2)
	assert.Equal(t, uint(1), store.links[0].OvertimeEntryID)
	assert.Equal(t, 5, store.links[0].HoursUsed)
	assert.Equal(t, uint(2), store.links[1].OvertimeEntryID)
	assert.Equal(t, 3, store.links[1].HoursUsed)
	for _, l := range store.links {
		assert.Equal(t, created.ID, l.DayOffID)
	}
}

func TestServiceCreateShiftWorker(t *testing.T) {
	store := newMemStore(entry(1, 24))
	svc := dayoff.NewService(store)

	user := dailyUser(1)
	user.WorkSchedule = models.ScheduleShift

	_, err := svc.Create(context.Background(), user, request(10))
	require.NoError(t, err)

	assert.True(t, store.entries[1].IsUsed)
	require.Len(t, store.links, 1)
	assert.Equal(t, 24, store.links[0].HoursUsed)
}

func TestServiceCreateInsufficientHours(t *testing.T) {
	store := newMemStore(entry(1, 3))
	svc := dayoff.NewService(store)

	_, err := svc.Create(context.Background(), dailyUser(1), request(10))

	var insufficient *dayoff.InsufficientHoursError
	require.ErrorAs(t, err, &insufficient)

	// Nothing committed: balance intact, no day off, no links.
	assert.Equal(t, 3, store.entries[1].RemainingHours)
	assert.Empty(t, store.dayOffs)
	assert.Empty(t, store.links)
}

func TestServiceCreateUnknownSchedule(t *testing.T) {
	store := newMemStore(entry(1, 8))
	svc := dayoff.NewService(store)

	user := dailyUser(1)
	user.WorkSchedule = "weekly"

	_, err := svc.Create(context.Background(), user, request(10))

	var schedErr *dayoff.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Empty(t, store.dayOffs)
}

func TestServiceCreateRollsBackOnStorageFailure(t *testing.T) {
	store := newMemStore(entry(1, 8))
	store.failCreateLinks = true
	svc := dayoff.NewService(store)

	_, err := svc.Create(context.Background(), dailyUser(1), request(10))
	require.Error(t, err)

	var insufficient *dayoff.InsufficientHoursError
	assert.False(t, errors.As(err, &insufficient), "storage failures must stay distinguishable from business errors")

	// The whole transaction rolled back, including the day-off row.
	assert.Equal(t, 8, store.entries[1].RemainingHours)
	assert.False(t, store.entries[1].IsUsed)
	assert.Empty(t, store.dayOffs)
	assert.Empty(t, store.links)
}

func TestServiceCreateConcurrentNoDoubleSpend(t *testing.T) {
	store := newMemStore(entry(1, 8))
	svc := dayoff.NewService(store)

	// Two requests race for the same 8-hour entry. Serialization must let
	// exactly one win; the loser sees the drained pool and fails cleanly.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), dailyUser(1), request(10))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, insufficient int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var ie *dayoff.InsufficientHoursError
		require.ErrorAs(t, err, &ie)
		insufficient++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, insufficient)

	// The entry was spent exactly once.
	spent := 0
	for _, l := range store.links {
		require.Equal(t, uint(1), l.OvertimeEntryID)
		spent += l.HoursUsed
	}
	assert.Equal(t, store.entries[1].Hours, spent)
	assert.Equal(t, 0, store.entries[1].RemainingHours)
	assert.True(t, store.entries[1].IsUsed)
	assert.Len(t, store.dayOffs, 1)
}
