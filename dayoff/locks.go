package dayoff

import "sync"

// userLocks hands out one mutex per user id so day-off creation for the same
// user is serialized in-process. Cross-process serialization is the store's
// job (row locks on the overtime pool).
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for userID and returns it for the caller to unlock.
func (l *userLocks) lock(userID uint) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
