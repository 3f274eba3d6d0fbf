package recommendation

import "sync"

// userLocks serializes the supersede-and-write of a rider's ideal
// assignment. Two concurrent selection runs for the same rider must not
// interleave, otherwise a stale score could overwrite a newer one.
//
// Entries are never evicted; the map grows with the number of distinct
// riders seen by this process, which is bounded and small.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
