// Package journal implements an in-memory, append-only log with a single
// strictly increasing id sequence. It backs both the login audit log and
// the query history when no database is configured.
package journal

import "sync"

// Log is an append-only sequence of records of type T. Ids start at 1 and
// are assigned under the log's lock, so concurrent appenders never observe
// gaps or duplicates.
type Log[T any] struct {
	mu      sync.RWMutex
	entries []T
	setID   func(*T, int64)
	owner   func(T) string
}

// New returns an empty Log. setID stamps the assigned id into a record;
// owner names the user a record belongs to.
func New[T any](setID func(*T, int64), owner func(T) string) *Log[T] {
	return &Log[T]{setID: setID, owner: owner}
}

// Append assigns the next id to rec, stores it and returns the stored copy.
func (l *Log[T]) Append(rec T) T {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.setID(&rec, int64(len(l.entries))+1)
	l.entries = append(l.entries, rec)
	return rec
}

// Get returns the record with the given id.
func (l *Log[T]) Get(id int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var zero T
	if id < 1 || id > int64(len(l.entries)) {
		return zero, false
	}
	return l.entries[id-1], true
}

// ForOwner returns every record owned by owner in id order.
func (l *Log[T]) ForOwner(owner string) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, 0)
	for _, e := range l.entries {
		if l.owner(e) == owner {
			out = append(out, e)
		}
	}
	return out
}

// AmendLatest finds the newest record of owner that satisfies match and
// applies mutate to it, all under the write lock. It reports whether a
// record was found.
func (l *Log[T]) AmendLatest(owner string, match func(T) bool, mutate func(*T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.owner(l.entries[i]) == owner && match(l.entries[i]) {
			mutate(&l.entries[i])
			return true
		}
	}
	return false
}

// Len is the number of records, which is also the last assigned id.
func (l *Log[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
