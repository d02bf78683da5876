package usecase

import "sync"

// aggregateLocks hands out one mutex per aggregate id so that
// read-check-mutate-save sequences on the same showtime or booking
// are serialized while different aggregates proceed in parallel.
// Locks are never evicted; the id space is small and long-lived.
type aggregateLocks struct {
	locks sync.Map
}

// lock acquires the mutex for key and returns its unlock func.
func (l *aggregateLocks) lock(key string) func() {
	v, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func showtimeKey(id string) string { return "showtime:" + id }

func bookingKey(id string) string { return "booking:" + id }
