// Package lock provides the mutual-exclusion primitive for batch jobs: a
// named lock with a bounded TTL, so a crashed holder never locks a job out
// permanently.
package lock

import (
	"context"
	"sync"
	"time"
)

// Locker guards a named critical section. Acquire returns false without
// error when another holder owns the lock; TTL bounds how long a dead holder
// can keep it.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type localLocker struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewLocalLocker returns a process-local Locker for single-instance
// deployments or tests.
func NewLocalLocker() Locker {
	return &localLocker{expires: make(map[string]time.Time)}
}

func (l *localLocker) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if exp, held := l.expires[key]; held && now.Before(exp) {
		return false, nil
	}
	l.expires[key] = now.Add(ttl)
	return true, nil
}

func (l *localLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.expires, key)
	return nil
}
