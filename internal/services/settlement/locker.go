package settlement

import (
	"context"
	"errors"
	"sync"
	"time"

	domainerrors "usercenter/internal/errors"

	"golang.org/x/sync/semaphore"
)

// UserLocker is a keyed mutex: one critical section per user id. Entries
// are reference counted and dropped once nobody holds or waits on them, so
// the map only grows with the number of users currently withdrawing.
type UserLocker struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	sem  *semaphore.Weighted
	refs int
}

func NewUserLocker() *UserLocker {
	return &UserLocker{locks: make(map[uint]*userLock)}
}

// Acquire enters the critical section of userID, waiting at most timeout.
// It fails with ErrBusy when the wait times out, or with the context's
// error when ctx ends first. The returned release func is safe to call more
// than once.
func (l *UserLocker) Acquire(ctx context.Context, userID uint, timeout time.Duration) (func(), error) {
	entry := l.ref(userID)

	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := entry.sem.Acquire(waitCtx, 1); err != nil {
		l.unref(userID)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domainerrors.ErrBusy
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.sem.Release(1)
			l.unref(userID)
		})
	}, nil
}

// Len reports how many users have a live entry.
func (l *UserLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *UserLocker) ref(userID uint) *userLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &userLock{sem: semaphore.NewWeighted(1)}
		l.locks[userID] = entry
	}
	entry.refs++
	return entry
}

func (l *UserLocker) unref(userID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[userID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, userID)
	}
}
