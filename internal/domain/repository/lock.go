package repository

import "context"

// Locker serialises runners. Acquire returns errors.ErrLocked when another
// runner holds the lock.
type Locker interface {
	Acquire(ctx context.Context) (release func(context.Context) error, err error)
}
