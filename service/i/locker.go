package i

import "context"

// Locker hands out locks shared by every instance of the service.
type Locker interface {
	// Lock blocks until the lock for key is held or ctx is done. The returned function
	// releases it.
	Lock(ctx context.Context, key string) (unlock func() error, err error)
}
