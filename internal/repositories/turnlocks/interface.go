// Package turnlocks guards a session against overlapping turn
// resolutions. A lock is held from the moment a request is sent until
// its response has been applied or discarded.
package turnlocks

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_locker.go -package=mockturnlocks github.com/KirkDiggler/dnd-battlemap/internal/repositories/turnlocks Locker

// Locker hands out one in-flight token per key
type Locker interface {
	// Acquire returns a token for key or a busy error when another
	// holder has it.
	Acquire(ctx context.Context, key string) (string, error)

	// Release frees key if token still owns it. Releasing a lock that
	// expired or was never held is not an error.
	Release(ctx context.Context, key, token string) error
}
