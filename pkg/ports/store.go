// Package ports declares the interfaces between the cutmode core and its
// pluggable infrastructure (session persistence, distributed locking).
package ports

import (
	"context"
	"time"

	"github.com/cnckit/cutmode/pkg/domain"
)

// StateStore persists conversation state between turns. Implementations must
// isolate stored state from caller mutation (copy or serialize on Save/Load).
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}

// UnlockFunc releases a previously acquired distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes access to a session across processes. Hosts
// running a single replica can leave it nil; the in-process session lock is
// enough there.
type DistributedLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
