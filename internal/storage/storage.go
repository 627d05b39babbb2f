// Package storage persists session snapshots. Two backends exist: Redis
// for players who keep one running, and a plain JSON save file otherwise.
// Both serialize the same save document.
package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/session"
)

// Storage persists and restores session snapshots.
type Storage interface {
	// SaveSession writes a snapshot, overwriting any previous save for
	// the same session ID.
	SaveSession(ctx context.Context, snap *session.Snapshot) error

	// LoadSession returns the snapshot for id, or (nil, nil) when no
	// save exists. A uuid.Nil id resolves the most recent save.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Snapshot, error)

	// DeleteSession removes a save. Deleting a missing save is not an
	// error.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
