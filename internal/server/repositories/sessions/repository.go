// Package sessions declares the server-side repository contract for login
// sessions kept in persistent storage.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository defines operations for issuing, resolving and revoking sessions.
type Repository interface {
	// Create stores a new session row.
	Create(ctx context.Context, s *models.Session) error

	// Find looks up a session by id. Implementations return
	// common.ErrorNotFound when the session is absent.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Extend moves the expiry of an existing session.
	Extend(ctx context.Context, id string, expires time.Time) error

	// Delete removes a session. Deleting a non-existent session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session whose expiry is not after now and
	// reports how many rows were purged.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
