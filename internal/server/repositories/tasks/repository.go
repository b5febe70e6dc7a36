// Package tasks declares the repository contract for to-do items and its SQL
// implementation.
//
// Every read and write is scoped by the owning user id: a task that belongs
// to somebody else is indistinguishable from a task that does not exist, and
// both are reported as common.ErrorNotFound.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository defines CRUD operations on tasks.
type Repository interface {
	// Create inserts task, assigning ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// ListByUser returns the user's tasks matching filter, newest first.
	ListByUser(ctx context.Context, userID int64, filter models.TaskFilter) ([]*models.Task, error)

	// GetByID returns the task if it exists and is owned by userID.
	GetByID(ctx context.Context, id, userID int64) (*models.Task, error)

	// Update applies the non-nil fields of patch, refreshes UpdatedAt and
	// returns the stored result.
	Update(ctx context.Context, id, userID int64, patch models.TaskPatch) (*models.Task, error)

	// Delete removes the task permanently.
	Delete(ctx context.Context, id, userID int64) error
}
