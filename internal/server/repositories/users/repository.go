// Package users declares the repository contract for registered accounts and
// its SQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository stores users. Lookups return common.ErrorNotFound when no row
// matches; Create returns common.ErrorAlreadyExists on a duplicate username
// or email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
