// Package services contains server-side business logic: account
// registration and login, session handling and task management. Services
// validate input and translate repository errors into the shared taxonomy
// from internal/common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// UserService provides account operations:
// - Register: create a user and log it in
// - Login: verify credentials and open a session
// - GetByID: load the current user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

// NewUserService constructs a UserService. New sessions are issued through sessions.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessions:    sessions,
	}
}

// Register validates the input, creates the user and opens its first session
// in a single transaction. It returns the stored user and the session token.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, "", common.NewUserError(common.ErrorValidation, "Username must be at least 3 characters")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, "", common.NewUserError(common.ErrorValidation, "Password must be at least 6 characters")
	}
	if email == "" {
		return nil, "", common.NewUserError(common.ErrorValidation, "Email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, "", common.NewUserError(common.ErrorValidation, "Invalid email address")
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, "", common.NewUserError(common.ErrorAlreadyExists, "Username already exists")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", err
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.NewUserError(common.ErrorAlreadyExists, "Email already exists")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", err
	}

	digest, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return nil, "", common.NewUserError(common.ErrorValidation, "Password must be at most 72 characters")
		}
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	var (
		user  *models.User
		token string
	)
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: digest,
		})
		if err != nil {
			return err
		}
		token, err = s.sessions.create(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", s.conflict(ctx, username)
		}
		return nil, "", err
	}

	return user, token, nil
}

// conflict reports which unique key a failed insert collided on.
func (s *UserService) conflict(ctx context.Context, username string) error {
	if _, err := s.repomanager.Users(s.db).GetByUsername(ctx, username); err == nil {
		return common.NewUserError(common.ErrorAlreadyExists, "Username already exists")
	}
	return common.NewUserError(common.ErrorAlreadyExists, "Email already exists")
}

// Login verifies the credentials and opens a new session. Unknown users and
// wrong passwords are reported identically.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", common.NewUserError(common.ErrorValidation, "Username and password are required")
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.NewUserError(common.ErrorUnauthorized, "Invalid credentials")
		}
		return nil, "", err
	}
	if !cryptox.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.NewUserError(common.ErrorUnauthorized, "Invalid credentials")
	}

	token, err := s.sessions.Login(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewUserError(common.ErrorNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}
