package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Resolved is the outcome of a successful session lookup. Token is non-empty
// only when the session was renewed and the cookie has to be re-set.
type Resolved struct {
	UserID  int64
	Token   string
	Expires time.Time
}

// SessionService issues, resolves and revokes server-side login sessions.
// The cookie token is a signed pointer to a row in the sessions table.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		secret:      []byte(cfg.SecretKey),
		ttl:         cfg.SessionTTL,
		now:         dbx.Now,
	}
}

// TTL returns the lifetime of a freshly issued or renewed session.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Login opens a new session for userID and returns its cookie token.
func (s *SessionService) Login(ctx context.Context, userID int64) (string, error) {
	return s.create(ctx, s.db, userID)
}

// create stores a session through db, which may be a transaction.
func (s *SessionService) create(ctx context.Context, db dbx.DBTX, userID int64) (string, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Expires:   now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.repomanager.Sessions(db).Create(ctx, session); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(session.ID, s.secret, session.Expires)
	if err != nil {
		return "", fmt.Errorf("error signing session token: %w", err)
	}
	return token, nil
}

// Resolve maps a cookie token to its user. Tokens with a bad signature are
// rejected before the database is consulted. Missing or expired sessions
// yield common.ErrorUnauthorized; expired rows are removed on the way.
//
// When less than half of the TTL remains the session is extended to a full
// TTL and Resolved.Token carries the replacement cookie value.
func (s *SessionService) Resolve(ctx context.Context, token string) (*Resolved, error) {
	repo := s.repomanager.Sessions(s.db)

	sessionID, err := auth.GetSessionIDFromToken(token, s.secret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) && sessionID != "" {
			if err := repo.Delete(ctx, sessionID); err != nil {
				return nil, err
			}
		}
		return nil, common.ErrorUnauthorized
	}

	session, err := repo.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	now := s.now()
	if session.Expired(now) {
		if err := repo.Delete(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, common.ErrorUnauthorized
	}

	res := &Resolved{UserID: session.UserID, Expires: session.Expires}

	if session.Expires.Sub(now) < s.ttl/2 {
		expires := now.Add(s.ttl)
		if err := repo.Extend(ctx, session.ID, expires); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorUnauthorized
			}
			return nil, err
		}
		renewed, err := auth.GenerateToken(session.ID, s.secret, expires)
		if err != nil {
			return nil, fmt.Errorf("error signing session token: %w", err)
		}
		res.Token = renewed
		res.Expires = expires
	}

	return res, nil
}

// Logout deletes the session named by token. Unknown or forged tokens are
// ignored.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	sessionID, err := auth.GetSessionIDFromToken(token, s.secret)
	if sessionID == "" || (err != nil && !errors.Is(err, common.ErrTokenExpired)) {
		return nil
	}
	return s.repomanager.Sessions(s.db).Delete(ctx, sessionID)
}

// PurgeExpired removes every expired session and reports how many were dropped.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repomanager.Sessions(s.db).DeleteExpired(ctx, s.now())
}
