package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repotest"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	db       *sql.DB
	sessions *SessionService
	users    *UserService
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := repotest.NewSQLiteDB(t)
	rm := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	cfg := &config.Config{SecretKey: testSecret, SessionTTL: 24 * time.Hour}

	sessions := NewSessionService(db, rm, cfg)
	return &fixture{
		db:       db,
		sessions: sessions,
		users:    NewUserService(db, rm, sessions),
		tasks:    NewTaskService(db, rm),
	}
}

func (f *fixture) register(t *testing.T, username string) int64 {
	t.Helper()
	u, _, err := f.users.Register(context.Background(), username, username+"@example.com", "secret1")
	if err != nil {
		t.Fatalf("register %q: %v", username, err)
	}
	return u.ID
}
