package repomanager

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLRepositoryManager_Constructors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewSQLRepositoryManager(dbx.DialectSQLite)
	assert.Equal(t, dbx.DialectSQLite, m.Dialect())

	_, ok := m.Users(db).(*users.SQLRepository)
	assert.True(t, ok, "Users should return *users.SQLRepository")
	_, ok = m.Tasks(db).(*tasks.SQLRepository)
	assert.True(t, ok, "Tasks should return *tasks.SQLRepository")
	_, ok = m.Sessions(db).(*sessions.SQLRepository)
	assert.True(t, ok, "Sessions should return *sessions.SQLRepository")
}

func TestSQLRepositoryManager_PostgresRebindsPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("sid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := NewSQLRepositoryManager(dbx.DialectPostgres)
	require.NoError(t, m.Sessions(db).Delete(context.Background(), "sid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositoryManager_RunMigrationsIsIdempotent(t *testing.T) {
	db := repotest.NewSQLiteDB(t)
	m := NewSQLRepositoryManager(dbx.DialectSQLite)

	require.NoError(t, m.RunMigrations(context.Background(), db))
	require.NoError(t, m.RunMigrations(context.Background(), db))

	uid := repotest.InsertUser(t, db, "alice")
	err := m.Sessions(db).Create(context.Background(), &models.Session{
		ID: "s", UserID: uid, Expires: dbx.Now().Add(time.Hour),
	})
	require.NoError(t, err)
}
