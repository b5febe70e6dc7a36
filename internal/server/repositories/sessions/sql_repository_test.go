package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+sessions\b.*VALUES\s*\(\?,\s*\?,\s*\?,\s*\?\)\s*$`
	mock.ExpectExec(q).
		WithArgs("sid", int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &models.Session{ID: "sid", UserID: 1, Expires: time.Now().Add(time.Hour)}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not filled")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+sessions`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Session{ID: "sid", UserID: 1, Expires: time.Now()})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*expires_at,\s*created_at\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\?\s*$`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\?\s*$`).
		WithArgs("sid").
		WillReturnError(errors.New("boom"))

	if err := repo.Delete(context.Background(), "sid"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSQLite_Lifecycle(t *testing.T) {
	db := repotest.NewSQLiteDB(t)
	ctx := context.Background()
	uid := repotest.InsertUser(t, db, "alice")
	repo := NewSQLRepository(db)

	expires := dbx.Now().Add(time.Hour)
	require.NoError(t, repo.Create(ctx, &models.Session{ID: "s1", UserID: uid, Expires: expires}))

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uid, got.UserID)
	assert.True(t, expires.Equal(got.Expires))

	later := expires.Add(2 * time.Hour)
	require.NoError(t, repo.Extend(ctx, "s1", later))
	got, err = repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, later.Equal(got.Expires))

	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err = repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Extend(ctx, "s1", later), common.ErrorNotFound)
}

func TestSQLite_DuplicateID(t *testing.T) {
	db := repotest.NewSQLiteDB(t)
	ctx := context.Background()
	uid := repotest.InsertUser(t, db, "alice")
	repo := NewSQLRepository(db)

	s := &models.Session{ID: "dup", UserID: uid, Expires: dbx.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, s))
	assert.Error(t, repo.Create(ctx, s))
}

func TestSQLite_DeleteExpired(t *testing.T) {
	db := repotest.NewSQLiteDB(t)
	ctx := context.Background()
	uid := repotest.InsertUser(t, db, "alice")
	repo := NewSQLRepository(db)

	now := dbx.Now()
	require.NoError(t, repo.Create(ctx, &models.Session{ID: "old", UserID: uid, Expires: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.Session{ID: "edge", UserID: uid, Expires: now}))
	require.NoError(t, repo.Create(ctx, &models.Session{ID: "live", UserID: uid, Expires: now.Add(time.Hour)}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.Find(ctx, "live")
	assert.NoError(t, err)
	assert.Equal(t, 1, repotest.Count(t, db, "sessions"))
}
