package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

// SQLRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository returns a new SQLRepository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var due sql.NullTime
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&due, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time.UTC()
		t.DueDate = &d
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// Create inserts a task. Timestamps are assigned here, not by the caller.
func (r *SQLRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (title, description, status, priority, due_date, created_at, updated_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	now := dbx.Now()

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, string(task.Status), string(task.Priority),
		nullTime(task.DueDate), now, now, task.UserID).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	task.CreatedAt = now
	task.UpdatedAt = now
	return task, nil
}

// ListByUser selects the user's tasks, optionally narrowed by exact status
// and priority, ordered by creation time descending.
func (r *SQLRepository) ListByUser(ctx context.Context, userID int64, filter models.TaskFilter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []any{userID}

	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, string(*filter.Status))
	}
	if filter.Priority != nil {
		query += ` AND priority = ?`
		args = append(args, string(*filter.Priority))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// GetByID returns a single task owned by userID.
func (r *SQLRepository) GetByID(ctx context.Context, id, userID int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// Update writes only the columns present in patch. Column names come from
// a fixed list, never from caller input.
func (r *SQLRepository) Update(ctx context.Context, id, userID int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.Empty() {
		return nil, common.NewUserError(common.ErrorValidation, "No fields to update")
	}

	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*patch.Priority))
	}
	if patch.ClearDueDate {
		sets = append(sets, "due_date = ?")
		args = append(args, sql.NullTime{})
	} else if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, nullTime(patch.DueDate))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, dbx.Now(), id, userID)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? AND user_id = ? RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// Delete removes a task. It expects exactly one row to be affected.
func (r *SQLRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
