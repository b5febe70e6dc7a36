package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// TaskInput carries the fields of a new task. Zero Status and Priority take
// their defaults.
type TaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// TaskService manages a user's tasks. Every method is scoped by the owner id;
// tasks of other users are reported as not found.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

var errTaskNotFound = common.NewUserError(common.ErrorNotFound, "Task not found")

func validateStatus(s models.TaskStatus) error {
	if !s.Valid() {
		return common.NewUserError(common.ErrorValidation, "Invalid status")
	}
	return nil
}

func validatePriority(p models.TaskPriority) error {
	if !p.Valid() {
		return common.NewUserError(common.ErrorValidation, "Invalid priority")
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return errTaskNotFound
	}
	return err
}

// Create validates in and stores a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID int64, in TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.NewUserError(common.ErrorValidation, "Title is required")
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Status:      models.TaskStatusPending,
		Priority:    models.TaskPriorityMedium,
		DueDate:     in.DueDate,
	}
	if in.Status != "" {
		if err := validateStatus(in.Status); err != nil {
			return nil, err
		}
		task.Status = in.Status
	}
	if in.Priority != "" {
		if err := validatePriority(in.Priority); err != nil {
			return nil, err
		}
		task.Priority = in.Priority
	}

	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// List returns the user's tasks matching filter, newest first.
func (s *TaskService) List(ctx context.Context, userID int64, filter models.TaskFilter) ([]*models.Task, error) {
	if filter.Status != nil {
		if err := validateStatus(*filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Priority != nil {
		if err := validatePriority(*filter.Priority); err != nil {
			return nil, err
		}
	}
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID, filter)
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id, userID int64) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// Update applies patch to the task. A missing or foreign task is reported
// before any problem with the patch itself.
func (s *TaskService) Update(ctx context.Context, id, userID int64, patch models.TaskPatch) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	if _, err := repo.GetByID(ctx, id, userID); err != nil {
		return nil, notFound(err)
	}

	if patch.Empty() {
		return nil, common.NewUserError(common.ErrorValidation, "No fields to update")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, common.NewUserError(common.ErrorValidation, "Title is required")
		}
		patch.Title = &title
	}
	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return nil, err
		}
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return nil, err
		}
	}

	task, err := repo.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// Delete removes the task permanently.
func (s *TaskService) Delete(ctx context.Context, id, userID int64) error {
	return notFound(s.repomanager.Tasks(s.db).Delete(ctx, id, userID))
}
