package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type taskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	UserID      int64   `json:"user_id"`
}

type userEnvelope struct {
	Message string        `json:"message,omitempty"`
	User    *userResponse `json:"user"`
}

type taskEnvelope struct {
	Message string        `json:"message,omitempty"`
	Task    *taskResponse `json:"task"`
}

type taskListResponse struct {
	Tasks []*taskResponse `json:"tasks"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toUserResponse(u *models.User) *userResponse {
	return &userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toTaskResponse(t *models.Task) *taskResponse {
	res := &taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
		UserID:      t.UserID,
	}
	if t.DueDate != nil {
		s := formatTime(*t.DueDate)
		res.DueDate = &s
	}
	return res
}

// dueDateLayouts are tried in order. Values without a zone are taken as UTC.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDueDate accepts RFC 3339, HTML datetime-local and plain dates. An
// empty string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, common.NewUserError(common.ErrorValidation, "Invalid due_date")
}

// decodeTaskPatch builds a TaskPatch from the recognized keys of body.
// Unknown keys are ignored. A null or empty due_date clears the date.
func decodeTaskPatch(body map[string]json.RawMessage) (models.TaskPatch, error) {
	var patch models.TaskPatch

	str := func(key string) (*string, error) {
		raw, ok := body[key]
		if !ok {
			return nil, nil
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, common.NewUserError(common.ErrorValidation, fmt.Sprintf("Invalid %s", key))
		}
		if v == nil {
			empty := ""
			return &empty, nil
		}
		return v, nil
	}

	var err error
	if patch.Title, err = str("title"); err != nil {
		return patch, err
	}
	if patch.Description, err = str("description"); err != nil {
		return patch, err
	}

	status, err := str("status")
	if err != nil {
		return patch, err
	}
	if status != nil {
		s := models.TaskStatus(*status)
		patch.Status = &s
	}

	priority, err := str("priority")
	if err != nil {
		return patch, err
	}
	if priority != nil {
		p := models.TaskPriority(*priority)
		patch.Priority = &p
	}

	due, err := str("due_date")
	if err != nil {
		return patch, err
	}
	if due != nil {
		if patch.DueDate, err = parseDueDate(*due); err != nil {
			return patch, err
		}
		patch.ClearDueDate = patch.DueDate == nil
	}

	return patch, nil
}
