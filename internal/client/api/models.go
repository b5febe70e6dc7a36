package api

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      int64      `json:"user_id"`
}

// NewTask is the body of a create request. Empty fields take server defaults.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// TaskPatch lists the fields to change. Nil fields are left alone; set
// ClearDueDate to remove the due date.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	DueDate      *string
	ClearDueDate bool
}

func (p TaskPatch) body() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.Priority != nil {
		m["priority"] = *p.Priority
	}
	if p.ClearDueDate {
		m["due_date"] = nil
	} else if p.DueDate != nil {
		m["due_date"] = *p.DueDate
	}
	return m
}
