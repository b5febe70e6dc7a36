package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gorilla/mux"
)

// taskID extracts the {id} path variable. Out-of-range ids answer 404.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return id, true
}

// ListTasks returns the user's tasks, optionally filtered by status and priority.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var filter models.TaskFilter
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		s := models.TaskStatus(v)
		filter.Status = &s
	}
	if v := q.Get("priority"); v != "" {
		p := models.TaskPriority(v)
		filter.Priority = &p
	}

	list, err := h.tasks.List(r.Context(), userID, filter)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	res := taskListResponse{Tasks: make([]*taskResponse, 0, len(list))}
	for _, t := range list {
		res.Tasks = append(res.Tasks, toTaskResponse(t))
	}
	respondWithJSON(w, http.StatusOK, res)
}

// CreateTask adds a task for the user.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			h.respondWithServiceError(w, r, err)
			return
		}
		in.DueDate = due
	}

	task, err := h.tasks.Create(r.Context(), userID, in)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, taskEnvelope{
		Message: "Task created successfully",
		Task:    toTaskResponse(task),
	})
}

// GetTask returns one task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id, userID)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, taskEnvelope{Task: toTaskResponse(task)})
}

// UpdateTask applies a partial update.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	// ownership first, so a foreign task is 404 whatever the body holds
	if _, err := h.tasks.Get(r.Context(), id, userID); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	var body map[string]json.RawMessage
	if !decodeJSON(w, r, &body) {
		return
	}

	patch, err := decodeTaskPatch(body)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), id, userID, patch)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, taskEnvelope{
		Message: "Task updated successfully",
		Task:    toTaskResponse(task),
	})
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id, userID); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
