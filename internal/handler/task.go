package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
	"github.com/vv-omkareshwar/Task-Management-App/internal/service"
)

// TaskHandler handles task CRUD HTTP requests. Every route is behind
// RequireAuth; the owner id always comes from the verified token, never
// from the request body.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleList returns all tasks owned by the caller.
// GET /api/task
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	tasks, err := h.tasks.List(r.Context(), userID)
	if err != nil {
		slog.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleCreate creates a new task owned by the caller.
// POST /api/task
// Request: {"title":"...","description":"...","status":"...","priority":"...","deadline":"..."}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Status      string  `json:"status"`
		Priority    string  `json:"priority"`
		Deadline    *string `json:"deadline"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
		Priority:    domain.Priority(req.Priority),
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Deadline must be an RFC 3339 timestamp.")
			return
		}
		task.Deadline = &deadline
	}

	if err := h.tasks.Create(r.Context(), userID, task); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, toTaskDTO(task))
}

// HandleUpdate applies a sparse patch to a task. Fields absent from the body
// are left untouched; explicit empty values are assignments.
// PUT /api/task/{id}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id.")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		Deadline    *string `json:"deadline"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Deadline must be an RFC 3339 timestamp.")
			return
		}
		patch.Deadline = &deadline
	}

	task, err := h.tasks.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		writeTaskError(w, err, "update task")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleDelete removes a task owned by the caller.
// DELETE /api/task/{id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id.")
		return
	}

	if err := h.tasks.Delete(r.Context(), userID, taskID); err != nil {
		writeTaskError(w, err, "delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeTaskError maps mutation pipeline errors onto the wire taxonomy:
// validation 400, wrong owner 403, missing resource 404, the rest 500.
func writeTaskError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not allowed.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
	}
}
