package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskhub/taskhub/internal/models"
	"github.com/taskhub/taskhub/internal/tasks"
)

// TaskHandler serves the task CRUD surface. Authentication gates the routes
// (see middleware.RequireAuth) but tasks are global: any authenticated user
// may read or mutate any task.
type TaskHandler struct {
	Tasks *tasks.Service
}

// ==========================
// List Tasks
// ==========================

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tasks.List(r.Context())
	if err != nil {
		slog.Error("list tasks failed", "error", err)
		JSONError(w, "failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	if list == nil {
		list = []models.Task{}
	}
	JSON(w, list, http.StatusOK)
}

// ==========================
// Create Task
// ==========================

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		// ID is accepted but discarded: the store assigns ids.
		ID json.RawMessage `json:"id,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	task, err := h.Tasks.Create(r.Context(), input.Title, input.Description)
	if err != nil {
		if errors.Is(err, tasks.ErrValidation) {
			JSONError(w, "title must be between 1 and 100 characters", http.StatusBadRequest)
			return
		}
		slog.Error("create task failed", "error", err)
		JSONError(w, "failed to create task", http.StatusInternalServerError)
		return
	}

	JSON(w, task, http.StatusOK)
}

// ==========================
// Get Task By ID
// ==========================

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.Tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondTaskError(w, err, "failed to fetch task")
		return
	}

	JSON(w, task, http.StatusOK)
}

// ==========================
// Toggle Status
// ==========================

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	status, err := h.Tasks.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondTaskError(w, err, "failed to update task")
		return
	}

	JSON(w, map[string]interface{}{
		"message":    "task status updated successfully",
		"new_status": status,
	}, http.StatusOK)
}

// ==========================
// Delete Task
// ==========================

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondTaskError(w, err, "failed to delete task")
		return
	}

	JSON(w, map[string]string{"message": "task deleted successfully"}, http.StatusOK)
}

// respondTaskError maps service errors to the task endpoints' status codes.
func respondTaskError(w http.ResponseWriter, err error, internalMsg string) {
	switch {
	case errors.Is(err, tasks.ErrInvalidID):
		JSONError(w, "invalid task id format", http.StatusBadRequest)
	case errors.Is(err, tasks.ErrNotFound):
		JSONError(w, "task not found", http.StatusNotFound)
	default:
		slog.Error(internalMsg, "error", err)
		JSONError(w, internalMsg, http.StatusInternalServerError)
	}
}
