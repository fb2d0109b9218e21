package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/service"
)

// TodoHandler handles todo CRUD and harvest HTTP requests.
type TodoHandler struct {
	todos    *service.TodoService
	harvests *service.HarvestService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos *service.TodoService, harvests *service.HarvestService) *TodoHandler {
	return &TodoHandler{todos: todos, harvests: harvests}
}

type todoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// HandleCreate creates a todo for the current user.
// POST /api/todos
// Request: {"title":"...","description":"...","status":"...","priority":"...","dueDate":"RFC3339"}
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req todoRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	todo := &domain.Todo{OwnerID: user.ID}
	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Status != nil {
		todo.Status = domain.TodoStatus(*req.Status)
	}
	if req.Priority != nil {
		todo.Priority = domain.TodoPriority(*req.Priority)
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "dueDate must be an RFC 3339 timestamp.")
			return
		}
		todo.DueDate = &due
	}

	if err := h.todos.Create(r.Context(), todo); err != nil {
		writeDomainError(w, err, "create todo")
		return
	}

	writeJSON(w, http.StatusCreated, toTodoDTO(todo))
}

// HandleList lists the current user's todos with optional filters.
// GET /api/todos?status=&priority=&due_before=&offset=&limit=
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	q := r.URL.Query()

	filter := domain.TodoFilter{
		Status:   domain.TodoStatus(q.Get("status")),
		Priority: domain.TodoPriority(q.Get("priority")),
		Offset:   intQuery(q.Get("offset"), 0),
		Limit:    intQuery(q.Get("limit"), 100),
	}
	if v := q.Get("due_before"); v != "" {
		due, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "due_before must be an RFC 3339 timestamp.")
			return
		}
		filter.DueBefore = &due
	}

	todos, err := h.todos.ListByOwner(r.Context(), user.ID, filter)
	if err != nil {
		writeDomainError(w, err, "list todos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todos": toTodoDTOs(todos)})
}

// HandleGet returns a single owned todo.
// GET /api/todos/{id}
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id.")
		return
	}

	todo, err := h.todos.GetByID(r.Context(), id, user.ID)
	if err != nil {
		writeDomainError(w, err, "get todo")
		return
	}

	writeJSON(w, http.StatusOK, toTodoDTO(todo))
}

// HandleUpdate applies a partial update to an owned todo.
// PUT /api/todos/{id}
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id.")
		return
	}

	var req todoRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	update := service.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TodoStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TodoPriority(*req.Priority)
		update.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.ClearDue = true
		} else {
			due, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "dueDate must be an RFC 3339 timestamp.")
				return
			}
			update.DueDate = &due
		}
	}

	todo, err := h.todos.Update(r.Context(), id, user.ID, update)
	if err != nil {
		writeDomainError(w, err, "update todo")
		return
	}

	writeJSON(w, http.StatusOK, toTodoDTO(todo))
}

// HandleDelete removes an owned todo.
// DELETE /api/todos/{id}
// Response: 204 No Content
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid todo id.")
		return
	}

	if err := h.todos.Delete(r.Context(), id, user.ID); err != nil {
		writeDomainError(w, err, "delete todo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleHarvest archives all of the current user's completed todos.
// POST /api/todos/harvest
// Response: {"harvestedCount":n,"newTotal":m} — n is 0 when nothing was completed.
func (h *TodoHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	result, err := h.harvests.Harvest(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "harvest todos")
		return
	}

	writeJSON(w, http.StatusOK, HarvestResultDTO{
		HarvestedCount: result.HarvestedCount,
		NewTotal:       result.NewTotal,
	})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func intQuery(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
