package handler

import (
	"net/http"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/service"
)

// AdminHandler handles admin-only HTTP requests.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// HandleListUsers lists users with optional filters.
// GET /api/admin/users?is_active=&role=&offset=&limit=
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.UserFilter{
		Offset: intQuery(q.Get("offset"), 0),
		Limit:  intQuery(q.Get("limit"), 100),
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := q.Get("role"); v != "" {
		role := domain.Role(v)
		if role != domain.RoleUser && role != domain.RoleAdmin {
			writeError(w, http.StatusUnprocessableEntity, "role must be user or admin.")
			return
		}
		filter.Role = &role
	}

	users, err := h.admin.ListUsers(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "admin list users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": toUserDTOs(users)})
}

// HandleGetUser returns one user by id.
// GET /api/admin/users/{id}
func (h *AdminHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	user, err := h.admin.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "admin get user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleUpdateRole promotes or demotes a user.
// PUT /api/admin/users/{id}/role
// Request: {"role":"user"|"admin"}
func (h *AdminHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	admin := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.admin.UpdateRole(r.Context(), admin.ID, id, domain.Role(req.Role))
	if err != nil {
		writeDomainError(w, err, "admin update role")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleUpdateStatus activates or deactivates an account.
// PUT /api/admin/users/{id}/status
// Request: {"isActive":true|false}
func (h *AdminHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	admin := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := readJSON(r, &req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.admin.UpdateStatus(r.Context(), admin.ID, id, *req.IsActive)
	if err != nil {
		writeDomainError(w, err, "admin update status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleDeleteUser removes a user and all owned data.
// DELETE /api/admin/users/{id}
// Response: 204 No Content
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	admin := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	if err := h.admin.DeleteUser(r.Context(), admin.ID, id); err != nil {
		writeDomainError(w, err, "admin delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListTodos lists todos across all users.
// GET /api/admin/todos?status=&user_id=&offset=&limit=
func (h *AdminHandler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.TodoFilter{
		Status: domain.TodoStatus(q.Get("status")),
		Offset: intQuery(q.Get("offset"), 0),
		Limit:  intQuery(q.Get("limit"), 100),
	}
	userID := int64(intQuery(q.Get("user_id"), 0))

	todos, err := h.admin.ListTodos(r.Context(), userID, filter)
	if err != nil {
		writeDomainError(w, err, "admin list todos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todos": toTodoDTOs(todos)})
}

// HandleStats returns system-wide counts.
// GET /api/admin/stats
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err, "admin stats")
		return
	}

	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}
