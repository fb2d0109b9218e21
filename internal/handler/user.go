package handler

import (
	"net/http"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/service"
)

// UserHandler handles profile and gamification HTTP requests for the
// current user.
type UserHandler struct {
	users    *service.UserService
	harvests *service.HarvestService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, harvests *service.HarvestService) *UserHandler {
	return &UserHandler{users: users, harvests: harvests}
}

// HandleUpdateProfile changes the current user's email and/or username.
// PUT /api/users/me
// Request: {"email":"...","username":"..."} — empty fields are unchanged.
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, req.Email, req.Username)
	if err != nil {
		writeDomainError(w, err, "update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(updated)})
}

// HandleChangePassword changes the current user's password.
// POST /api/users/me/change-password
// Request: {"oldPassword":"...","newPassword":"..."}
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.users.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		writeDomainError(w, err, "change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed. Please log in again."})
}

// HandleDeleteAccount permanently deletes the current user's account.
// DELETE /api/users/me
// Response: 204 No Content
func (h *UserHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.users.DeleteAccount(r.Context(), user.ID); err != nil {
		writeDomainError(w, err, "delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRank returns the current user's tier and progress toward the next.
// GET /api/users/me/rank
func (h *UserHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	rank := domain.RankForCount(user.TotalCompletedCount)
	writeJSON(w, http.StatusOK, toRankDTO(rank, user.TotalCompletedCount))
}

// HandleHarvestHistory returns the current user's harvest log, newest first.
// GET /api/users/me/harvests
func (h *UserHandler) HandleHarvestHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	records, err := h.harvests.History(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "harvest history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"harvests": toHarvestRecordDTOs(records)})
}
