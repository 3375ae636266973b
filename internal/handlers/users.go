package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/models"
)

// User management is gated on the manage-users capability, which only
// tenant_admin holds. Created users always land in the caller's
// tenant.

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapManageUsers)
	if !ok {
		return
	}

	users, err := h.store.ListUsers(r.Context(), ac)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapManageUsers)
	if !ok {
		return
	}

	var input models.CreateUserInput
	if !decodeBody(w, r, &input) {
		return
	}

	user, err := h.store.CreateUser(r.Context(), ac, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "user.created", "user", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapManageUsers)
	if !ok {
		return
	}

	var input models.UpdateUserInput
	if !decodeBody(w, r, &input) {
		return
	}

	user, err := h.store.UpdateUser(r.Context(), ac, chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "user.updated", "user", user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapManageUsers)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.DeleteUser(r.Context(), ac, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "user.deleted", "user", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
