package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/models"
)

func (h *Handler) ListTestTypes(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	filter := models.TestTypeFilter{Category: r.URL.Query().Get("category")}
	isActive, err := queryBool(r, "is_active")
	if err != nil {
		h.writeError(w, err)
		return
	}
	filter.IsActive = isActive

	types, err := h.store.ListTestTypes(r.Context(), ac, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"test_types": types})
}

func (h *Handler) GetTestType(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	tt, err := h.store.GetTestType(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tt)
}

func (h *Handler) CreateTestType(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapCreate)
	if !ok {
		return
	}

	var input models.TestTypeInput
	if !decodeBody(w, r, &input) {
		return
	}

	tt, err := h.store.CreateTestType(r.Context(), ac, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.created", "test_type", tt.ID)
	writeJSON(w, http.StatusCreated, tt)
}

func (h *Handler) UpdateTestType(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapUpdate)
	if !ok {
		return
	}

	var input models.TestTypeInput
	if !decodeBody(w, r, &input) {
		return
	}

	tt, err := h.store.UpdateTestType(r.Context(), ac, chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.updated", "test_type", tt.ID)
	writeJSON(w, http.StatusOK, tt)
}

func (h *Handler) DeleteTestType(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapDelete)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.DeleteTestType(r.Context(), ac, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.deleted", "test_type", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
