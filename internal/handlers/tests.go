package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/models"
)

func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	filter := models.TestFilter{
		Status:    r.URL.Query().Get("status"),
		Priority:  r.URL.Query().Get("priority"),
		PatientID: r.URL.Query().Get("patient_id"),
	}
	tests, err := h.store.ListTests(r.Context(), ac, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tests": tests})
}

func (h *Handler) GetTest(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	test, err := h.store.GetTest(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, test)
}

func (h *Handler) CreateTest(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapCreate)
	if !ok {
		return
	}

	var input models.CreateTestInput
	if !decodeBody(w, r, &input) {
		return
	}

	test, err := h.store.CreateTest(r.Context(), ac, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.created", "test", test.ID)
	writeJSON(w, http.StatusCreated, test)
}

func (h *Handler) UpdateTest(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapUpdate)
	if !ok {
		return
	}

	var input models.UpdateTestInput
	if !decodeBody(w, r, &input) {
		return
	}

	test, err := h.store.UpdateTest(r.Context(), ac, chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.updated", "test", test.ID)
	writeJSON(w, http.StatusOK, test)
}

func (h *Handler) DeleteTest(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapDelete)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.DeleteTest(r.Context(), ac, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.deleted", "test", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
