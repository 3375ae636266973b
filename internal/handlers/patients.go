package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/models"
)

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	filter := models.PatientFilter{Search: r.URL.Query().Get("search")}
	isActive, err := queryBool(r, "is_active")
	if err != nil {
		h.writeError(w, err)
		return
	}
	filter.IsActive = isActive

	patients, err := h.store.ListPatients(r.Context(), ac, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patients": patients})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	patient, err := h.store.GetPatient(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapCreate)
	if !ok {
		return
	}

	var input models.PatientInput
	if !decodeBody(w, r, &input) {
		return
	}

	patient, err := h.store.CreatePatient(r.Context(), ac, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.created", "patient", patient.ID)
	writeJSON(w, http.StatusCreated, patient)
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapUpdate)
	if !ok {
		return
	}

	var input models.PatientInput
	if !decodeBody(w, r, &input) {
		return
	}

	patient, err := h.store.UpdatePatient(r.Context(), ac, chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.updated", "patient", patient.ID)
	writeJSON(w, http.StatusOK, patient)
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapDelete)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.DeletePatient(r.Context(), ac, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.deleted", "patient", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
