package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/models"
)

func (h *Handler) ListSamples(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	filter := models.SampleFilter{
		Status: r.URL.Query().Get("status"),
		TestID: r.URL.Query().Get("test_id"),
	}
	samples, err := h.store.ListSamples(r.Context(), ac, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

func (h *Handler) GetSample(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapRead)
	if !ok {
		return
	}

	sample, err := h.store.GetSample(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *Handler) CreateSample(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapCreate)
	if !ok {
		return
	}

	var input models.CreateSampleInput
	if !decodeBody(w, r, &input) {
		return
	}

	sample, err := h.store.CreateSample(r.Context(), ac, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.created", "sample", sample.ID)
	writeJSON(w, http.StatusCreated, sample)
}

func (h *Handler) UpdateSample(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapUpdate)
	if !ok {
		return
	}

	var input models.UpdateSampleInput
	if !decodeBody(w, r, &input) {
		return
	}

	sample, err := h.store.UpdateSample(r.Context(), ac, chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.updated", "sample", sample.ID)
	writeJSON(w, http.StatusOK, sample)
}

func (h *Handler) DeleteSample(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authorize(w, r, access.CapDelete)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.DeleteSample(r.Context(), ac, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.recordMutation(ac, "entity.deleted", "sample", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
