package handlers

import (
	"net/http"

	"labtrack-backend/internal/audit"
	"labtrack-backend/internal/models"
)

// RegisterTenant is the public bootstrap endpoint: it creates a tenant
// together with its first admin as one atomic unit and returns both
// ids. A failed registration leaves no tenant behind.
func (h *Handler) RegisterTenant(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterTenantInput
	if !decodeBody(w, r, &input) {
		return
	}

	tenant, admin, err := h.store.RegisterTenant(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.audit.Record(audit.Event{
		Kind:     "tenant.registered",
		TenantID: tenant.ID,
		UserID:   admin.ID,
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"tenant_id":     tenant.ID,
		"admin_user_id": admin.ID,
		"tenant":        tenant,
	})
}
