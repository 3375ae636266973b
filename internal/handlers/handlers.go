package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/audit"
	"labtrack-backend/internal/storage"
)

type Handler struct {
	store  *storage.Storage
	audit  *audit.Publisher
	logger *zap.Logger
}

func New(store *storage.Storage, auditLog *audit.Publisher, logger *zap.Logger) *Handler {
	return &Handler{store: store, audit: auditLog, logger: logger}
}

// RegisterRoutes mounts the tenant-scoped entity routes. The caller
// wraps the router in the auth middleware; every handler here assumes
// a verified access context is present.
func (h *Handler) RegisterRoutes(r chi.Router) {
	// Patients
	r.Get("/v1/patients", h.ListPatients)
	r.Post("/v1/patients", h.CreatePatient)
	r.Get("/v1/patients/{id}", h.GetPatient)
	r.Put("/v1/patients/{id}", h.UpdatePatient)
	r.Delete("/v1/patients/{id}", h.DeletePatient)

	// Test types
	r.Get("/v1/test-types", h.ListTestTypes)
	r.Post("/v1/test-types", h.CreateTestType)
	r.Get("/v1/test-types/{id}", h.GetTestType)
	r.Put("/v1/test-types/{id}", h.UpdateTestType)
	r.Delete("/v1/test-types/{id}", h.DeleteTestType)

	// Tests
	r.Get("/v1/tests", h.ListTests)
	r.Post("/v1/tests", h.CreateTest)
	r.Get("/v1/tests/{id}", h.GetTest)
	r.Put("/v1/tests/{id}", h.UpdateTest)
	r.Delete("/v1/tests/{id}", h.DeleteTest)

	// Samples
	r.Get("/v1/samples", h.ListSamples)
	r.Post("/v1/samples", h.CreateSample)
	r.Get("/v1/samples/{id}", h.GetSample)
	r.Put("/v1/samples/{id}", h.UpdateSample)
	r.Delete("/v1/samples/{id}", h.DeleteSample)

	// Tenant user management
	r.Get("/v1/users", h.ListUsers)
	r.Post("/v1/users", h.CreateUser)
	r.Put("/v1/users/{id}", h.UpdateUser)
	r.Delete("/v1/users/{id}", h.DeleteUser)
}

// authorize extracts the access context and runs the capability check
// before any storage work. Denials are audited.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, cap access.Capability) (access.Context, bool) {
	ac, ok := access.FromContext(r.Context())
	if !ok {
		h.writeError(w, accessMissingErr)
		return access.Context{}, false
	}

	if err := access.Check(ac, cap); err != nil {
		h.audit.Record(audit.Event{
			Kind:     "access.denied",
			TenantID: ac.TenantID,
			UserID:   ac.UserID,
			Detail:   string(cap),
		})
		h.writeError(w, err)
		return access.Context{}, false
	}

	return ac, true
}

func (h *Handler) recordMutation(ac access.Context, kind, entity, entityID string) {
	h.audit.Record(audit.Event{
		Kind:     kind,
		TenantID: ac.TenantID,
		UserID:   ac.UserID,
		Entity:   entity,
		EntityID: entityID,
	})
}
