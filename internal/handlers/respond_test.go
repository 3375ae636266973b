package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
)

func newTestHandler() *Handler {
	// nil store and audit: these tests exercise only paths that must
	// not touch storage.
	return New(nil, nil, zap.NewNop())
}

func TestWriteError_TaxonomyMapping(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		err    error
		status int
	}{
		{apperr.Validationf("bad input"), http.StatusBadRequest},
		{apperr.ErrTokenExpired, http.StatusUnauthorized},
		{apperr.ErrAuth, http.StatusUnauthorized},
		{apperr.ErrPermissionDenied, http.StatusForbidden},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.Duplicatef("email"), http.StatusConflict},
		{apperr.Internal(assert.AnError), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.writeError(rec, tt.err)
		assert.Equal(t, tt.status, rec.Code, "error %v", tt.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestWriteError_InternalDetailNotLeaked(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.writeError(rec, apperr.Internal(assert.AnError))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestAuthorize_DeniesBeforeStorage(t *testing.T) {
	h := newTestHandler()

	// A tenant_user issuing a delete is rejected by the capability
	// check alone; the nil store proves storage is never reached.
	ac := access.Context{TenantID: "t1", UserID: "u1", Role: access.RoleTenantUser}
	req := httptest.NewRequest(http.MethodDelete, "/v1/patients/p1", nil)
	req = req.WithContext(access.WithContext(req.Context(), ac))

	rec := httptest.NewRecorder()
	h.DeletePatient(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthorize_ManageUsersDeniedForTenantUser(t *testing.T) {
	h := newTestHandler()

	ac := access.Context{TenantID: "t1", UserID: "u1", Role: access.RoleTenantUser}
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	req = req.WithContext(access.WithContext(req.Context(), ac))

	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListPatients_BadFilterRejected(t *testing.T) {
	h := newTestHandler()

	// An unparsable is_active is a validation failure caught before
	// any storage access; the nil store would panic otherwise.
	ac := access.Context{TenantID: "t1", UserID: "u1", Role: access.RoleTenantUser}
	req := httptest.NewRequest(http.MethodGet, "/v1/patients?is_active=maybe", nil)
	req = req.WithContext(access.WithContext(req.Context(), ac))

	rec := httptest.NewRecorder()
	h.ListPatients(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthorize_MissingContextUnauthorized(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/patients", nil)
	rec := httptest.NewRecorder()
	h.ListPatients(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
