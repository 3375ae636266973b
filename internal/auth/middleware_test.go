package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

type failingUserSource struct {
	err error
}

func (f *failingUserSource) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func (f *failingUserSource) GetTenant(context.Context, string) (*models.Tenant, error) {
	return nil, f.err
}

func protectedProbe(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := access.FromContext(r.Context())
		*reached = ok
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_ValidTokenAttachesContext(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	source := newFakeSource()
	token, err := IssueAccessToken(source.users["user-1"])
	require.NoError(t, err)

	var reached bool
	handler := Middleware(NewVerifier(source), zap.NewNop())(protectedProbe(&reached))

	req := httptest.NewRequest(http.MethodGet, "/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestMiddleware_MissingHeaderUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var reached bool
	handler := Middleware(NewVerifier(newFakeSource()), zap.NewNop())(protectedProbe(&reached))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/patients", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestMiddleware_StorageFailureIsInternalError(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueAccessToken(&models.User{
		ID:       "user-1",
		TenantID: "tenant-1",
		Role:     access.RoleTenantAdmin,
		IsActive: true,
	})
	require.NoError(t, err)

	// A database outage during the live re-read is not a bad
	// credential; the caller gets 500, not authentication_failed.
	source := &failingUserSource{err: apperr.Internal(errors.New("connection refused"))}

	var reached bool
	handler := Middleware(NewVerifier(source), zap.NewNop())(protectedProbe(&reached))

	req := httptest.NewRequest(http.MethodGet, "/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.False(t, reached)
}
