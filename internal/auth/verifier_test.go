package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

type fakeUserSource struct {
	users   map[string]*models.User
	tenants map[string]*models.Tenant
}

func (f *fakeUserSource) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserSource) GetTenant(_ context.Context, id string) (*models.Tenant, error) {
	tenant, ok := f.tenants[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return tenant, nil
}

func newFakeSource() *fakeUserSource {
	return &fakeUserSource{
		users: map[string]*models.User{
			"user-1": {
				ID:       "user-1",
				TenantID: "tenant-1",
				Role:     access.RoleTenantAdmin,
				IsActive: true,
			},
		},
		tenants: map[string]*models.Tenant{
			"tenant-1": {ID: "tenant-1", Name: "Lab A", IsActive: true},
		},
	}
}

func TestVerify_HappyPath(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	source := newFakeSource()
	token, err := IssueAccessToken(source.users["user-1"])
	require.NoError(t, err)

	ac, err := NewVerifier(source).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, access.Context{TenantID: "tenant-1", UserID: "user-1", Role: access.RoleTenantAdmin}, ac)
}

func TestVerify_RoleChangeInvalidatesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	source := newFakeSource()
	token, err := IssueAccessToken(source.users["user-1"])
	require.NoError(t, err)

	// Demote after issuance; the embedded admin role no longer matches
	// the stored state, so the token stops working immediately.
	source.users["user-1"].Role = access.RoleTenantUser

	_, err = NewVerifier(source).Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestVerify_DeletedUserRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	source := newFakeSource()
	token, err := IssueAccessToken(source.users["user-1"])
	require.NoError(t, err)

	delete(source.users, "user-1")

	_, err = NewVerifier(source).Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestVerify_DeactivatedUserRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	source := newFakeSource()
	token, err := IssueAccessToken(source.users["user-1"])
	require.NoError(t, err)

	source.users["user-1"].IsActive = false

	_, err = NewVerifier(source).Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestVerify_DeactivatedTenantRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	source := newFakeSource()
	token, err := IssueAccessToken(source.users["user-1"])
	require.NoError(t, err)

	source.tenants["tenant-1"].IsActive = false

	_, err = NewVerifier(source).Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestVerify_GarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := NewVerifier(newFakeSource()).Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}
