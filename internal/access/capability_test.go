package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labtrack-backend/internal/apperr"
)

func TestCheck_AdminHasAllCapabilities(t *testing.T) {
	ac := Context{TenantID: "t1", UserID: "u1", Role: RoleTenantAdmin}

	for _, cap := range []Capability{CapCreate, CapRead, CapUpdate, CapDelete, CapManageUsers} {
		assert.NoError(t, Check(ac, cap), "capability %s", cap)
	}
}

func TestCheck_TenantUserMatrix(t *testing.T) {
	ac := Context{TenantID: "t1", UserID: "u2", Role: RoleTenantUser}

	tests := []struct {
		cap     Capability
		allowed bool
	}{
		{CapCreate, true},
		{CapRead, true},
		{CapUpdate, true},
		{CapDelete, false},
		{CapManageUsers, false},
	}

	for _, tt := range tests {
		err := Check(ac, tt.cap)
		if tt.allowed {
			assert.NoError(t, err, "capability %s", tt.cap)
		} else {
			require.Error(t, err, "capability %s", tt.cap)
			assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
		}
	}
}

func TestCheck_UnknownRoleDeniedEverything(t *testing.T) {
	ac := Context{TenantID: "t1", UserID: "u3", Role: Role("superuser")}

	for _, cap := range []Capability{CapCreate, CapRead, CapUpdate, CapDelete, CapManageUsers} {
		assert.ErrorIs(t, Check(ac, cap), apperr.ErrPermissionDenied)
	}
}

func TestCheck_UnknownCapabilityDenied(t *testing.T) {
	ac := Context{TenantID: "t1", UserID: "u1", Role: RoleTenantAdmin}
	assert.ErrorIs(t, Check(ac, Capability("export")), apperr.ErrPermissionDenied)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleTenantAdmin))
	assert.True(t, ValidRole(RoleTenantUser))
	assert.False(t, ValidRole(Role("admin")))
	assert.False(t, ValidRole(Role("")))
}

func TestContextRoundTrip(t *testing.T) {
	ac := Context{TenantID: "t1", UserID: "u1", Role: RoleTenantAdmin}

	ctx := WithContext(context.Background(), ac)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, ac, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
