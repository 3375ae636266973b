package storage

import (
	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
)

// Tenant scoping rules, applied by every repository method in this
// package that touches a tenant-scoped table:
//
//   - creates always write ac.TenantID, never a caller-supplied value;
//   - lists always carry a tenant_id equality predicate;
//   - by-id reads/updates/deletes match on (id, tenant_id), so a row
//     in another tenant reports ErrNotFound exactly like an absent
//     row;
//   - updates never touch the tenant_id column.
//
// There is deliberately no method here that queries a scoped table
// without an access.Context.

// requireScope rejects a context with no tenant before any SQL runs.
func requireScope(ac access.Context) error {
	if ac.TenantID == "" {
		return apperr.ErrAuth
	}
	return nil
}

// rejectTenantOverride fails when a payload tries to set or change a
// tenant reference. The acting tenant is the only value ever stored,
// so any differing value is an attempt to cross the tenant boundary.
func rejectTenantOverride(payload *string, ac access.Context) error {
	if payload != nil && *payload != ac.TenantID {
		return apperr.Validationf("tenant_id is immutable")
	}
	return nil
}
