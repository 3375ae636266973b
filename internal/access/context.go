package access

import "context"

// Role is a user's role within its tenant.
type Role string

const (
	RoleTenantAdmin Role = "tenant_admin"
	RoleTenantUser  Role = "tenant_user"
)

// ValidRole reports whether r is one of the assignable tenant roles.
func ValidRole(r Role) bool {
	return r == RoleTenantAdmin || r == RoleTenantUser
}

// Context is the identity a verified request acts under: the tenant it
// is scoped to, the user that issued it, and that user's role. It is an
// immutable value built once per request and passed explicitly into
// every guard and storage call. It is never held in package state, so
// one request's context cannot leak into another under concurrent load.
type Context struct {
	TenantID string
	UserID   string
	Role     Role
}

type contextKey string

const accessKey contextKey = "labtrack_access_context"

// WithContext attaches the access context to a request context.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, accessKey, ac)
}

// FromContext extracts the access context set by the auth middleware.
func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(accessKey).(Context)
	return ac, ok
}
