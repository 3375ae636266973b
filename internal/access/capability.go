package access

import "labtrack-backend/internal/apperr"

// Capability is a class of operation gated independently per role.
type Capability string

const (
	CapCreate      Capability = "create"
	CapRead        Capability = "read"
	CapUpdate      Capability = "update"
	CapDelete      Capability = "delete"
	CapManageUsers Capability = "manage-users"
)

// grants is the full role/capability matrix. Absence means denied;
// nothing is ever inferred as allowed. Adding a role or capability is
// an edit here, not a code change in handlers.
var grants = map[Role]map[Capability]bool{
	RoleTenantAdmin: {
		CapCreate:      true,
		CapRead:        true,
		CapUpdate:      true,
		CapDelete:      true,
		CapManageUsers: true,
	},
	RoleTenantUser: {
		CapCreate: true,
		CapRead:   true,
		CapUpdate: true,
	},
}

// Check decides whether the caller's role may perform the given
// operation class. Handlers call this before touching storage, so a
// denied request has no side effects.
func Check(ac Context, cap Capability) error {
	if grants[ac.Role][cap] {
		return nil
	}
	return apperr.ErrPermissionDenied
}
