package storage

import (
	"context"

	"labtrack-backend/internal/models"
)

const tenantColumns = `id, name, contact_email, contact_phone, address_line1, address_line2,
	city, state, country, postal_code, is_active, created_at, updated_at`

// GetTenant looks a tenant up by primary id. It is identity plumbing
// (login and verification need the tenant name and active flag before
// a scoped context exists), not part of the scoped entity surface.
func (s *Storage) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	if err := s.db.GetContext(ctx, &tenant, query, id); err != nil {
		return nil, rowErr(err)
	}
	return &tenant, nil
}
