package storage

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const minPasswordLength = 8

// RegisterTenant creates a tenant together with its first admin user
// as one transaction. Either both rows exist afterwards or neither
// does; a tenant without an admin is never observable. Concurrent
// registrations racing on the same email are settled by the unique
// constraints, the loser sees ErrDuplicate.
func (s *Storage) RegisterTenant(ctx context.Context, input models.RegisterTenantInput) (*models.Tenant, *models.User, error) {
	if err := validateRegistration(input); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	defer tx.Rollback()

	var tenant models.Tenant
	tenantQuery := `
		INSERT INTO tenants (name, contact_email, contact_phone, address_line1, address_line2,
			city, state, country, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + tenantColumns
	err = tx.QueryRowxContext(ctx, tenantQuery,
		input.Name, strings.ToLower(input.ContactEmail), input.ContactPhone,
		input.AddressLine1, input.AddressLine2, input.City, input.State,
		input.Country, input.PostalCode,
	).StructScan(&tenant)
	if err != nil {
		return nil, nil, writeErr(err, "tenant")
	}

	var admin models.User
	userQuery := `
		INSERT INTO users (tenant_id, email, password_hash, first_name, last_name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns
	err = tx.QueryRowxContext(ctx, userQuery,
		tenant.ID, strings.ToLower(input.AdminEmail), string(hash),
		input.AdminFirstName, input.AdminLastName, input.AdminPhone,
		access.RoleTenantAdmin,
	).StructScan(&admin)
	if err != nil {
		return nil, nil, writeErr(err, "user email")
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, apperr.Internal(err)
	}

	return &tenant, &admin, nil
}

func validateRegistration(input models.RegisterTenantInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return apperr.Validationf("tenant name is required")
	case !strings.Contains(input.ContactEmail, "@"):
		return apperr.Validationf("valid contact_email is required")
	case !strings.Contains(input.AdminEmail, "@"):
		return apperr.Validationf("valid admin_email is required")
	case len(input.AdminPassword) < minPasswordLength:
		return apperr.Validationf("admin_password must be at least %d characters", minPasswordLength)
	case strings.TrimSpace(input.AdminFirstName) == "":
		return apperr.Validationf("admin_first_name is required")
	case strings.TrimSpace(input.AdminLastName) == "":
		return apperr.Validationf("admin_last_name is required")
	}
	return nil
}
