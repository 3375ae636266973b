package storage

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name, phone,
	role, is_active, created_at, updated_at`

// GetUserByEmail resolves a login handle. Email is unique system-wide,
// so this lookup runs before any tenant context exists.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := s.db.GetContext(ctx, &user, query, strings.ToLower(email)); err != nil {
		return nil, rowErr(err)
	}
	return &user, nil
}

// GetUserByID is used by token verification to re-read the live
// tenant/role of the token's subject on every request.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, rowErr(err)
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context, ac access.Context) ([]models.User, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}

	users := make([]models.User, 0)
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &users, query, ac.TenantID); err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// CreateUser adds a user to the caller's tenant. The tenant reference
// comes from the acting context only.
func (s *Storage) CreateUser(ctx context.Context, ac access.Context, input models.CreateUserInput) (*models.User, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if !strings.Contains(input.Email, "@") {
		return nil, apperr.Validationf("valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperr.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if !access.ValidRole(input.Role) {
		return nil, apperr.Validationf("invalid role %q", input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var user models.User
	query := `
		INSERT INTO users (tenant_id, email, password_hash, first_name, last_name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns
	err = s.db.QueryRowxContext(ctx, query,
		ac.TenantID, strings.ToLower(input.Email), string(hash),
		input.FirstName, input.LastName, input.Phone, input.Role,
	).StructScan(&user)
	if err != nil {
		return nil, writeErr(err, "user email")
	}
	return &user, nil
}

// UpdateUser edits profile fields, role, and active flag of a user in
// the caller's tenant. The tenant reference is immutable; demoting or
// deactivating the last admin is refused so the tenant never loses its
// last tenant_admin.
func (s *Storage) UpdateUser(ctx context.Context, ac access.Context, id string, input models.UpdateUserInput) (*models.User, error) {
	if err := requireScope(ac); err != nil {
		return nil, err
	}
	if err := rejectTenantOverride(input.TenantID, ac); err != nil {
		return nil, err
	}
	if !access.ValidRole(input.Role) {
		return nil, apperr.Validationf("invalid role %q", input.Role)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer tx.Rollback()

	if err := s.lockTenantAdmins(ctx, tx, ac.TenantID); err != nil {
		return nil, err
	}

	var current models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND tenant_id = $2 FOR UPDATE`
	if err := tx.GetContext(ctx, &current, query, id, ac.TenantID); err != nil {
		return nil, rowErr(err)
	}

	active := current.IsActive
	if input.IsActive != nil {
		active = *input.IsActive
	}
	losesAdmin := current.Role == access.RoleTenantAdmin &&
		(input.Role != access.RoleTenantAdmin || !active)
	if losesAdmin {
		remaining, err := s.otherActiveAdmins(ctx, tx, ac.TenantID, id)
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			return nil, apperr.Validationf("tenant must keep at least one active admin")
		}
	}

	var user models.User
	update := `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, role = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7
		RETURNING ` + userColumns
	err = tx.QueryRowxContext(ctx, update,
		input.FirstName, input.LastName, input.Phone, input.Role, active,
		id, ac.TenantID,
	).StructScan(&user)
	if err != nil {
		return nil, rowErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// DeleteUser removes a user from the caller's tenant. Deleting the
// last active admin is refused.
func (s *Storage) DeleteUser(ctx context.Context, ac access.Context, id string) error {
	if err := requireScope(ac); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Internal(err)
	}
	defer tx.Rollback()

	if err := s.lockTenantAdmins(ctx, tx, ac.TenantID); err != nil {
		return err
	}

	var current models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND tenant_id = $2 FOR UPDATE`
	if err := tx.GetContext(ctx, &current, query, id, ac.TenantID); err != nil {
		return rowErr(err)
	}

	if current.Role == access.RoleTenantAdmin {
		remaining, err := s.otherActiveAdmins(ctx, tx, ac.TenantID, id)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return apperr.Validationf("tenant must keep at least one active admin")
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND tenant_id = $2`, id, ac.TenantID); err != nil {
		return apperr.Internal(err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

type txQueryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// lockTenantAdmins takes row locks on every active admin of the tenant
// so concurrent role or active-flag changes serialize. Each waiter
// re-evaluates the predicate against committed state once the holder
// finishes, so a row demoted by the winner drops out of the loser's
// locked set and the recount below stays accurate. Locking the admin
// set before the target row keeps the lock order uniform across
// transactions.
func (s *Storage) lockTenantAdmins(ctx context.Context, tx txQueryer, tenantID string) error {
	var ids []string
	query := `SELECT id FROM users WHERE tenant_id = $1 AND role = $2 AND is_active = TRUE FOR UPDATE`
	if err := tx.SelectContext(ctx, &ids, query, tenantID, access.RoleTenantAdmin); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// otherActiveAdmins counts the admins the tenant keeps if the given
// user stops being one. Callers hold locks on all active admin rows
// via lockTenantAdmins, so the count cannot race a concurrent change.
func (s *Storage) otherActiveAdmins(ctx context.Context, tx txQueryer, tenantID, excludeUserID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM users
		WHERE tenant_id = $1 AND role = $2 AND is_active = TRUE AND id <> $3
	`
	if err := tx.GetContext(ctx, &count, query, tenantID, access.RoleTenantAdmin, excludeUserID); err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}
