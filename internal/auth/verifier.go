package auth

import (
	"context"
	"errors"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

// UserSource is the live identity store the verifier checks tokens
// against. Implemented by *storage.Storage.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
}

// Verifier turns a bearer token into an access context. It never
// trusts the token's embedded tenant/role alone: the stored user is
// re-read on every request, so a role change or deactivation takes
// effect on the very next call regardless of tokens already in flight.
type Verifier struct {
	users UserSource
}

func NewVerifier(users UserSource) *Verifier {
	return &Verifier{users: users}
}

// Verify validates an access token and returns the caller's tenant
// context. All failure modes besides expiry collapse into ErrAuth so
// the response does not reveal why a credential was rejected.
func (v *Verifier) Verify(ctx context.Context, token string) (access.Context, error) {
	claims, err := ParseToken(token, TokenTypeAccess)
	if err != nil {
		return access.Context{}, err
	}

	user, err := v.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return access.Context{}, apperr.ErrAuth
		}
		return access.Context{}, err
	}

	// Revocation by mismatch: stale embedded claims fail verification.
	if user.TenantID != claims.TenantID || string(user.Role) != claims.Role {
		return access.Context{}, apperr.ErrAuth
	}
	if !user.IsActive {
		return access.Context{}, apperr.ErrAuth
	}

	tenant, err := v.users.GetTenant(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return access.Context{}, apperr.ErrAuth
		}
		return access.Context{}, err
	}
	if !tenant.IsActive {
		return access.Context{}, apperr.ErrAuth
	}

	return access.Context{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Role:     user.Role,
	}, nil
}
