package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       "user-1",
		TenantID: "tenant-1",
		Email:    "admin@lab-a.test",
		Role:     access.RoleTenantAdmin,
		IsActive: true,
	}
}

func TestIssueAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	accessToken, refreshToken, err := IssueTokens(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := ParseToken(accessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, string(access.RoleTenantAdmin), claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = ParseToken(refreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestParseToken_WrongTypeRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	accessToken, refreshToken, err := IssueTokens(testUser())
	require.NoError(t, err)

	// A refresh token must not authenticate a request, and an access
	// token must not mint new tokens.
	_, err = ParseToken(refreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = ParseToken(accessToken, TokenTypeRefresh)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestParseToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	now := time.Now()
	claims := Claims{
		TenantID:  "tenant-1",
		Role:      string(access.RoleTenantAdmin),
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed, TokenTypeAccess)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	accessToken, _, err := IssueTokens(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseToken(accessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestParseToken_UnknownRoleRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := testUser()
	user.Role = access.Role("superuser")
	accessToken, err := IssueAccessToken(user)
	require.NoError(t, err)

	_, err = ParseToken(accessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestIssueTokens_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := IssueTokens(testUser())
	assert.Error(t, err)
}
