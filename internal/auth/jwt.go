package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/models"
)

const (
	// TokenTypeAccess tokens authenticate API requests; short-lived.
	TokenTypeAccess = "access"
	// TokenTypeRefresh tokens are only accepted by the refresh flow.
	TokenTypeRefresh = "refresh"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var errMissingSecret = errors.New("JWT_SECRET is not set")

func tokenSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errMissingSecret
	}
	return []byte(secret), nil
}

// Claims embed the issuance-time identity. The verifier re-checks the
// stored user on every request, so these are a hint, not the authority
// of record: a role or tenant change invalidates older tokens on the
// next request.
type Claims struct {
	TenantID  string `json:"tenant_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IssueTokens returns an access/refresh pair bound to the user's
// identity as of now.
func IssueTokens(user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = issueToken(user, TokenTypeAccess, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = issueToken(user, TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// IssueAccessToken mints a fresh access token for the refresh flow.
func IssueAccessToken(user *models.User) (string, error) {
	return issueToken(user, TokenTypeAccess, accessTokenTTL)
}

func issueToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	secret, err := tokenSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		TenantID:  user.TenantID,
		Role:      string(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates signature and expiry and checks the token is of
// the wanted type, so a refresh token can never authenticate a request
// and an access token can never mint new tokens.
func ParseToken(tokenString, wantType string) (*Claims, error) {
	secret, err := tokenSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrAuth
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, apperr.ErrAuth
	}
	if claims.TokenType != wantType {
		return nil, apperr.ErrAuth
	}
	if !access.ValidRole(access.Role(claims.Role)) {
		return nil, apperr.ErrAuth
	}

	return claims, nil
}
