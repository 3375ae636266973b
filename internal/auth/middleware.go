package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
)

// Middleware authenticates the bearer token and attaches the resulting
// access context to the request. Every protected route goes through
// here; handlers downstream can rely on access.FromContext succeeding.
// A storage failure during the live re-read is an internal error, not
// a credential problem, and surfaces as 500.
func Middleware(verifier *Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, apperr.ErrAuth)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				unauthorized(w, apperr.ErrAuth)
				return
			}

			ac, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, apperr.ErrInternal) {
					logger.Error("token verification", zap.Error(err))
					writeJSONError(w, http.StatusInternalServerError, "internal error")
					return
				}
				unauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithContext(r.Context(), ac)))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	code := "authentication_failed"
	if errors.Is(err, apperr.ErrTokenExpired) {
		code = "token_expired"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": code})
}
