package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"labtrack-backend/internal/apperr"
)

// accessMissingErr is a request that reached a protected handler
// without the auth middleware having run. Treated as an auth failure.
var accessMissingErr = apperr.ErrAuth

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError is the single place the error taxonomy maps onto HTTP.
// Internal failures are logged with full detail and surfaced without.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errBody(err))
	case errors.Is(err, apperr.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token_expired"})
	case errors.Is(err, apperr.ErrAuth):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication_failed"})
	case errors.Is(err, apperr.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "permission_denied"})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, apperr.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errBody(err))
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// queryBool reads an optional boolean query parameter; absence means
// no filtering on that field.
func queryBool(r *http.Request, key string) (*bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperr.Validationf("%s must be true or false", key)
	}
	return &b, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
