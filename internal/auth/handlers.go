package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"labtrack-backend/internal/access"
	"labtrack-backend/internal/apperr"
	"labtrack-backend/internal/audit"
	"labtrack-backend/internal/models"
)

// Store is the subset of storage the auth endpoints need.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
}

type Handler struct {
	store  Store
	audit  *audit.Publisher
	logger *zap.Logger
}

func NewHandler(store Store, auditLog *audit.Publisher, logger *zap.Logger) *Handler {
	return &Handler{store: store, audit: auditLog, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates email+password and returns an access/refresh
// pair plus a user summary. Every failure mode reads as the same
// "invalid credentials" response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.rejectLogin(w, r, req.Email, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.rejectLogin(w, r, req.Email, apperr.ErrAuth)
		return
	}
	if !user.IsActive {
		h.rejectLogin(w, r, req.Email, apperr.ErrAuth)
		return
	}

	tenant, err := h.store.GetTenant(r.Context(), user.TenantID)
	if err != nil || !tenant.IsActive {
		h.rejectLogin(w, r, req.Email, apperr.ErrAuth)
		return
	}

	accessToken, refreshToken, err := IssueTokens(user)
	if err != nil {
		h.logger.Error("issue tokens", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.audit.Record(audit.Event{
		Kind:     "auth.login",
		TenantID: user.TenantID,
		UserID:   user.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          summarize(user, tenant),
	})
}

// Refresh exchanges a valid refresh token for a new access token. The
// stored user is re-read, so the new token carries current role and
// tenant state.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		writeJSONError(w, http.StatusBadRequest, "refresh_token required")
		return
	}

	claims, err := ParseToken(req.RefreshToken, TokenTypeRefresh)
	if err != nil {
		unauthorized(w, err)
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.Subject)
	if err != nil || !user.IsActive || user.TenantID != claims.TenantID {
		unauthorized(w, apperr.ErrAuth)
		return
	}

	accessToken, err := IssueAccessToken(user)
	if err != nil {
		h.logger.Error("issue access token", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.audit.Record(audit.Event{
		Kind:     "auth.refresh",
		TenantID: user.TenantID,
		UserID:   user.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{"access_token": accessToken})
}

// Me returns the authenticated caller's summary.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ac, ok := access.FromContext(r.Context())
	if !ok {
		unauthorized(w, apperr.ErrAuth)
		return
	}

	user, err := h.store.GetUserByID(r.Context(), ac.UserID)
	if err != nil {
		unauthorized(w, apperr.ErrAuth)
		return
	}
	tenant, err := h.store.GetTenant(r.Context(), user.TenantID)
	if err != nil {
		h.logger.Error("load tenant for /auth/me", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": summarize(user, tenant)})
}

func (h *Handler) rejectLogin(w http.ResponseWriter, r *http.Request, email string, err error) {
	if errors.Is(err, apperr.ErrInternal) {
		h.logger.Error("login lookup", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("login rejected", zap.String("email", email))
	writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
}

func summarize(user *models.User, tenant *models.Tenant) models.UserSummary {
	return models.UserSummary{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		TenantID:   user.TenantID,
		TenantName: tenant.Name,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
