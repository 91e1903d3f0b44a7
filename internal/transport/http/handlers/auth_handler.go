package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	authsvc "github.com/hari7vansh/swipehire/internal/services/auth"
	userssvc "github.com/hari7vansh/swipehire/internal/services/users"
	"github.com/hari7vansh/swipehire/internal/transport/http/dto"
	httperrors "github.com/hari7vansh/swipehire/internal/transport/http/errors"
)

type AuthHandler struct {
	users *userssvc.Service
	auth  *authsvc.Service
}

func NewAuthHandler(users *userssvc.Service, auth *authsvc.Service) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.users == nil || h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	registered, err := h.users.Register(r.Context(), userssvc.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Role:            enums.Role(req.Role),
		Bio:             req.Bio,
		Location:        req.Location,
		CompanyName:     req.CompanyName,
		Position:        req.Position,
		Industry:        req.Industry,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		DesiredPosition: req.DesiredPosition,
	})
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		case errors.Is(err, userssvc.ErrUsernameTaken):
			httperrors.Write(w, http.StatusConflict, httperrors.APIError{
				Code:    "USERNAME_TAKEN",
				Message: "username is already taken",
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to register user")
		}
		return
	}

	res, err := h.auth.IssueSession(r.Context(), registered.UserID, string(registered.Role))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to create session")
		return
	}

	httperrors.Write(w, http.StatusCreated, tokensResponse(res))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.users == nil || h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	user, profile, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userssvc.ErrInvalidCredentials) {
			writeUnauthorized(w, "INVALID_CREDENTIALS", "invalid username or password")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to log in")
		return
	}

	res, err := h.auth.IssueSession(r.Context(), user.ID, string(profile.Role))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to create session")
		return
	}

	httperrors.Write(w, http.StatusOK, tokensResponse(res))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, tokensResponse(res))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.auth.Logout(r.Context(), identity.SID); err != nil {
		handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.auth.LogoutAll(r.Context(), identity.UserID); err != nil {
		handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	user, profile, err := h.users.Me(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, userssvc.ErrUserNotFound) {
			writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load user")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MeResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(profile.Role),
	})
}

func tokensResponse(res authsvc.AuthResult) dto.AuthTokensResponse {
	return dto.AuthTokensResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresInSec: maxInt64(0, int64(time.Until(res.AccessExpires).Seconds())),
		Me: dto.AuthMeResponse{
			ID:   res.Me.ID,
			Role: res.Me.Role,
		},
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "INVALID_REQUEST", "request validation failed")
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "authentication failed")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
