// Copyright 2026 The ComplyCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/identity"
	"github.com/complycore/complycore/internal/observability/logger"
)

type registerRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"fullName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type acceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. A false return means the response has been written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

// Register creates a new organization and its first admin user. The
// subdomain is derived from the company name; the first user is always a
// tenant_admin.
// @Summary Register a tenant
// @Description Creates a tenant from the company name and its founding admin account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.tenantService.CreateTenant(r.Context(), req.CompanyName, "")
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	user, err := h.identityService.CreateAdmin(r.Context(), t.ID, req.Email, req.FullName, req.Password)
	if err != nil {
		// The tenant has no owner; remove it so the subdomain is not
		// burned by a failed registration.
		if delErr := h.tenantService.DeleteTenant(r.Context(), "", t.ID); delErr != nil {
			slog.ErrorContext(r.Context(), "failed to clean up tenant after registration failure",
				logger.TenantID(t.ID), logger.Error(delErr))
		}
		respondAppError(w, r, err)
		return
	}

	pair, err := h.issueTokenPair(user)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	// Best-effort: a broken relay never fails the registration.
	if verifyToken, tokErr := h.tokenManager.IssueEmailVerificationToken(user.ID); tokErr != nil {
		slog.ErrorContext(r.Context(), "failed to issue email verification token",
			logger.Email(user.Email), logger.Error(tokErr))
	} else if err := h.mailSender.Send(user.Email, "Verify your ComplyCore email",
		"Your organization "+t.CompanyName+" has been created. Confirm your address with this token: "+verifyToken); err != nil {
		slog.ErrorContext(r.Context(), "failed to send verification mail",
			logger.Email(user.Email), logger.Error(err))
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"tenant": t,
		"user":   user,
		"tokens": pair,
	})
}

// Login authenticates with email and password and returns a token pair.
// @Summary Log in
// @Description Authenticates with email and password and returns an access and refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	pair, err := h.issueTokenPair(user)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"user":   user,
		"tokens": pair,
	})
}

// Refresh exchanges a valid refresh token for a fresh pair. Claims are
// re-read from the database, so a role change propagates here at the
// latest.
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a fresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body refreshRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.tokenManager.VerifyRefresh(req.RefreshToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	if err := h.identityService.CheckLiveness(r.Context(), claims.UserID); err != nil {
		respondAppError(w, r, err)
		return
	}

	user, err := h.identityService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	pair, err := h.issueTokenPair(user)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	h.auditLogger.Log(r.Context(), auditlog.Event{
		Type:     auditlog.TypeTokenRefreshed,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "token",
	})

	respondSuccess(w, http.StatusOK, map[string]any{"tokens": pair})
}

// AcceptInvite redeems an invite token and sets the initial password.
// @Summary Accept an invite
// @Description Redeems an invite token and sets the initial password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body acceptInviteRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/invite/accept [post]
func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	var req acceptInviteRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := h.tokenManager.VerifyInvite(req.Token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	user, err := h.identityService.RedeemInvite(r.Context(), userID, req.Password)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	pair, err := h.issueTokenPair(user)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"user":   user,
		"tokens": pair,
	})
}

// VerifyEmail confirms an account's address from the token mailed at
// registration.
// @Summary Verify an email address
// @Description Confirms the account address from the mailed verification token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body verifyEmailRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /auth/verify-email [post]
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := h.tokenManager.VerifyEmailToken(req.Token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	user, err := h.identityService.VerifyEmail(r.Context(), userID)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"user": user})
}

// Me returns the authenticated user's account.
// @Summary Current account
// @Description Returns the authenticated user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.identityService.GetByID(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"user": user})
}

// ChangePassword verifies the old password and stores a new hash.
// @Summary Change password
// @Description Verifies the old password and stores a new one
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body changePasswordRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/change-password [post]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.identityService.ChangePassword(r.Context(), GetUserID(r.Context()), req.OldPassword, req.NewPassword); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "password changed"})
}

func (h *Handler) issueTokenPair(user *identity.User) (*tokenPair, error) {
	access, err := h.tokenManager.IssueAccessToken(user.ID, user.TenantID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := h.tokenManager.IssueRefreshToken(user.ID, user.TenantID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &tokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
