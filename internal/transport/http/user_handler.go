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
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/complycore/complycore/internal/observability/logger"
)

type inviteUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type updateUserRequest struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ListUsers lists all users in the caller's tenant.
// @Summary List users
// @Description Lists all users in the caller's tenant
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.identityService.ListUsers(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(users), map[string]any{"users": users})
}

// InviteUser creates a pending account and mails an invite token. Mail
// failure is logged, never rolled back; the token can be re-issued.
// @Summary Invite a user
// @Description Creates a pending account and emails an invite token
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body inviteUserRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/invite [post]
func (h *Handler) InviteUser(w http.ResponseWriter, r *http.Request) {
	var req inviteUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	actor, err := h.identityService.GetByID(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	user, err := h.identityService.Invite(r.Context(), actor, req.Email, req.FullName, req.Role)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	inviteToken, err := h.tokenManager.IssueInviteToken(user.ID)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	if err := h.mailSender.Send(user.Email, "You have been invited to ComplyCore",
		"Use this token to activate your account: "+inviteToken); err != nil {
		slog.ErrorContext(r.Context(), "failed to send invite mail",
			logger.Email(user.Email), logger.Error(err))
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"user":        user,
		"inviteToken": inviteToken,
	})
}

// GetUser retrieves one user in the caller's tenant.
// @Summary Get a user
// @Description Retrieves one user in the caller's tenant
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.identityService.GetUser(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateUser updates name and role of a user in the caller's tenant.
// @Summary Update a user
// @Description Updates name and role of a user in the caller's tenant
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateUserRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.identityService.UpdateUser(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), req.FullName, req.Role)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"user": user})
}

// DeactivateUser soft-deletes a user in the caller's tenant.
// @Summary Deactivate a user
// @Description Soft-deletes a user; their tokens stop working on the next request
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /users/{id} [delete]
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.identityService.GetByID(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	if err := h.identityService.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "user deactivated"})
}
