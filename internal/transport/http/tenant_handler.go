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
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type updateTenantRequest struct {
	CompanyName string `json:"companyName"`
	PlanType    string `json:"planType"`
	Status      string `json:"status"`
}

// ListTenants lists all tenants. Platform surface, super_admin only.
// @Summary List tenants
// @Description Lists all tenants with pagination
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tenants [get]
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tenants, err := h.tenantService.ListTenants(r.Context(), limit, offset)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(tenants), map[string]any{"tenants": tenants})
}

// GetTenant retrieves one tenant.
// @Summary Get a tenant
// @Description Retrieves one tenant
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /tenants/{id} [get]
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenantService.GetTenant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"tenant": t})
}

// UpdateTenant updates name, plan, and status of a tenant.
// @Summary Update a tenant
// @Description Updates name, plan, and status
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateTenantRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{id} [put]
func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var req updateTenantRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.tenantService.UpdateTenant(r.Context(), chi.URLParam(r, "id"), req.CompanyName, req.PlanType, req.Status)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"tenant": t})
}

// DeleteTenant hard-deletes a tenant and everything inside it. The system
// tenant is refused regardless of caller.
// @Summary Delete a tenant
// @Description Deletes a tenant; the system tenant is refused
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{id} [delete]
func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := h.tenantService.DeleteTenant(r.Context(), GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "tenant deleted"})
}
