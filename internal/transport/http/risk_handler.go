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

	"github.com/go-chi/chi/v5"

	"github.com/complycore/complycore/internal/risk"
)

type createRiskRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description"`
	Likelihood     int    `json:"likelihood" validate:"required"`
	Impact         int    `json:"impact" validate:"required"`
	MitigationPlan string `json:"mitigationPlan"`
	OwnerID        string `json:"ownerId"`
}

type updateRiskRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Likelihood     int    `json:"likelihood"`
	Impact         int    `json:"impact"`
	MitigationPlan string `json:"mitigationPlan"`
	Status         string `json:"status"`
	OwnerID        string `json:"ownerId"`
}

// CreateRisk registers a risk. Score and level are derived server-side.
// @Summary Create a risk
// @Description Creates a risk; score and level derive from likelihood and impact
// @Tags Risks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createRiskRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /risks [post]
func (h *Handler) CreateRisk(w http.ResponseWriter, r *http.Request) {
	var req createRiskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	rk, err := h.riskService.Create(r.Context(), GetTenantID(r.Context()), risk.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		Likelihood:     req.Likelihood,
		Impact:         req.Impact,
		MitigationPlan: req.MitigationPlan,
		OwnerID:        req.OwnerID,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"risk": rk})
}

// ListRisks lists all risks in the caller's tenant, highest score first.
// @Summary List risks
// @Description Lists all risks owned by the tenant
// @Tags Risks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /risks [get]
func (h *Handler) ListRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := h.riskService.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(risks), map[string]any{"risks": risks})
}

// GetRisk retrieves one risk in the caller's tenant.
// @Summary Get a risk
// @Description Retrieves one risk
// @Tags Risks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /risks/{id} [get]
func (h *Handler) GetRisk(w http.ResponseWriter, r *http.Request) {
	rk, err := h.riskService.Get(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"risk": rk})
}

// UpdateRisk modifies a risk, recomputing score and level.
// @Summary Update a risk
// @Description Updates a risk and recomputes its score
// @Tags Risks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateRiskRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /risks/{id} [put]
func (h *Handler) UpdateRisk(w http.ResponseWriter, r *http.Request) {
	var req updateRiskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	rk, err := h.riskService.Update(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), risk.UpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		Likelihood:     req.Likelihood,
		Impact:         req.Impact,
		MitigationPlan: req.MitigationPlan,
		Status:         req.Status,
		OwnerID:        req.OwnerID,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"risk": rk})
}

// DeleteRisk removes a risk.
// @Summary Delete a risk
// @Description Deletes a risk
// @Tags Risks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /risks/{id} [delete]
func (h *Handler) DeleteRisk(w http.ResponseWriter, r *http.Request) {
	if err := h.riskService.Delete(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "risk deleted"})
}
