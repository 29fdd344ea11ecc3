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

	"github.com/complycore/complycore/internal/kpi"
)

type createKPIRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	TargetValue float64 `json:"targetValue"`
	Frequency   string  `json:"frequency"`
}

type updateKPIRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	TargetValue *float64 `json:"targetValue"`
	Frequency   string   `json:"frequency"`
}

type measureKPIRequest struct {
	Value float64 `json:"value"`
}

// CreateKPI registers an indicator.
// @Summary Create a KPI
// @Description Defines a new KPI with an optional target
// @Tags KPIs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createKPIRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /kpis [post]
func (h *Handler) CreateKPI(w http.ResponseWriter, r *http.Request) {
	var req createKPIRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	k, err := h.kpiService.Create(r.Context(), GetTenantID(r.Context()), kpi.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		Frequency:   req.Frequency,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"kpi": k})
}

// ListKPIs lists all indicators in the caller's tenant.
// @Summary List KPIs
// @Description Lists all KPIs owned by the tenant
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /kpis [get]
func (h *Handler) ListKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.kpiService.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(kpis), map[string]any{"kpis": kpis})
}

// GetKPI retrieves one indicator in the caller's tenant.
// @Summary Get a KPI
// @Description Retrieves one KPI
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /kpis/{id} [get]
func (h *Handler) GetKPI(w http.ResponseWriter, r *http.Request) {
	k, err := h.kpiService.Get(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"kpi": k})
}

// UpdateKPI modifies indicator metadata.
// @Summary Update a KPI
// @Description Updates the definition of a KPI
// @Tags KPIs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateKPIRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /kpis/{id} [put]
func (h *Handler) UpdateKPI(w http.ResponseWriter, r *http.Request) {
	var req updateKPIRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	k, err := h.kpiService.Update(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), kpi.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		Frequency:   req.Frequency,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"kpi": k})
}

// MeasureKPI records a measurement, updating the current value and stamp.
// @Summary Record a measurement
// @Description Stores the current value of a KPI
// @Tags KPIs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body measureKPIRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /kpis/{id}/measure [post]
func (h *Handler) MeasureKPI(w http.ResponseWriter, r *http.Request) {
	var req measureKPIRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	k, err := h.kpiService.Measure(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), req.Value)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"kpi": k})
}

// DeleteKPI removes an indicator.
// @Summary Delete a KPI
// @Description Deletes a KPI
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /kpis/{id} [delete]
func (h *Handler) DeleteKPI(w http.ResponseWriter, r *http.Request) {
	if err := h.kpiService.Delete(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "kpi deleted"})
}
