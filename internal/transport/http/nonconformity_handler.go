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
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/complycore/complycore/internal/nonconformity"
)

type createNonConformityRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Severity    string     `json:"severity" validate:"required"`
	AuditID     string     `json:"auditId"`
	AssigneeID  string     `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

type updateNonConformityRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	AssigneeID  string     `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

// CreateNonConformity records a finding in open state.
// @Summary Create a non-conformity
// @Description Records a new finding in open status
// @Tags NonConformities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createNonConformityRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /nonconformities [post]
func (h *Handler) CreateNonConformity(w http.ResponseWriter, r *http.Request) {
	var req createNonConformityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	nc, err := h.nonconformityService.Create(r.Context(), GetTenantID(r.Context()), nonconformity.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		AuditID:     req.AuditID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"nonConformity": nc})
}

// ListNonConformities lists all findings in the caller's tenant.
// @Summary List non-conformities
// @Description Lists all non-conformities owned by the tenant
// @Tags NonConformities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /nonconformities [get]
func (h *Handler) ListNonConformities(w http.ResponseWriter, r *http.Request) {
	ncs, err := h.nonconformityService.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(ncs), map[string]any{"nonConformities": ncs})
}

// GetNonConformity retrieves one finding in the caller's tenant.
// @Summary Get a non-conformity
// @Description Retrieves one non-conformity
// @Tags NonConformities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /nonconformities/{id} [get]
func (h *Handler) GetNonConformity(w http.ResponseWriter, r *http.Request) {
	nc, err := h.nonconformityService.Get(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"nonConformity": nc})
}

// UpdateNonConformity modifies descriptive fields.
// @Summary Update a non-conformity
// @Description Updates the mutable fields of a finding
// @Tags NonConformities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateNonConformityRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /nonconformities/{id} [put]
func (h *Handler) UpdateNonConformity(w http.ResponseWriter, r *http.Request) {
	var req updateNonConformityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	nc, err := h.nonconformityService.Update(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), nonconformity.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"nonConformity": nc})
}

// TransitionNonConformity moves a finding through its status workflow.
// @Summary Transition a non-conformity
// @Description Moves a finding along its status lifecycle
// @Tags NonConformities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body transitionRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /nonconformities/{id}/status [patch]
func (h *Handler) TransitionNonConformity(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	nc, err := h.nonconformityService.Transition(r.Context(), GetTenantID(r.Context()),
		chi.URLParam(r, "id"), nonconformity.Status(req.Status))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	h.meter.RecordTransition(r.Context(), "nonconformity", string(nc.Status))
	respondSuccess(w, http.StatusOK, map[string]any{"nonConformity": nc})
}
